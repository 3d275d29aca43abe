package storage

import (
	"encoding/json"
	"sync"

	custom_error "github.com/YC815/Miaoli/pkg/errors"
	"github.com/YC815/Miaoli/pkg/models"
)

// MemoryStore keeps the collection as a JSON snapshot. Serializing through
// JSON gives callers the same isolation and round-trip behavior as the
// durable backends, which matters in tests.
type MemoryStore struct {
	mu       sync.Mutex
	snapshot []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil {
		return []models.Item{}, nil
	}

	var items []models.Item
	if err := json.Unmarshal(s.snapshot, &items); err != nil {
		return nil, custom_error.NewPersistenceError("load", err)
	}
	return items, nil
}

func (s *MemoryStore) Save(items []models.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return custom_error.NewPersistenceError("save", err)
	}

	s.mu.Lock()
	s.snapshot = data
	s.mu.Unlock()
	return nil
}
