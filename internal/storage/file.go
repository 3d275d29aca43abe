package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	custom_error "github.com/YC815/Miaoli/pkg/errors"
	"github.com/YC815/Miaoli/pkg/models"
)

// FileStore persists the collection as one pretty-printed JSON file. Saves
// go through a temp file and rename so a crash mid-write never leaves a
// truncated document behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() ([]models.Item, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []models.Item{}, nil
	}
	if err != nil {
		return nil, custom_error.NewPersistenceError("load", err)
	}

	var items []models.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, custom_error.NewPersistenceError("load", fmt.Errorf("corrupt store %s: %w", s.path, err))
	}
	return items, nil
}

func (s *FileStore) Save(items []models.Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return custom_error.NewPersistenceError("save", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return custom_error.NewPersistenceError("save", err)
	}

	tmp, err := os.CreateTemp(dir, ".items-*.json")
	if err != nil {
		return custom_error.NewPersistenceError("save", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return custom_error.NewPersistenceError("save", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return custom_error.NewPersistenceError("save", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return custom_error.NewPersistenceError("save", err)
	}
	return nil
}
