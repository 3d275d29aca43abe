package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	custom_error "github.com/YC815/Miaoli/pkg/errors"
	"github.com/YC815/Miaoli/pkg/models"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

// PostgresStore persists items into the inventory_documents table, one JSONB
// payload per item. The schema is managed by the migrate command.
type PostgresStore struct {
	db *goqu.Database
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: goqu.New("postgres", db)}
}

func (s *PostgresStore) Load() ([]models.Item, error) {
	var payloads []string
	query := s.db.Select("payload").
		From("inventory_documents").
		Order(goqu.I("position").Asc())

	if err := query.Executor().ScanVals(&payloads); err != nil {
		return nil, custom_error.NewPersistenceError("load", err)
	}

	items := []models.Item{}
	for _, payload := range payloads {
		var item models.Item
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, custom_error.NewPersistenceError("load", fmt.Errorf("corrupt item row: %w", err))
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *PostgresStore) Save(items []models.Item) error {
	err := WithTransaction(s.db, func(tx *goqu.TxDatabase) error {
		if _, err := tx.Delete("inventory_documents").Executor().Exec(); err != nil {
			return fmt.Errorf("clear documents: %w", err)
		}

		for position, item := range items {
			payload, err := json.Marshal(item)
			if err != nil {
				return fmt.Errorf("marshal item %s: %w", item.Name, err)
			}
			insert := tx.Insert("inventory_documents").
				Rows(goqu.Record{
					"position": position,
					"name":     item.Name,
					"payload":  string(payload),
				})
			if _, err := insert.Executor().Exec(); err != nil {
				return fmt.Errorf("insert item %s: %w", item.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return custom_error.NewPersistenceError("save", err)
	}
	return nil
}

func WithTransaction(db *goqu.Database, fn func(tx *goqu.TxDatabase) error) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(tx)
	return
}
