package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	custom_error "github.com/YC815/Miaoli/pkg/errors"
	"github.com/YC815/Miaoli/pkg/models"

	_ "modernc.org/sqlite" // cgo-free sqlite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS inventory_documents (
	position   INTEGER PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);`

// SQLiteStore is the embedded-file backend: one row per item, the item
// itself serialized as JSON, collection order kept by position.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, custom_error.NewPersistenceError("open", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, custom_error.NewPersistenceError("open", fmt.Errorf("create schema: %w", err))
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load() ([]models.Item, error) {
	rows, err := s.db.Query(`SELECT payload FROM inventory_documents ORDER BY position`)
	if err != nil {
		return nil, custom_error.NewPersistenceError("load", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, custom_error.NewPersistenceError("load", err)
		}
		var item models.Item
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, custom_error.NewPersistenceError("load", fmt.Errorf("corrupt item row: %w", err))
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, custom_error.NewPersistenceError("load", err)
	}
	return items, nil
}

func (s *SQLiteStore) Save(items []models.Item) error {
	tx, err := s.db.Begin()
	if err != nil {
		return custom_error.NewPersistenceError("save", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM inventory_documents`); err != nil {
		return custom_error.NewPersistenceError("save", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO inventory_documents (position, name, payload, updated_at) VALUES (?, ?, ?, datetime('now'))`)
	if err != nil {
		return custom_error.NewPersistenceError("save", err)
	}
	defer stmt.Close()

	for position, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return custom_error.NewPersistenceError("save", err)
		}
		if _, err := stmt.Exec(position, item.Name, string(payload)); err != nil {
			return custom_error.NewPersistenceError("save", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return custom_error.NewPersistenceError("save", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
