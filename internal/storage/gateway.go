// Package storage persists the whole item collection as a document: the
// ledger loads it once at startup and saves it after every mutation.
package storage

import "github.com/YC815/Miaoli/pkg/models"

type Gateway interface {
	// Load returns the stored collection; an empty store yields an empty
	// slice, not an error.
	Load() ([]models.Item, error)
	// Save replaces the stored collection. Item order and per-item
	// operation order are preserved.
	Save(items []models.Item) error
}
