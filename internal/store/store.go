// Package store provides data storage interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/vyrodovalexey/items-service/internal/model"
)

// ErrNotFound reports that an identifier has no live entry.
var ErrNotFound = errors.New("item not found")

// Store defines the interface for item storage operations. Identifiers are
// strictly positive integers owned by the store; no two live entries share
// one. All operations are atomic with respect to each other so that the
// identifier-assignment rule is race-free.
type Store interface {
	// Get retrieves an item by its identifier.
	Get(ctx context.Context, id int) (*model.Item, error)

	// Create inserts a new item under the next identifier
	// (max of existing identifiers, default 0, plus one) and returns it.
	Create(ctx context.Context, item model.Item) (int, error)

	// Put stores an item under the given identifier unconditionally,
	// creating or overwriting as needed. It never reports absence.
	Put(ctx context.Context, id int, item model.Item) error

	// Patch merges a sparse update onto the stored item and persists the
	// result, returning it. Reports ErrNotFound if the identifier has no
	// entry; the store is left untouched in that case.
	Patch(ctx context.Context, id int, update model.ItemUpdate) (*model.Item, error)

	// Delete removes the entry for the identifier, reporting ErrNotFound
	// if none exists.
	Delete(ctx context.Context, id int) error

	// Exists reports whether the identifier has a live entry.
	Exists(ctx context.Context, id int) (bool, error)
}
