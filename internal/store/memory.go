package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/vyrodovalexey/items-service/internal/model"
)

// MemoryStore implements Store with in-memory storage. A single mutex
// serializes all operations, so two concurrent Creates never observe the
// same maximum and never collide on the assigned identifier.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[int]model.Item
}

// NewMemoryStore creates a new MemoryStore instance.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[int]model.Item),
	}
}

// Get retrieves an item by its identifier.
func (s *MemoryStore) Get(ctx context.Context, id int) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get item: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	if !exists {
		return nil, ErrNotFound
	}

	return &item, nil
}

// Create inserts the item under max(existing identifiers, default 0) + 1 and
// returns the assigned identifier.
func (s *MemoryStore) Create(ctx context.Context, item model.Item) (int, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("create item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID()
	s.items[id] = item

	return id, nil
}

// nextID computes the next identifier. Callers must hold the write lock.
func (s *MemoryStore) nextID() int {
	maxID := 0
	for id := range s.items {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

// Put stores the item under the given identifier unconditionally.
func (s *MemoryStore) Put(ctx context.Context, id int, item model.Item) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("put item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[id] = item

	return nil
}

// Patch merges the update onto the stored item and persists the result.
func (s *MemoryStore) Patch(ctx context.Context, id int, update model.ItemUpdate) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("patch item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.items[id]
	if !exists {
		return nil, ErrNotFound
	}

	merged := model.Merge(stored, update)
	s.items[id] = merged

	return &merged, nil
}

// Delete removes the entry for the identifier.
func (s *MemoryStore) Delete(ctx context.Context, id int) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("delete item: %w", ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return ErrNotFound
	}

	delete(s.items, id)

	return nil
}

// Exists reports whether the identifier has a live entry.
func (s *MemoryStore) Exists(ctx context.Context, id int) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("item exists: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.items[id]

	return exists, nil
}
