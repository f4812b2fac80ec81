// Package store implements the in-memory item collection.
//
// A single mutex serializes all access so concurrent handlers never observe
// lost updates, and the items_total gauge is mutated inside the same critical
// section so it can never diverge from the map size.
package store

import (
	"sync"
	"time"

	"devops-backend/internal/item"
	appErrors "devops-backend/pkg/errors"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// Store owns every item record in the process.
type Store struct {
	mu         sync.RWMutex
	items      map[string]item.Item
	itemsTotal prometheus.Gauge
}

// New creates an empty store. The gauge tracks the current item count.
func New(itemsTotal prometheus.Gauge) *Store {
	return &Store{
		items:      make(map[string]item.Item),
		itemsTotal: itemsTotal,
	}
}

// Seed inserts the fixed sample records used at startup.
func (s *Store) Seed() {
	samples := []item.Item{
		{ID: "1", Name: "Laptop", Description: "Gaming laptop", Price: 1299.99},
		{ID: "2", Name: "Mouse", Description: "Wireless mouse", Price: 49.99},
		{ID: "3", Name: "Keyboard", Description: "Mechanical keyboard", Price: 89.99},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for _, sample := range samples {
		sample.CreatedAt = now
		sample.UpdatedAt = now
		s.items[sample.ID] = sample
	}
	s.itemsTotal.Set(float64(len(s.items)))
}

// List returns all current items in no particular order.
func (s *Store) List() []item.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]item.Item, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, it)
	}
	return items
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return item.Item{}, appErrors.NewNotFound("Item not found")
	}
	return it, nil
}

// Create assigns a new unique id, stamps both timestamps, and inserts the item.
func (s *Store) Create(f item.Fields) item.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := item.New(uuid.New().String(), f, time.Now())
	s.items[it.ID] = it
	s.itemsTotal.Inc()
	return it
}

// Update replaces the mutable fields of an existing item. CreatedAt is
// preserved and UpdatedAt refreshed.
func (s *Store) Update(id string, f item.Fields) (item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return item.Item{}, appErrors.NewNotFound("Item not found")
	}

	updated := current.WithFields(f, time.Now())
	s.items[id] = updated
	return updated, nil
}

// Delete removes the item with the given id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return appErrors.NewNotFound("Item not found")
	}

	delete(s.items, id)
	s.itemsTotal.Dec()
	return nil
}

// Len reports the current number of items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
