// Package item defines the Item entity and its update semantics.
package item

import "time"

// Item is the sole business entity: a priced, named record with a
// server-assigned identifier and timestamps.
type Item struct {
	ID          string
	Name        string
	Description string
	Price       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Fields holds the mutable attributes supplied by create and update requests.
type Fields struct {
	Name        string
	Description string
	Price       float64
}

// New builds a fresh item with both timestamps stamped to now.
func New(id string, f Fields, now time.Time) Item {
	return Item{
		ID:          id,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// WithFields returns a copy of the item with all mutable fields replaced.
// The identifier and creation timestamp are preserved; UpdatedAt is set to now.
func (i Item) WithFields(f Fields, now time.Time) Item {
	return Item{
		ID:          i.ID,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   now,
	}
}
