package category

import "sync"

// Repository provides access to category rows.
type Repository interface {
	ListActive() ([]Category, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu         sync.RWMutex
	categories []Category
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{categories: make([]Category, 0, len(seed))}
	r.categories = append(r.categories, seed...)
	return r
}

func (r *InMemoryRepository) ListActive() ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, 0, len(r.categories))
	for _, c := range r.categories {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}
