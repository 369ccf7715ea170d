package product

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	List(f Filter) ([]Product, error)
	GetByID(id int) (Product, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests
// and seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) List(f Filter) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		if matches(p, f) {
			out = append(out, p)
		}
	}
	return out, nil
}

func matches(p Product, f Filter) bool {
	if f.ActiveOnly && !p.Active {
		return false
	}
	if f.FeaturedOnly && !p.Featured {
		return false
	}
	if f.CategoryID != nil && (p.CategoryID == nil || *p.CategoryID != *f.CategoryID) {
		return false
	}
	if len(f.IDs) > 0 {
		found := false
		for _, id := range f.IDs {
			if p.ID == id {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		hit := strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle)
		if !hit && p.LocalizedName != nil {
			hit = strings.Contains(strings.ToLower(*p.LocalizedName), needle)
		}
		if !hit {
			return false
		}
	}
	return true
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

// Remove deletes a product. Only tests use this, to exercise handling of
// cart rows whose product is gone.
func (r *InMemoryRepository) Remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return
		}
	}
}

// SetPrice mutates a product's live price. Only tests use this, to verify
// that order item prices are snapshots rather than references.
func (r *InMemoryRepository) SetPrice(id int, price float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage[i].Price = price
			return
		}
	}
}
