package review

import (
	"errors"
	"sync"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// Repository persists reviews. Add also refreshes the product's
// rating/reviewCount aggregates from the stored reviews.
type Repository interface {
	ListByProduct(productID int) ([]Review, error)
	Add(r Review) (Review, error)
}

// InMemoryRepository is used for tests. It tracks aggregates per product so
// handler tests can observe the refresh behavior.
type InMemoryRepository struct {
	mu       sync.RWMutex
	reviews  []Review
	products map[int]*Aggregate
	nextID   int
}

// Aggregate mirrors the product columns the repository refreshes.
type Aggregate struct {
	Rating      float64
	ReviewCount int
}

func NewInMemoryRepository(productIDs []int) *InMemoryRepository {
	r := &InMemoryRepository{products: make(map[int]*Aggregate, len(productIDs)), nextID: 1}
	for _, id := range productIDs {
		r.products[id] = &Aggregate{}
	}
	return r
}

func (r *InMemoryRepository) ListByProduct(productID int) ([]Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.products[productID]; !ok {
		return nil, ErrProductNotFound
	}
	out := make([]Review, 0)
	// newest first
	for i := len(r.reviews) - 1; i >= 0; i-- {
		if r.reviews[i].ProductID == productID {
			out = append(out, r.reviews[i])
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Add(rev Review) (Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	agg, ok := r.products[rev.ProductID]
	if !ok {
		return Review{}, ErrProductNotFound
	}
	rev.ID = r.nextID
	r.nextID++
	r.reviews = append(r.reviews, rev)

	sum, n := 0, 0
	for _, existing := range r.reviews {
		if existing.ProductID == rev.ProductID {
			sum += existing.Rating
			n++
		}
	}
	agg.Rating = float64(sum) / float64(n)
	agg.ReviewCount = n
	return rev, nil
}

// AggregateFor exposes the tracked aggregates to tests.
func (r *InMemoryRepository) AggregateFor(productID int) Aggregate {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if agg, ok := r.products[productID]; ok {
		return *agg
	}
	return Aggregate{}
}
