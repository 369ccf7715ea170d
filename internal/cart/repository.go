package cart

import (
	"sync"

	"github.com/wirote65/storefront-backend/internal/product"
)

// Repository provides access to cart rows. At most one row exists per
// (owner, productId) pair; Add increments the quantity of an existing row.
type Repository interface {
	Add(o Owner, productID, qty int) (Item, error)
	UpdateQuantity(itemID, qty int) (Item, error)
	Remove(itemID int) error
	Clear(o Owner) error
	List(o Owner) ([]Line, error)
}

// InMemoryRepository is used for tests and local scenarios. Products are
// resolved through the product repository at list time; rows whose product
// is gone are dropped, mirroring the join behavior of the Postgres
// implementation.
type InMemoryRepository struct {
	mu       sync.RWMutex
	items    []Item
	products *product.InMemoryRepository
	nextID   int
}

func NewInMemoryRepository(products *product.InMemoryRepository) *InMemoryRepository {
	return &InMemoryRepository{products: products, nextID: 1}
}

func ownedBy(it Item, o Owner) bool {
	if o.UserID > 0 {
		return it.UserID != nil && *it.UserID == o.UserID
	}
	return it.SessionID != nil && *it.SessionID == o.SessionID
}

func (r *InMemoryRepository) Add(o Owner, productID, qty int) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if ownedBy(r.items[i], o) && r.items[i].ProductID == productID {
			r.items[i].Quantity += qty
			return r.items[i], nil
		}
	}
	it := Item{ID: r.nextID, ProductID: productID, Quantity: qty}
	r.nextID++
	if o.UserID > 0 {
		uid := o.UserID
		it.UserID = &uid
	} else {
		sid := o.SessionID
		it.SessionID = &sid
	}
	r.items = append(r.items, it)
	return it, nil
}

func (r *InMemoryRepository) UpdateQuantity(itemID, qty int) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == itemID {
			r.items[i].Quantity = qty
			return r.items[i], nil
		}
	}
	return Item{}, ErrItemNotFound
}

func (r *InMemoryRepository) Remove(itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == itemID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

func (r *InMemoryRepository) Clear(o Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	for _, it := range r.items {
		if !ownedBy(it, o) {
			kept = append(kept, it)
		}
	}
	r.items = kept
	return nil
}

func (r *InMemoryRepository) List(o Owner) ([]Line, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Line, 0)
	for _, it := range r.items {
		if !ownedBy(it, o) {
			continue
		}
		p, err := r.products.GetByID(it.ProductID)
		if err != nil {
			// dangling reference, drop silently
			continue
		}
		out = append(out, Line{Item: it, Product: p})
	}
	return out, nil
}
