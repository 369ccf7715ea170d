package order

import (
	"errors"
	"sync"
)

var (
	ErrNotFound             = errors.New("order not found")
	ErrDuplicateOrderNumber = errors.New("orderNumber already exists")
)

// Repository defines persistence operations for orders. Create persists
// the header and all items atomically.
type Repository interface {
	Create(ord Order, items []Item) (Order, error)
	ListByCustomer(key string) ([]Order, error)
	GetByID(id int) (Order, error)
}

// InMemoryRepository is used for tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(ord Order, items []Item) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.OrderNumber == ord.OrderNumber {
			return Order{}, ErrDuplicateOrderNumber
		}
	}
	ord.ID = r.nextID
	r.nextID++
	ord.Items = make([]Item, len(items))
	for i, it := range items {
		it.ID = i + 1
		it.OrderID = ord.ID
		ord.Items[i] = it
	}
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) ListByCustomer(key string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.CustomerKey == key {
			header := ord
			header.Items = nil
			out = append(out, header)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ord := range r.orders {
		if ord.ID == id {
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}
