package order

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidItem       = errors.New("order item is invalid")
	ErrMissingCustomer   = errors.New("customerId is required")
	ErrMissingPayment    = errors.New("paymentMethod is required")
	ErrTotalsMismatch    = errors.New("submitted totals do not match the order items")
	ErrIncompleteAddress = errors.New("delivery address is incomplete")
)

// Service provides business logic for orders. Totals submitted by the
// client are recomputed from the items and rejected on mismatch instead of
// being trusted.
type Service struct {
	repo              Repository
	pricing           Pricing
	estimatedDelivery string
}

func NewService(r Repository, pricing Pricing, estimatedDelivery string) *Service {
	return &Service{repo: r, pricing: pricing, estimatedDelivery: estimatedDelivery}
}

// Pricing exposes the delivery pricing rule so the checkout workflow quotes
// with the same numbers the order validation enforces.
func (s *Service) Pricing() Pricing {
	return s.pricing
}

func (s *Service) Create(ord Order, items []Item) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrEmptyOrder
	}
	for _, it := range items {
		if it.ProductID <= 0 || it.Quantity <= 0 || it.UnitPrice < 0 {
			return Order{}, ErrInvalidItem
		}
	}
	if ord.CustomerKey == "" {
		return Order{}, ErrMissingCustomer
	}
	if ord.PaymentMethod == "" {
		return Order{}, ErrMissingPayment
	}
	if missing := ord.DeliveryAddress.MissingFields(); len(missing) > 0 {
		return Order{}, fmt.Errorf("%w: %s", ErrIncompleteAddress, strings.Join(missing, ", "))
	}

	subtotal := 0.0
	for i := range items {
		items[i].TotalPrice = round2(items[i].UnitPrice * float64(items[i].Quantity))
		subtotal += items[i].TotalPrice
	}
	subtotal = round2(subtotal)
	charge, total := s.pricing.Quote(subtotal)

	// a zero submitted total means "compute for me"; anything else must match
	if ord.Subtotal != 0 || ord.Total != 0 {
		if !moneyEqual(ord.Subtotal, subtotal) || !moneyEqual(ord.DeliveryCharge, charge) || !moneyEqual(ord.Total, total) {
			return Order{}, ErrTotalsMismatch
		}
	}
	ord.Subtotal = subtotal
	ord.DeliveryCharge = charge
	ord.Total = total

	if ord.OrderNumber == "" {
		ord.OrderNumber = "ORD-" + strings.ToUpper(uuid.NewString()[:8])
	}
	if ord.Status == "" {
		ord.Status = "pending"
	}
	if ord.PaymentStatus == "" {
		ord.PaymentStatus = "pending"
	}
	if ord.EstimatedDeliveryTime == "" {
		ord.EstimatedDeliveryTime = s.estimatedDelivery
	}
	ord.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	return s.repo.Create(ord, items)
}

func (s *Service) ListByCustomer(key string) ([]Order, error) {
	if key == "" {
		return nil, ErrMissingCustomer
	}
	return s.repo.ListByCustomer(key)
}

func (s *Service) GetByID(id int) (Order, error) {
	if id <= 0 {
		return Order{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func moneyEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}
