package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wirote65/storefront-backend/internal/cart"
	"github.com/wirote65/storefront-backend/internal/order"
)

var (
	ErrSessionNotFound   = errors.New("checkout session not found")
	ErrInvalidTransition = errors.New("invalid checkout transition")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrNotAtPayment      = errors.New("order can only be placed from the payment step")
)

// State is a step of the checkout workflow. The flow is linear:
// CartReview -> DeliveryAddress -> Payment -> Placed, with backward
// navigation allowed everywhere except out of the terminal Placed state.
type State string

const (
	StateCartReview      State = "cart_review"
	StateDeliveryAddress State = "delivery_address"
	StatePayment         State = "payment"
	StatePlaced          State = "placed"
)

// IncompleteAddressError blocks the transition into Placed and reports
// which step failed along with the offending fields.
type IncompleteAddressError struct {
	FailedStep State
	Fields     []string
}

func (e *IncompleteAddressError) Error() string {
	return fmt.Sprintf("step %s incomplete: missing %s", e.FailedStep, strings.Join(e.Fields, ", "))
}

// Session is one customer's progress through the checkout workflow.
type Session struct {
	ID            string
	Owner         cart.Owner
	State         State
	Address       order.DeliveryAddress
	PaymentMethod string
	OrderID       int
}

// Advance moves one step forward. Payment does not advance here; only a
// successful Place reaches the terminal state.
func (s *Session) Advance() error {
	switch s.State {
	case StateCartReview:
		s.State = StateDeliveryAddress
	case StateDeliveryAddress:
		s.State = StatePayment
	default:
		return ErrInvalidTransition
	}
	return nil
}

// Back moves one step backward. Placed is terminal.
func (s *Session) Back() error {
	switch s.State {
	case StatePayment:
		s.State = StateDeliveryAddress
	case StateDeliveryAddress:
		s.State = StateCartReview
	default:
		return ErrInvalidTransition
	}
	return nil
}
