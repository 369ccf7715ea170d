package checkout

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/wirote65/storefront-backend/internal/cart"
	"github.com/wirote65/storefront-backend/internal/order"
)

// Quote is the running price summary for a checkout session, recomputed
// from the live cart with the same pricing rule order validation enforces.
type Quote struct {
	Subtotal       float64 `json:"subtotal"`
	DeliveryCharge float64 `json:"deliveryCharge"`
	Total          float64 `json:"total"`
}

// Service orchestrates the checkout workflow: cart retrieval, address and
// payment capture, order creation, cart clearing.
type Service struct {
	sessions *SessionStore
	carts    *cart.Service
	orders   *order.Service
	logger   *zap.Logger
}

func NewService(sessions *SessionStore, carts *cart.Service, orders *order.Service, logger *zap.Logger) *Service {
	return &Service{sessions: sessions, carts: carts, orders: orders, logger: logger}
}

// Start opens a session at the cart-review step. An empty cart cannot enter
// checkout.
func (s *Service) Start(owner cart.Owner) (Session, Quote, error) {
	lines, err := s.carts.List(owner)
	if err != nil {
		return Session{}, Quote{}, err
	}
	if len(lines) == 0 {
		return Session{}, Quote{}, ErrEmptyCart
	}
	sess := s.sessions.Create(owner)
	return sess, quoteLines(lines, s.orders.Pricing()), nil
}

func (s *Service) Get(id string) (Session, Quote, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return Session{}, Quote{}, err
	}
	q, err := s.quote(sess.Owner)
	if err != nil {
		return Session{}, Quote{}, err
	}
	return sess, q, nil
}

func (s *Service) SetAddress(id string, addr order.DeliveryAddress) (Session, error) {
	return s.sessions.Update(id, func(sess *Session) error {
		if sess.State == StatePlaced {
			return ErrInvalidTransition
		}
		sess.Address = addr
		return nil
	})
}

func (s *Service) SetPayment(id, method string) (Session, error) {
	return s.sessions.Update(id, func(sess *Session) error {
		if sess.State == StatePlaced {
			return ErrInvalidTransition
		}
		sess.PaymentMethod = method
		return nil
	})
}

func (s *Service) Advance(id string) (Session, error) {
	return s.sessions.Update(id, func(sess *Session) error {
		return sess.Advance()
	})
}

func (s *Service) Back(id string) (Session, error) {
	return s.sessions.Update(id, func(sess *Session) error {
		return sess.Back()
	})
}

// Place creates the order from the live cart and clears the cart. Any
// failure leaves the session at the payment step so the customer can retry.
// The whole step runs under the session lock, so concurrent place requests
// for one session cannot both create an order.
func (s *Service) Place(id string) (order.Order, error) {
	var created order.Order
	_, err := s.sessions.Update(id, func(sess *Session) error {
		if sess.State != StatePayment {
			return ErrNotAtPayment
		}
		if missing := sess.Address.MissingFields(); len(missing) > 0 {
			return &IncompleteAddressError{FailedStep: StateDeliveryAddress, Fields: missing}
		}

		lines, err := s.carts.List(sess.Owner)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		items := make([]order.Item, len(lines))
		for i, line := range lines {
			items[i] = order.Item{
				ProductID: line.Product.ID,
				Quantity:  line.Quantity,
				UnitPrice: line.Product.Price,
			}
		}
		ord := order.Order{
			CustomerKey:     customerKey(sess.Owner),
			PaymentMethod:   sess.PaymentMethod,
			DeliveryAddress: sess.Address,
		}

		created, err = s.orders.Create(ord, items)
		if err != nil {
			return err
		}

		if err := s.carts.Clear(sess.Owner); err != nil {
			// the order is already placed; a stale cart is the lesser problem
			s.logger.Warn("cart clear after checkout failed", zap.String("session", sess.ID), zap.Error(err))
		}

		sess.State = StatePlaced
		sess.OrderID = created.ID
		return nil
	})
	if err != nil {
		return order.Order{}, err
	}
	return created, nil
}

func (s *Service) quote(owner cart.Owner) (Quote, error) {
	lines, err := s.carts.List(owner)
	if err != nil {
		return Quote{}, err
	}
	return quoteLines(lines, s.orders.Pricing()), nil
}

func quoteLines(lines []cart.Line, pricing order.Pricing) Quote {
	subtotal := 0.0
	for _, line := range lines {
		subtotal += line.Product.Price * float64(line.Quantity)
	}
	subtotal = math.Round(subtotal*100) / 100
	charge, total := pricing.Quote(subtotal)
	return Quote{Subtotal: subtotal, DeliveryCharge: charge, Total: total}
}

func customerKey(o cart.Owner) string {
	if o.UserID > 0 {
		return strconv.Itoa(o.UserID)
	}
	return o.SessionID
}
