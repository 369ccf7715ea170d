package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wirote65/storefront-backend/internal/cart"
	"github.com/wirote65/storefront-backend/internal/identity"
	"github.com/wirote65/storefront-backend/internal/order"
)

// Handler exposes the checkout workflow over HTTP.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(s *Service, logger *zap.Logger) *Handler {
	return &Handler{service: s, logger: logger}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/checkout", h.start)
	app.Get("/api/checkout/:id", h.get)
	app.Put("/api/checkout/:id/address", h.setAddress)
	app.Put("/api/checkout/:id/payment", h.setPayment)
	app.Post("/api/checkout/:id/next", h.next)
	app.Post("/api/checkout/:id/back", h.back)
	app.Post("/api/checkout/:id/place", h.place)
}

// sessionView is the JSON shape of a checkout session.
type sessionView struct {
	ID            string                `json:"id"`
	State         State                 `json:"state"`
	Address       order.DeliveryAddress `json:"deliveryAddress"`
	PaymentMethod string                `json:"paymentMethod,omitempty"`
	OrderID       int                   `json:"orderId,omitempty"`
	Quote         *Quote                `json:"quote,omitempty"`
}

func view(sess Session, q *Quote) sessionView {
	return sessionView{
		ID:            sess.ID,
		State:         sess.State,
		Address:       sess.Address,
		PaymentMethod: sess.PaymentMethod,
		OrderID:       sess.OrderID,
		Quote:         q,
	}
}

type startRequest struct {
	UserID    int    `json:"userId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

func (h *Handler) start(c *fiber.Ctx) error {
	payload := new(startRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	owner, err := h.owner(c, payload.UserID, payload.SessionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	sess, q, err := h.service.Start(owner)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			h.logger.Error("start checkout failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not start checkout"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(view(sess, &q))
}

func (h *Handler) owner(c *fiber.Ctx, userID int, sessionID string) (cart.Owner, error) {
	if id, err := identity.UserIDFromCtx(c); err == nil {
		return cart.Owner{UserID: id}, nil
	}
	return cart.ResolveOwner(userID, sessionID)
}

func (h *Handler) get(c *fiber.Ctx) error {
	sess, q, err := h.service.Get(c.Params("id"))
	if err != nil {
		return h.fail(c, err, "load checkout")
	}
	return c.JSON(view(sess, &q))
}

func (h *Handler) setAddress(c *fiber.Ctx) error {
	addr := new(order.DeliveryAddress)
	if err := c.BodyParser(addr); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	sess, err := h.service.SetAddress(c.Params("id"), *addr)
	if err != nil {
		return h.fail(c, err, "set address")
	}
	return c.JSON(view(sess, nil))
}

type paymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

func (h *Handler) setPayment(c *fiber.Ctx) error {
	payload := new(paymentRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	sess, err := h.service.SetPayment(c.Params("id"), payload.PaymentMethod)
	if err != nil {
		return h.fail(c, err, "set payment")
	}
	return c.JSON(view(sess, nil))
}

func (h *Handler) next(c *fiber.Ctx) error {
	sess, err := h.service.Advance(c.Params("id"))
	if err != nil {
		return h.fail(c, err, "advance checkout")
	}
	return c.JSON(view(sess, nil))
}

func (h *Handler) back(c *fiber.Ctx) error {
	sess, err := h.service.Back(c.Params("id"))
	if err != nil {
		return h.fail(c, err, "rewind checkout")
	}
	return c.JSON(view(sess, nil))
}

func (h *Handler) place(c *fiber.Ctx) error {
	created, err := h.service.Place(c.Params("id"))
	if err != nil {
		var addrErr *IncompleteAddressError
		if errors.As(err, &addrErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message":    addrErr.Error(),
				"failedStep": addrErr.FailedStep,
				"fields":     addrErr.Fields,
			})
		}
		return h.fail(c, err, "place order")
	}
	created.Items = nil
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) fail(c *fiber.Ctx, err error, op string) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrEmptyCart), errors.Is(err, ErrNotAtPayment),
		errors.Is(err, order.ErrMissingPayment), errors.Is(err, order.ErrEmptyOrder),
		errors.Is(err, order.ErrIncompleteAddress), errors.Is(err, order.ErrInvalidItem):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "checkout failed"})
	}
}
