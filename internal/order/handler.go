package order

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler delegates order operations to the order service.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(s *Service, logger *zap.Logger) *Handler {
	return &Handler{service: s, logger: logger}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/orders", h.createOrder)
	app.Get("/api/orders", h.getOrders)
	app.Get("/api/orders/:id", h.getOrder)
}

type orderPayload struct {
	OrderNumber           string          `json:"orderNumber,omitempty"`
	CustomerID            string          `json:"customerId"`
	Subtotal              float64         `json:"subtotal,omitempty"`
	DeliveryCharge        float64         `json:"deliveryCharge,omitempty"`
	Total                 float64         `json:"total,omitempty"`
	PaymentMethod         string          `json:"paymentMethod"`
	PaymentStatus         string          `json:"paymentStatus,omitempty"`
	Status                string          `json:"status,omitempty"`
	DeliveryAddress       DeliveryAddress `json:"deliveryAddress"`
	EstimatedDeliveryTime string          `json:"estimatedDeliveryTime,omitempty"`
}

type itemPayload struct {
	ProductID int     `json:"productId"`
	SellerID  int     `json:"sellerId,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type createOrderRequest struct {
	Order orderPayload  `json:"order"`
	Items []itemPayload `json:"items"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	ord := Order{
		OrderNumber:           payload.Order.OrderNumber,
		CustomerKey:           payload.Order.CustomerID,
		Subtotal:              payload.Order.Subtotal,
		DeliveryCharge:        payload.Order.DeliveryCharge,
		Total:                 payload.Order.Total,
		PaymentMethod:         payload.Order.PaymentMethod,
		PaymentStatus:         payload.Order.PaymentStatus,
		Status:                payload.Order.Status,
		DeliveryAddress:       payload.Order.DeliveryAddress,
		EstimatedDeliveryTime: payload.Order.EstimatedDeliveryTime,
	}
	items := make([]Item, len(payload.Items))
	for i, it := range payload.Items {
		items[i] = Item{ProductID: it.ProductID, SellerID: it.SellerID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}

	created, err := h.service.Create(ord, items)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyOrder), errors.Is(err, ErrInvalidItem),
			errors.Is(err, ErrMissingCustomer), errors.Is(err, ErrMissingPayment),
			errors.Is(err, ErrTotalsMismatch), errors.Is(err, ErrIncompleteAddress),
			errors.Is(err, ErrDuplicateOrderNumber):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			h.logger.Error("create order failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not create order"})
		}
	}

	// the header alone is returned; items are fetched separately on read
	created.Items = nil
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	key := c.Query("customerId")
	orders, err := h.service.ListByCustomer(key)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCustomer):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			h.logger.Error("list orders failed", zap.String("customerId", key), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load orders"})
		}
	}
	return c.JSON(orders)
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	ord, err := h.service.GetByID(id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "order not found"})
		default:
			h.logger.Error("get order failed", zap.Int("id", id), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load order"})
		}
	}
	return c.JSON(ord)
}
