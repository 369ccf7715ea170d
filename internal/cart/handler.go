package cart

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wirote65/storefront-backend/internal/identity"
)

// Handler delegates cart operations to the cart service.
// This keeps cart-specific HTTP routing isolated.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(s *Service, logger *zap.Logger) *Handler {
	return &Handler{service: s, logger: logger}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/cart", h.getCart)
	app.Post("/api/cart", h.addToCart)
	app.Put("/api/cart/:id", h.updateQuantity)
	app.Delete("/api/cart/:id", h.removeItem)
	app.Delete("/api/cart", h.clearCart)
}

// ownerFromCtx resolves the cart owner. A valid JWT wins; otherwise the
// explicit userId/sessionId identifiers are used, userId first.
func ownerFromCtx(c *fiber.Ctx, userID int, sessionID string) (Owner, error) {
	if id, err := identity.UserIDFromCtx(c); err == nil {
		return Owner{UserID: id}, nil
	}
	return ResolveOwner(userID, sessionID)
}

func queryOwner(c *fiber.Ctx) (Owner, error) {
	userID := 0
	if v := c.Query("userId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return Owner{}, ErrNoOwner
		}
		userID = id
	}
	return ownerFromCtx(c, userID, c.Query("sessionId"))
}

type addRequest struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
	UserID    int    `json:"userId,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	owner, err := ownerFromCtx(c, payload.UserID, payload.SessionID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	item, err := h.service.Add(owner, payload.ProductID, payload.Quantity)
	if err != nil {
		switch err {
		case ErrInvalidProduct, ErrInvalidQuantity:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			h.logger.Error("add to cart failed", zap.Int("productId", payload.ProductID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update cart"})
		}
	}
	return c.Status(fiber.StatusOK).JSON(item)
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	owner, err := queryOwner(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	lines, err := h.service.List(owner)
	if err != nil {
		h.logger.Error("list cart failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load cart"})
	}
	return c.JSON(lines)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateQuantity(c *fiber.Ctx) error {
	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid item id"})
	}
	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	item, err := h.service.UpdateQuantity(itemID, payload.Quantity)
	if err != nil {
		switch err {
		case ErrItemNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart item not found"})
		default:
			h.logger.Error("update cart quantity failed", zap.Int("itemId", itemID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update cart"})
		}
	}
	if item == nil {
		// quantity dropped to zero, row removed
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(item)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	itemID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid item id"})
	}
	if err := h.service.Remove(itemID); err != nil {
		switch err {
		case ErrItemNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "cart item not found"})
		default:
			h.logger.Error("remove cart item failed", zap.Int("itemId", itemID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not update cart"})
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	owner, err := queryOwner(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.Clear(owner); err != nil {
		h.logger.Error("clear cart failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not clear cart"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
