package review

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler delegates review operations to the review service.
// This keeps review-specific HTTP routing isolated from the product handler.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(s *Service, logger *zap.Logger) *Handler {
	return &Handler{service: s, logger: logger}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products/:id/reviews", h.getReviews)
	app.Post("/api/products/:id/reviews", h.addReview)
}

type reviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
	Author  string  `json:"author,omitempty"`
}

func (h *Handler) getReviews(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	reviews, err := h.service.ListByProduct(productID)
	if err != nil {
		switch err {
		case ErrProductNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		default:
			h.logger.Error("list reviews failed", zap.Int("productId", productID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load reviews"})
		}
	}
	return c.JSON(reviews)
}

func (h *Handler) addReview(c *fiber.Ctx) error {
	productID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	payload := new(reviewRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Add(productID, payload.Rating, payload.Comment, payload.Author)
	if err != nil {
		switch err {
		case ErrProductNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case ErrInvalidRating:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			h.logger.Error("add review failed", zap.Int("productId", productID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not save review"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}
