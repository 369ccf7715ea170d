package category

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(s *Service, logger *zap.Logger) *Handler {
	return &Handler{service: s, logger: logger}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/categories", h.getCategories)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	items, err := h.service.ListActive()
	if err != nil {
		h.logger.Error("list categories failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load categories"})
	}
	return c.JSON(items)
}
