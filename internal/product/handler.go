package product

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products", h.getProducts)
	app.Get("/api/products/:id", h.getProduct)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	f := Filter{
		Search:       c.Query("search"),
		FeaturedOnly: c.Query("featured") == "true",
		ActiveOnly:   true,
	}
	if v := c.Query("categoryId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid categoryId"})
		}
		f.CategoryID = &id
	}
	if v := c.Query("ids"); v != "" {
		for _, part := range strings.Split(v, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid ids"})
			}
			f.IDs = append(f.IDs, id)
		}
	}
	var bracket PriceBracket
	if v := c.Query("priceRange"); v != "" {
		b, ok := ParseBracket(v)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid priceRange"})
		}
		bracket = b
	}

	products, err := h.service.List(f, bracket)
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load products"})
	}
	return c.JSON(products)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid product id"})
	}

	p, err := h.service.GetByID(id)
	if err == ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
	}
	if err != nil {
		h.logger.Error("get product failed", zap.Int("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "could not load product"})
	}
	return c.JSON(p)
}
