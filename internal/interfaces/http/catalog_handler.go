package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/csventilacion/cotizador-api/internal/application/quote"
)

// CatalogHandler consultas al catálogo de productos.
type CatalogHandler struct {
	uc *quote.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *quote.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// Health godoc
// @Summary      Estado del servicio y del catálogo
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func (h *CatalogHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.uc.Health())
}

// Tiers godoc
// @Summary      Listas de precios
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TierResponse
// @Router       /api/catalog/tiers [get]
func (h *CatalogHandler) Tiers(c *fiber.Ctx) error {
	return c.JSON(h.uc.Tiers())
}

// Categories godoc
// @Summary      Categorías cotizables
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CategoriesResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/catalog/categories [get]
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Models godoc
// @Summary      Modelos de una categoría
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        category  path  string  true  "Categoría"
// @Success      200  {object}  dto.ModelsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/catalog/categories/{category}/models [get]
func (h *CatalogHandler) Models(c *fiber.Ctx) error {
	category, err := url.PathUnescape(c.Params("category"))
	if err != nil || category == "" {
		return validation(c, "categoría inválida")
	}
	out, err := h.uc.Models(category)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MotorHP godoc
// @Summary      Potencias de motor disponibles
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MotorHPResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/catalog/motors/hp [get]
func (h *CatalogHandler) MotorHP(c *fiber.Ctx) error {
	out, err := h.uc.MotorHP()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
