package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/csventilacion/cotizador-api/internal/application/dto"
	"github.com/csventilacion/cotizador-api/internal/application/usecase"
)

// ROIHandler comparador de retorno de inversión.
type ROIHandler struct {
	uc *usecase.ROIUseCase
}

// NewROIHandler construye el handler.
func NewROIHandler(uc *usecase.ROIUseCase) *ROIHandler {
	return &ROIHandler{uc: uc}
}

// Compare godoc
// @Summary      Comparar consumo y recuperación de dos equipos
// @Tags         roi
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ROIRequest  true  "Operación y equipos"
// @Success      200   {object}  dto.ROIResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/roi/compare [post]
func (h *ROIHandler) Compare(c *fiber.Ctx) error {
	var in dto.ROIRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Compare(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
