package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/csventilacion/cotizador-api/internal/application/dto"
	"github.com/csventilacion/cotizador-api/internal/application/quote"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/excel"
)

const (
	mimeXLSX         = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	quotePDFFilename = "Cotizacion_CS.pdf"
)

// QuoteHandler cotización y pedido de la sesión.
type QuoteHandler struct {
	uc *quote.UseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *quote.UseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// Resolve godoc
// @Summary      Resolver precio, costo y utilidad sin agregar al pedido
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuoteRequest  true  "Selección"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/quotes/resolve [post]
func (h *QuoteHandler) Resolve(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Resolve(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetCart godoc
// @Summary      Pedido de la sesión con totales por moneda
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *QuoteHandler) GetCart(c *fiber.Ctx) error {
	return c.JSON(h.uc.Cart(GetCart(c)))
}

// AddItem godoc
// @Summary      Agregar renglón al pedido (el precio se recalcula en el servidor)
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuoteRequest  true  "Selección"
// @Success      201   {object}  dto.CartItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *QuoteHandler) AddItem(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddToCart(GetCart(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ClearCart godoc
// @Summary      Vaciar pedido
// @Tags         cart
// @Security     Bearer
// @Success      204
// @Router       /api/cart [delete]
func (h *QuoteHandler) ClearCart(c *fiber.Ctx) error {
	h.uc.ClearCart(GetCart(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// Mailto godoc
// @Summary      Armar correo de solicitud de compra para ventas
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerInfo  true  "Datos del cliente"
// @Success      200   {object}  dto.MailtoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cart/mailto [post]
func (h *QuoteHandler) Mailto(c *fiber.Ctx) error {
	var in dto.CustomerInfo
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Mailto(GetCart(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Cotización en PDF para el cliente
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.CustomerInfo  true  "Datos del cliente"
// @Success      200   {file}  binary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cart/pdf [post]
func (h *QuoteHandler) PDF(c *fiber.Ctx) error {
	var in dto.CustomerInfo
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.QuotePDF(c.UserContext(), GetCart(c), in)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(quotePDFFilename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(out)
}

// Export godoc
// @Summary      Pedido en Excel con costos y utilidad
// @Tags         cart
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cart/export [get]
func (h *QuoteHandler) Export(c *fiber.Ctx) error {
	out, err := h.uc.ExportCart(GetCart(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(excel.CartExportFilename)
	c.Set(fiber.HeaderContentType, mimeXLSX)
	return c.Send(out)
}
