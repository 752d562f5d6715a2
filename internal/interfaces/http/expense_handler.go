package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/csventilacion/cotizador-api/internal/application/dto"
	"github.com/csventilacion/cotizador-api/internal/application/expenses"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/cfdi"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/excel"
)

// filesField campo multipart con las facturas.
const filesField = "files"

// ExpenseHandler lector de facturas CFDI.
type ExpenseHandler struct {
	uc *expenses.UseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *expenses.UseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Process godoc
// @Summary      Extraer impuestos de un lote de facturas XML
// @Tags         expenses
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Facturas CFDI (.xml)"
// @Success      200    {object}  dto.ExpenseBatchResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/expenses/process [post]
func (h *ExpenseHandler) Process(c *fiber.Ctx) error {
	files, err := uploadedFiles(c)
	if err != nil {
		return validation(c, err.Error())
	}
	out, err := h.uc.Process(c.UserContext(), files)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Reporte de gastos en Excel
// @Tags         expenses
// @Accept       multipart/form-data
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        files  formData  file  true  "Facturas CFDI (.xml)"
// @Success      200    {file}  binary
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/expenses/export [post]
func (h *ExpenseHandler) Export(c *fiber.Ctx) error {
	files, err := uploadedFiles(c)
	if err != nil {
		return validation(c, err.Error())
	}
	out, err := h.uc.Export(files)
	if err != nil {
		return writeError(c, err)
	}
	c.Attachment(excel.ExpenseReportFilename)
	c.Set(fiber.HeaderContentType, mimeXLSX)
	return c.Send(out)
}

// History godoc
// @Summary      Historial de facturas procesadas
// @Tags         expenses
// @Produce      json
// @Param        limit   query  int  false  "Máximo de registros (1-100)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200     {object}  dto.ExpenseHistoryResponse
// @Router       /api/expenses/history [get]
func (h *ExpenseHandler) History(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return validation(c, "limit y offset deben ser numéricos")
	}
	out, err := h.uc.History(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func uploadedFiles(c *fiber.Ctx) ([]cfdi.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("se espera multipart/form-data con el campo %q", filesField)
	}
	headers := form.File[filesField]
	if len(headers) == 0 {
		return nil, fmt.Errorf("no se recibieron archivos en %q", filesField)
	}
	files := make([]cfdi.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("abrir %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", fh.Filename, err)
		}
		files = append(files, cfdi.File{Name: fh.Filename, Data: data})
	}
	return files, nil
}
