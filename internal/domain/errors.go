package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrCatalogUnavailable = errors.New("catálogo no disponible")
	ErrMotorNotFound      = errors.New("motor no encontrado")
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrInvalidInvoice     = errors.New("factura inválida")
	ErrUnsupportedFile    = errors.New("tipo de archivo no permitido")
)
