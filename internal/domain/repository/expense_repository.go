package repository

import (
	"context"

	"github.com/csventilacion/cotizador-api/internal/domain/entity"
)

// ExpenseRepository define el puerto de persistencia del historial de facturas procesadas.
type ExpenseRepository interface {
	// Save retorna domain.ErrDuplicate si ya existe un registro con la misma DedupKey.
	Save(ctx context.Context, record *entity.InvoiceRecord) error
	List(ctx context.Context, limit, offset int) ([]*entity.InvoiceRecord, error)
	Count(ctx context.Context) (int, error)
}
