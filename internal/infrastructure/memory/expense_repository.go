package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
	"github.com/csventilacion/cotizador-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo historial de gastos en memoria (STORAGE_DRIVER=memory).
type ExpenseRepo struct {
	mu      sync.RWMutex
	records []*entity.InvoiceRecord
	keys    map[string]struct{}
}

// NewExpenseRepository construye el repositorio vacío.
func NewExpenseRepository() *ExpenseRepo {
	return &ExpenseRepo{keys: make(map[string]struct{})}
}

// Save guarda una copia del registro; la misma factura (UUID o huella) no se guarda dos veces.
func (r *ExpenseRepo) Save(_ context.Context, record *entity.InvoiceRecord) error {
	key := record.DedupKey()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.keys[key]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, key)
	}
	cp := *record
	r.records = append(r.records, &cp)
	r.keys[key] = struct{}{}
	return nil
}

// List devuelve los registros más recientes primero.
func (r *ExpenseRepo) List(_ context.Context, limit, offset int) ([]*entity.InvoiceRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.InvoiceRecord, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		cp := *r.records[i]
		out = append(out, &cp)
	}
	if offset > 0 {
		if offset >= len(out) {
			return []*entity.InvoiceRecord{}, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// Count total de registros guardados.
func (r *ExpenseRepo) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records), nil
}
