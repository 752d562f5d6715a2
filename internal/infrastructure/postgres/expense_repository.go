package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
	"github.com/csventilacion/cotizador-api/internal/domain/repository"
)

const (
	uniqueViolation   = "23505"
	dedupKeyIndexName = "ux_expense_records_dedup_key"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo historial de facturas procesadas sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, invoice_date, payment_method, issuer_name, issuer_tax_id, currency,
	subtotal, vat, other_taxes, withheld, total, tax_source, cfdi_uuid, fingerprint,
	source_file, processed_at`

// Save inserta el registro; la misma factura (índice único sobre dedup_key) retorna ErrDuplicate.
func (r *ExpenseRepo) Save(ctx context.Context, rec *entity.InvoiceRecord) error {
	query := `
		INSERT INTO expense_records (dedup_key, ` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		rec.DedupKey(), rec.ID, rec.Date, rec.PaymentMethod, rec.IssuerName, rec.IssuerTaxID, rec.Currency,
		rec.Subtotal, rec.VAT, rec.OtherTaxes, rec.Withheld, rec.Total, rec.TaxSource, rec.UUID,
		rec.Fingerprint, rec.SourceFile, rec.ProcessedAt,
	)
	if err != nil {
		if isDuplicateRecord(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicate, rec.DedupKey())
		}
		return fmt.Errorf("insert expense record: %w", err)
	}
	return nil
}

// List registros más recientes primero.
func (r *ExpenseRepo) List(ctx context.Context, limit, offset int) ([]*entity.InvoiceRecord, error) {
	query := `SELECT ` + expenseColumns + `
		FROM expense_records ORDER BY processed_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expense records: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoiceRecord
	for rows.Next() {
		rec, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Count total de registros.
func (r *ExpenseRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM expense_records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count expense records: %w", err)
	}
	return n, nil
}

func scanExpense(row pgxScanner) (*entity.InvoiceRecord, error) {
	var rec entity.InvoiceRecord
	err := row.Scan(
		&rec.ID, &rec.Date, &rec.PaymentMethod, &rec.IssuerName, &rec.IssuerTaxID, &rec.Currency,
		&rec.Subtotal, &rec.VAT, &rec.OtherTaxes, &rec.Withheld, &rec.Total, &rec.TaxSource, &rec.UUID,
		&rec.Fingerprint, &rec.SourceFile, &rec.ProcessedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// isDuplicateRecord indica si el error viene del índice único de dedup_key.
func isDuplicateRecord(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return pgErr.ConstraintName == "" || pgErr.ConstraintName == dedupKeyIndexName
}
