package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateRecord(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"índice de dedup", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: dedupKeyIndexName}), true},
		{"sin nombre de constraint", &pgconn.PgError{Code: "23505"}, true},
		{"otra llave única", &pgconn.PgError{Code: "23505", ConstraintName: "expense_records_pkey"}, false},
		{"llave foránea", &pgconn.PgError{Code: "23503"}, false},
		{"error de red", errors.New("connection refused 23505"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuplicateRecord(tt.err))
		})
	}
}
