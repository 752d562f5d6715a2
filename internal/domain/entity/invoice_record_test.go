package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/csventilacion/cotizador-api/internal/domain/entity"
)

func TestDedupKey(t *testing.T) {
	tests := []struct {
		name string
		rec  entity.InvoiceRecord
		want string
	}{
		{"uuid en minúsculas", entity.InvoiceRecord{UUID: "abc-123"}, "uuid:ABC-123"},
		{"uuid con espacios", entity.InvoiceRecord{UUID: " ABC-123 "}, "uuid:ABC-123"},
		{"sin uuid usa la huella", entity.InvoiceRecord{Fingerprint: "f00d"}, "sha256:f00d"},
		{"uuid en blanco usa la huella", entity.InvoiceRecord{UUID: "  ", Fingerprint: "f00d"}, "sha256:f00d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.DedupKey())
		})
	}
}

func TestDedupKey_NoModificaElUUID(t *testing.T) {
	rec := entity.InvoiceRecord{UUID: "abc"}
	_ = rec.DedupKey()
	assert.Equal(t, "abc", rec.UUID)
}
