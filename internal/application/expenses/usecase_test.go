package expenses_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csventilacion/cotizador-api/internal/application/dto"
	"github.com/csventilacion/cotizador-api/internal/application/expenses"
	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/cfdi"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/excel"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/memory"
	"github.com/csventilacion/cotizador-api/pkg/logger"
)

const factura = `<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" xmlns:tfd="http://www.sat.gob.mx/TimbreFiscalDigital"
  Fecha="2026-01-15T10:30:00" FormaPago="03" SubTotal="1000.00" Total="1160.00" Moneda="MXN">
  <cfdi:Emisor Rfc="AAA010101AAA" Nombre="PROVEEDOR SA DE CV"/>
  <cfdi:Impuestos><cfdi:Traslados><cfdi:Traslado Impuesto="002" Importe="160.00"/></cfdi:Traslados></cfdi:Impuestos>
  <cfdi:Complemento><tfd:TimbreFiscalDigital UUID="6f1c2a9e-0d4b-4c36-9a51-1b2f7e8d9c01"/></cfdi:Complemento>
</cfdi:Comprobante>`

const facturaSinTimbre = `<Comprobante Fecha="2026-02-01" SubTotal="500" Total="580"></Comprobante>`

func newUseCase() (*expenses.UseCase, *memory.ExpenseRepo) {
	repo := memory.NewExpenseRepository()
	return expenses.NewUseCase(cfdi.NewExtractor(), repo, excel.ExpenseReport, logger.NewNop()), repo
}

func TestProcess_GuardaYReportaErrores(t *testing.T) {
	uc, repo := newUseCase()

	res, err := uc.Process(context.Background(), []cfdi.File{
		{Name: "a.xml", Data: []byte(factura)},
		{Name: "b.XML", Data: []byte(facturaSinTimbre)},
		{Name: "c.pdf", Data: []byte("%PDF")},
		{Name: "d.xml", Data: []byte("<roto")},
	})
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	assert.Equal(t, "a.xml", res.Records[0].SourceFile)
	assert.False(t, res.Records[0].VATEstimated)
	assert.True(t, res.Records[1].VATEstimated)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, "c.pdf", res.Errors[0].Filename)
	assert.Equal(t, "d.xml", res.Errors[1].Filename)
	assert.Empty(t, res.Duplicates)
	assert.Equal(t, 2, res.Summary.Count)
	assert.Equal(t, "1740", res.Summary.Total.String())

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestProcess_DuplicadosNoAbortan(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()

	_, err := uc.Process(ctx, []cfdi.File{{Name: "a.xml", Data: []byte(factura)}})
	require.NoError(t, err)

	res, err := uc.Process(ctx, []cfdi.File{
		{Name: "a-copia.xml", Data: []byte(factura)},
		{Name: "b.xml", Data: []byte(facturaSinTimbre)},
	})
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)
	assert.Equal(t, []string{"a-copia.xml"}, res.Duplicates)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestProcess_SinArchivos(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Process(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestExport(t *testing.T) {
	uc, _ := newUseCase()

	out, err := uc.Export([]cfdi.File{{Name: "a.xml", Data: []byte(factura)}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "PK"))

	_, err = uc.Export([]cfdi.File{{Name: "c.pdf", Data: []byte("%PDF")}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestExport_UsaElEscritorInyectado(t *testing.T) {
	var got []*entity.InvoiceRecord
	writer := func(records []*entity.InvoiceRecord) ([]byte, error) {
		got = records
		return []byte("ok"), nil
	}
	uc := expenses.NewUseCase(cfdi.NewExtractor(), memory.NewExpenseRepository(), writer, nil)

	out, err := uc.Export([]cfdi.File{
		{Name: "a.xml", Data: []byte(factura)},
		{Name: "b.xml", Data: []byte(facturaSinTimbre)},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
	require.Len(t, got, 2)
	assert.Equal(t, "PROVEEDOR SA DE CV", got[0].IssuerName)
	assert.Equal(t, "Sin Nombre", got[1].IssuerName)
}

func TestHistory_Paginado(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.Process(ctx, []cfdi.File{
		{Name: "a.xml", Data: []byte(factura)},
		{Name: "b.xml", Data: []byte(facturaSinTimbre)},
	})
	require.NoError(t, err)

	res, err := uc.History(ctx, dto.PageRequest{Limit: 1})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, 2, res.Page.Total)
	assert.Equal(t, 1, res.Page.Limit)

	res, err = uc.History(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, res.Records, 2)
	assert.Equal(t, 20, res.Page.Limit)
}
