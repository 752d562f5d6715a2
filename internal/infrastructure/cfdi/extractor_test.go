package cfdi_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
	"github.com/csventilacion/cotizador-api/internal/infrastructure/cfdi"
)

const facturaIVA = `<?xml version="1.0" encoding="UTF-8"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" xmlns:tfd="http://www.sat.gob.mx/TimbreFiscalDigital"
  Version="4.0" Fecha="2026-01-15T10:30:00" FormaPago="03" SubTotal="1000.00" Total="1160.00" Moneda="MXN">
  <cfdi:Emisor Rfc="AAA010101AAA" Nombre="PROVEEDOR SA DE CV"/>
  <cfdi:Conceptos>
    <cfdi:Concepto Importe="1000.00">
      <cfdi:Impuestos>
        <cfdi:Traslados><cfdi:Traslado Impuesto="002" Importe="160.00"/></cfdi:Traslados>
      </cfdi:Impuestos>
    </cfdi:Concepto>
  </cfdi:Conceptos>
  <cfdi:Impuestos TotalImpuestosTrasladados="160.00">
    <cfdi:Traslados><cfdi:Traslado Impuesto="002" TipoFactor="Tasa" Importe="160.00"/></cfdi:Traslados>
  </cfdi:Impuestos>
  <cfdi:Complemento>
    <tfd:TimbreFiscalDigital UUID="6f1c2a9e-0d4b-4c36-9a51-1b2f7e8d9c01"/>
  </cfdi:Complemento>
</cfdi:Comprobante>`

const facturaSinImpuestos = `<Comprobante Fecha="2026-02-01" SubTotal="1000" Total="1160"></Comprobante>`

const facturaRetenciones = `<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4" SubTotal="1000" Total="1060">
  <cfdi:Impuestos>
    <cfdi:Traslados>
      <cfdi:Traslado Impuesto="002" Importe="160"/>
      <cfdi:Traslado Impuesto="003" Importe="80"/>
      <cfdi:Traslado Impuesto="002" TipoFactor="Exento"/>
    </cfdi:Traslados>
    <cfdi:Retenciones>
      <cfdi:Retencion Impuesto="001" Importe="100"/>
      <cfdi:Retencion Impuesto="002" Importe="80"/>
    </cfdi:Retenciones>
  </cfdi:Impuestos>
</cfdi:Comprobante>`

func TestExtract_IVADesglosado(t *testing.T) {
	rec, err := cfdi.NewExtractor().Extract("factura1.xml", []byte(facturaIVA))
	require.NoError(t, err)

	assert.Equal(t, "2026-01-15", rec.Date)
	assert.Equal(t, "03", rec.PaymentMethod)
	assert.Equal(t, "PROVEEDOR SA DE CV", rec.IssuerName)
	assert.Equal(t, "AAA010101AAA", rec.IssuerTaxID)
	assert.Equal(t, "MXN", rec.Currency)
	assert.Equal(t, "1000", rec.Subtotal.String())
	assert.Equal(t, "1160", rec.Total.String())
	assert.Equal(t, "160", rec.VAT.String(), "el impuesto por concepto no se suma dos veces")
	assert.True(t, rec.OtherTaxes.IsZero())
	assert.Equal(t, entity.TaxSourceItemized, rec.TaxSource)
	assert.False(t, rec.VATEstimated())
	assert.Equal(t, "6f1c2a9e-0d4b-4c36-9a51-1b2f7e8d9c01", rec.UUID, "el folio fiscal se guarda tal como viene")
	assert.Equal(t, "uuid:6F1C2A9E-0D4B-4C36-9A51-1B2F7E8D9C01", rec.DedupKey())
	assert.Equal(t, "factura1.xml", rec.SourceFile)
	assert.Len(t, rec.Fingerprint, 64)
}

func TestExtract_EstimaIVASinNodos(t *testing.T) {
	rec, err := cfdi.NewExtractor().Extract("f.xml", []byte(facturaSinImpuestos))
	require.NoError(t, err)

	assert.Equal(t, "160", rec.VAT.String())
	assert.Equal(t, entity.TaxSourceEstimated, rec.TaxSource)
	assert.True(t, rec.VATEstimated())
	assert.Equal(t, cfdi.DefaultPaymentMethod, rec.PaymentMethod)
	assert.Equal(t, cfdi.DefaultIssuerName, rec.IssuerName)
	assert.Empty(t, rec.IssuerTaxID)
	assert.Empty(t, rec.UUID)
	assert.Equal(t, "sha256:"+rec.Fingerprint, rec.DedupKey())
}

func TestExtract_SinImpuestosNiDiferencia(t *testing.T) {
	rec, err := cfdi.NewExtractor().Extract("f.xml", []byte(`<Comprobante SubTotal="500" Total="500"/>`))
	require.NoError(t, err)
	assert.True(t, rec.VAT.IsZero())
	assert.Equal(t, entity.TaxSourceNone, rec.TaxSource)
}

func TestExtract_RetencionesVanAOtros(t *testing.T) {
	rec, err := cfdi.NewExtractor().Extract("f.xml", []byte(facturaRetenciones))
	require.NoError(t, err)

	assert.Equal(t, "160", rec.VAT.String())
	assert.Equal(t, "260", rec.OtherTaxes.String(), "IEPS 80 + retenciones 180")
	assert.Equal(t, "180", rec.Withheld.String())
	assert.Equal(t, entity.TaxSourceItemized, rec.TaxSource)
}

func TestExtract_Errores(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"sin Total", `<Comprobante SubTotal="100"/>`},
		{"sin SubTotal", `<Comprobante Total="100"/>`},
		{"Total no numérico", `<Comprobante SubTotal="100" Total="cien"/>`},
		{"Importe no numérico", `<Comprobante SubTotal="100" Total="116"><Impuestos><Traslados><Traslado Impuesto="002" Importe="x"/></Traslados></Impuestos></Comprobante>`},
		{"XML roto", `<Comprobante SubTotal="100"`},
		{"vacío", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cfdi.NewExtractor().Extract("f.xml", []byte(tt.xml))
			assert.True(t, errors.Is(err, domain.ErrInvalidInvoice), "err=%v", err)
		})
	}
}

func TestExtract_Latin1(t *testing.T) {
	src := `<?xml version="1.0" encoding="ISO-8859-1"?>
<Comprobante SubTotal="100" Total="116"><Emisor Nombre="FERRETERÍA ÑANDÚ" Rfc="FEÑ010101AAA"/></Comprobante>`
	data, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(src))
	require.NoError(t, err)

	rec, err := cfdi.NewExtractor().Extract("f.xml", data)
	require.NoError(t, err)
	assert.Equal(t, "FERRETERÍA ÑANDÚ", rec.IssuerName)
	assert.Equal(t, "FEÑ010101AAA", rec.IssuerTaxID)
}

func TestExtract_HuellaEstable(t *testing.T) {
	e := cfdi.NewExtractor()
	a, err := e.Extract("a.xml", []byte(facturaSinImpuestos))
	require.NoError(t, err)
	b, err := e.Extract("b.xml", []byte(facturaSinImpuestos))
	require.NoError(t, err)
	c, err := e.Extract("c.xml", []byte(`<Comprobante Fecha="2026-02-02" SubTotal="1000" Total="1160"></Comprobante>`))
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint, b.Fingerprint)
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestExtractBatch_UnArchivoMaloNoDetieneElLote(t *testing.T) {
	files := []cfdi.File{
		{Name: "uno.xml", Data: []byte(facturaIVA)},
		{Name: "roto.xml", Data: []byte("<Comprobante")},
		{Name: "dos.XML", Data: []byte(facturaSinImpuestos)},
		{Name: "foto.pdf", Data: []byte("%PDF-1.4")},
	}

	res := cfdi.NewExtractor().ExtractBatch(files)

	require.Len(t, res.Records, 2)
	assert.Equal(t, "uno.xml", res.Records[0].SourceFile)
	assert.Equal(t, "dos.XML", res.Records[1].SourceFile)

	require.Len(t, res.Errors, 2)
	assert.Equal(t, "roto.xml", res.Errors[0].Filename)
	assert.True(t, errors.Is(res.Errors[0].Err, domain.ErrInvalidInvoice))
	assert.Equal(t, "foto.pdf", res.Errors[1].Filename)
	assert.True(t, errors.Is(res.Errors[1].Err, domain.ErrUnsupportedFile))

	assert.Equal(t, 2, res.Summary.Count)
	assert.Equal(t, "2000", res.Summary.Subtotal.String())
	assert.Equal(t, "320", res.Summary.VAT.String())
	assert.Equal(t, "2320", res.Summary.Total.String())
}
