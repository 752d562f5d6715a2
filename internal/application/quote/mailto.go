package quote

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/csventilacion/cotizador-api/internal/application/dto"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
	"github.com/csventilacion/cotizador-api/pkg/money"
)

type mail struct {
	subject string
	body    string
}

func buildMail(info dto.CustomerInfo, tierLabel string, items []entity.CartLineItem, totals []entity.CurrencyTotals) mail {
	var b strings.Builder
	b.WriteString("SOLICITUD DE COMPRA / COTIZACIÓN\n\n")
	b.WriteString("DATOS DEL CLIENTE:\n")
	fmt.Fprintf(&b, "Proyecto: %s\n", info.Project)
	fmt.Fprintf(&b, "Ciudad: %s\n", info.City)
	fmt.Fprintf(&b, "Celular: %s\n", info.Phone)
	fmt.Fprintf(&b, "Lista de Precios Usada: %s\n\n", tierLabel)
	b.WriteString("DETALLE DEL PEDIDO:\n")
	for _, it := range items {
		fmt.Fprintf(&b, "\n- (%d) %s\n  %s\n  Precio Venta: %s\n",
			it.Quantity, it.Model, it.Description, money.FormatWithCurrency(it.TotalSale, it.Currency))
	}
	b.WriteString("\nRESUMEN VENTA:\n")
	for _, t := range totals {
		fmt.Fprintf(&b, "Total (%s): %s\n", t.Currency, money.Format(t.TotalSale))
	}
	return mail{
		subject: fmt.Sprintf("Pedido: %s (%s)", info.Project, info.City),
		body:    b.String(),
	}
}

// mailtoURL codifica asunto y cuerpo con %20 para espacios; los clientes de correo no leen "+".
func mailtoURL(to, subject, body string) string {
	return "mailto:" + to + "?subject=" + escape(subject) + "&body=" + escape(body)
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
