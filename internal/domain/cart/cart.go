// Package cart acumula los renglones del pedido de una sesión.
// Agregar siempre crea un renglón nuevo: el mismo modelo puede aparecer varias veces
// con cantidades distintas. No hay edición ni borrado individual; se vacía y se vuelve a armar.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/csventilacion/cotizador-api/internal/domain/entity"
)

// Cart carrito de una sesión.
type Cart struct {
	mu    sync.Mutex
	items []entity.CartLineItem
}

// New carrito vacío.
func New() *Cart {
	return &Cart{}
}

// Add agrega el renglón al final, sin fusionar con renglones existentes.
func (c *Cart) Add(item entity.CartLineItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
}

// Clear vacía el carrito.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items copia de los renglones en orden de alta.
func (c *Cart) Items() []entity.CartLineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]entity.CartLineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len número de renglones.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// TotalsByCurrency suma venta, costo y utilidad por moneda, en el orden en que
// aparece cada moneda por primera vez.
func (c *Cart) TotalsByCurrency() []entity.CurrencyTotals {
	return Totals(c.Items())
}

// Totals agrupa por moneda una lista de renglones.
func Totals(items []entity.CartLineItem) []entity.CurrencyTotals {
	pos := make(map[string]int)
	var out []entity.CurrencyTotals
	for _, it := range items {
		i, ok := pos[it.Currency]
		if !ok {
			i = len(out)
			pos[it.Currency] = i
			out = append(out, entity.CurrencyTotals{
				Currency:    it.Currency,
				TotalSale:   decimal.Zero,
				TotalCost:   decimal.Zero,
				TotalMargin: decimal.Zero,
			})
		}
		t := &out[i]
		t.TotalSale = t.TotalSale.Add(it.TotalSale)
		t.TotalCost = t.TotalCost.Add(it.TotalCost)
		t.TotalMargin = t.TotalMargin.Add(it.TotalMargin)
		t.Items++
	}
	return out
}
