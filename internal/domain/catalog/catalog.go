// Package catalog índice de solo lectura sobre el catálogo de productos: búsqueda por
// (categoría, modelo), motores con potencia extraída y transmisiones por grupo de HP.
// Se construye una vez por carga y se comparte entre peticiones sin sincronización.
package catalog

import (
	"fmt"
	"sort"

	"github.com/csventilacion/cotizador-api/internal/domain"
	"github.com/csventilacion/cotizador-api/internal/domain/entity"
)

type rowKey struct {
	category string
	model    string
}

// Catalog catálogo ya cargado.
type Catalog struct {
	rows          []entity.CatalogRow
	index         map[rowKey]int
	motors        []entity.MotorRow
	transmissions map[string][]entity.TransmissionRow
	loadErr       error
}

// Stats conteos del catálogo para health y logs.
type Stats struct {
	Rows          int `json:"rows"`
	Categories    int `json:"categories"`
	Motors        int `json:"motors"`
	Transmissions int `json:"transmissions"`
}

// New construye el índice. El tipo de producto se decide aquí, una sola vez por fila.
func New(rows []entity.CatalogRow) *Catalog {
	c := &Catalog{
		rows:          make([]entity.CatalogRow, 0, len(rows)),
		index:         make(map[rowKey]int, len(rows)),
		transmissions: make(map[string][]entity.TransmissionRow),
	}
	for _, r := range rows {
		r.Kind = entity.KindSimple
		if r.Category == entity.CategoryComposite {
			r.Kind = entity.KindComposite
		}
		c.rows = append(c.rows, r)

		// Con duplicados gana la primera fila.
		k := rowKey{category: r.Category, model: r.Model}
		if _, ok := c.index[k]; !ok {
			c.index[k] = len(c.rows) - 1
		}

		switch {
		case r.Category == entity.CategorySinglePhase || r.Category == entity.CategoryThreePhase:
			hp, ok := ExtractHP(r.Description)
			c.motors = append(c.motors, entity.MotorRow{CatalogRow: r, HP: hp, HPKnown: ok})
		case isBracketCategory(r.Category):
			rng, ok := ParseRPMRange(r.Description)
			c.transmissions[r.Category] = append(c.transmissions[r.Category],
				entity.TransmissionRow{CatalogRow: r, Range: rng, RangeOK: ok})
		}
	}
	return c
}

// Unavailable catálogo vacío que recuerda por qué no se pudo cargar.
func Unavailable(err error) *Catalog {
	c := New(nil)
	c.loadErr = err
	return c
}

// Err devuelve ErrCatalogUnavailable (envuelto con la causa) si no hay datos para cotizar.
func (c *Catalog) Err() error {
	if c.loadErr != nil {
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, c.loadErr)
	}
	if len(c.rows) == 0 {
		return fmt.Errorf("%w: el catálogo no tiene productos", domain.ErrCatalogUnavailable)
	}
	return nil
}

// Find devuelve la primera fila con esa categoría y modelo.
func (c *Catalog) Find(category, model string) (entity.CatalogRow, bool) {
	i, ok := c.index[rowKey{category: category, model: model}]
	if !ok {
		return entity.CatalogRow{}, false
	}
	return c.rows[i], true
}

// Categories categorías cotizables, ordenadas. Motores y transmisiones se excluyen
// porque solo se venden como parte de un producto compuesto.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range c.rows {
		if isComponentCategory(r.Category) {
			continue
		}
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	sort.Strings(out)
	return out
}

// Models modelos de la categoría, ordenados y sin repetir.
func (c *Catalog) Models(category string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range c.rows {
		if r.Category != category {
			continue
		}
		if _, ok := seen[r.Model]; ok {
			continue
		}
		seen[r.Model] = struct{}{}
		out = append(out, r.Model)
	}
	sort.Strings(out)
	return out
}

// MotorHPOptions potencias conocidas de los motores, ordenadas y sin repetir.
func (c *Catalog) MotorHPOptions() []float64 {
	seen := make(map[float64]struct{})
	var out []float64
	for _, m := range c.motors {
		if !m.HPKnown {
			continue
		}
		if _, ok := seen[m.HP]; ok {
			continue
		}
		seen[m.HP] = struct{}{}
		out = append(out, m.HP)
	}
	sort.Float64s(out)
	return out
}

// Motors motores con esa potencia y fase, en el orden de la tabla.
func (c *Catalog) Motors(hp float64, phase entity.Phase) []entity.MotorRow {
	var out []entity.MotorRow
	for _, m := range c.motors {
		if m.HPKnown && m.HP == hp && m.Category == string(phase) {
			out = append(out, m)
		}
	}
	return out
}

// Transmissions transmisiones del grupo, en el orden de la tabla.
func (c *Catalog) Transmissions(bracket Bracket) []entity.TransmissionRow {
	return c.transmissions[bracket.Category]
}

// Stats conteos para health y logs.
func (c *Catalog) Stats() Stats {
	var trans int
	for _, t := range c.transmissions {
		trans += len(t)
	}
	return Stats{
		Rows:          len(c.rows),
		Categories:    len(c.Categories()),
		Motors:        len(c.motors),
		Transmissions: trans,
	}
}

func isComponentCategory(category string) bool {
	switch category {
	case entity.CategorySinglePhase, entity.CategoryThreePhase, entity.CategoryMotor:
		return true
	}
	return isBracketCategory(category)
}
