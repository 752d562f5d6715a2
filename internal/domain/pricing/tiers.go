package pricing

import "github.com/csventilacion/cotizador-api/internal/domain/entity"

// PriceTier lista de precios seleccionable: cada una lee una columna distinta del catálogo.
type PriceTier struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Column string `json:"column"`
}

// CostColumn columna de costo; no depende de la lista de venta elegida.
const CostColumn = entity.ColumnFactoryPrice

// Tiers listas de precios disponibles, en el orden en que se ofrecen.
var Tiers = []PriceTier{
	{ID: "publico", Label: "Publico en general", Column: entity.ColumnListPrice},
	{ID: "contratista", Label: "cliente top LABPUE/CUL", Column: entity.ColumnContractorPrice},
	{ID: "costo", Label: "Costo CS ventilacion", Column: entity.ColumnFactoryPrice},
}

// TierByID busca una lista por su identificador.
func TierByID(id string) (PriceTier, bool) {
	for _, t := range Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return PriceTier{}, false
}
