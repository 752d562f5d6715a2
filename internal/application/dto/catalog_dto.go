package dto

// TierResponse lista de precios disponible.
type TierResponse struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CategoriesResponse categorías cotizables.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ModelsResponse modelos de una categoría.
type ModelsResponse struct {
	Category  string   `json:"category"`
	Composite bool     `json:"composite"`
	Models    []string `json:"models"`
}

// MotorHPResponse potencias de motor disponibles para productos compuestos.
type MotorHPResponse struct {
	HP     []float64 `json:"hp"`
	Phases []string  `json:"phases"`
}

// HealthResponse estado del servicio y del catálogo.
type HealthResponse struct {
	Status        string `json:"status"`
	Catalog       string `json:"catalog"`
	CatalogError  string `json:"catalog_error,omitempty"`
	Rows          int    `json:"rows"`
	Categories    int    `json:"categories"`
	Motors        int    `json:"motors"`
	Transmissions int    `json:"transmissions"`
}
