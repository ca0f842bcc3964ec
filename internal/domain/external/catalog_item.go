// Package external define los tipos del catálogo externo (feed de terceros).
package external

import "github.com/shopspring/decimal"

// CatalogItem producto de un catálogo de terceros, ya normalizado.
// ExternalID se usa como SKU local para deduplicar importaciones (ej. "FS-12").
type CatalogItem struct {
	ExternalID   string
	Name         string
	CategoryName string
	UnitPrice    decimal.Decimal
	ImageURL     string
}
