package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El stock por ubicación se
// maneja en StockBalance; el catálogo nunca toca el libro de inventario
// directamente.
type Product struct {
	ID         string
	Name       string
	SKU        string // único; para importaciones externas es el id foráneo (ej. "FS-12")
	CategoryID string
	SupplierID string // id opaco del usuario proveedor; vacío = sin proveedor asignado
	ImageURL   string
	Price      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
