package dto

import "time"

// InitialStockRequest entrada para registrar stock inicial (importación o
// alta de producto). La única entrada de inventario que acepta cantidad cero.
type InitialStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"min=0"`
	Location  string `json:"location" validate:"required"`
}

// MovementRequest entrada para movimientos de cantidad positiva
// (receiving, put-away, reserva, reversa, consumo).
type MovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	// Target solo aplica a put-away: SHELVES o FREEZER.
	Target string `json:"target,omitempty"`
}

// StockBalanceResponse saldo de un producto en una ubicación.
type StockBalanceResponse struct {
	ProductID string    `json:"product_id"`
	Location  string    `json:"location"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}
