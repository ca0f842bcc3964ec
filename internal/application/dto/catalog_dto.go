package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name       string          `json:"name" validate:"required,min=1,max=200"`
	SKU        string          `json:"sku"`
	CategoryID string          `json:"category_id" validate:"required"`
	SupplierID string          `json:"supplier_id"`
	ImageURL   string          `json:"image_url"`
	Price      decimal.Decimal `json:"price"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest = CreateProductRequest

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	CategoryID string          `json:"category_id"`
	SupplierID string          `json:"supplier_id,omitempty"`
	ImageURL   string          `json:"image_url,omitempty"`
	Price      decimal.Decimal `json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateCategoryRequest entrada para crear o actualizar una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ImportProductRequest entrada para importar un producto del feed externo.
type ImportProductRequest struct {
	ExternalID      string `json:"external_id" validate:"required"` // ej. "FS-12"
	SupplierID      string `json:"supplier_id"`
	InitialQuantity int64  `json:"initial_quantity" validate:"min=0"`
	Location        string `json:"location"` // vacío = SHELVES
}

// ExternalItemResponse item del catálogo externo.
type ExternalItemResponse struct {
	ExternalID   string          `json:"external_id"`
	Name         string          `json:"name"`
	CategoryName string          `json:"category_name"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	ImageURL     string          `json:"image_url,omitempty"`
}
