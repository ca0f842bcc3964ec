package dto

import "time"

// CreateOrderRequest entrada para crear una orden de cliente de una línea
// (el camino multi-línea es el checkout del carrito).
type CreateOrderRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// OrderLineResponse línea de una orden de cliente.
type OrderLineResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// OrderResponse salida de una orden de cliente.
type OrderResponse struct {
	ID          string              `json:"id"`
	CustomerID  string              `json:"customer_id"`
	Status      string              `json:"status"`
	DateCreated time.Time           `json:"date_created"`
	Lines       []OrderLineResponse `json:"lines"`
}

// CreatePurchaseOrderRequest entrada para crear una orden de compra.
type CreatePurchaseOrderRequest struct {
	SupplierID string `json:"supplier_id" validate:"required"`
	ProductID  string `json:"product_id" validate:"required"`
	Quantity   int64  `json:"quantity" validate:"required,gt=0"`
}

// ReceivePurchaseOrderRequest entrada para recibir una orden de compra.
type ReceivePurchaseOrderRequest struct {
	TargetLocation string `json:"target_location" validate:"required"` // SHELVES | FREEZER
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID          string              `json:"id"`
	EmployeeID  string              `json:"employee_id"`
	SupplierID  string              `json:"supplier_id"`
	Status      string              `json:"status"`
	DateCreated time.Time           `json:"date_created"`
	Lines       []OrderLineResponse `json:"lines"`
}

// AddToCartRequest entrada para agregar un producto al carrito.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// UpdateCartItemRequest entrada para cambiar la cantidad de un item
// (cantidad <= 0 elimina el item).
type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// CartItemResponse item del carrito.
type CartItemResponse struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CartResponse salida del carrito de un cliente.
type CartResponse struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customer_id"`
	Items      []CartItemResponse `json:"items"`
}
