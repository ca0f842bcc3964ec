package entity

import "time"

// ShoppingCart carrito de compras, 1:1 con el cliente (get-or-create).
// La fila del carrito persiste entre checkouts; solo los items se borran.
type ShoppingCart struct {
	ID         string
	CustomerID string
	CreatedAt  time.Time
	Items      []CartItem
}

// CartItem item del carrito, único por producto dentro del carrito.
// Es la única colección hija mutable después de su creación.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Quantity  int64
}
