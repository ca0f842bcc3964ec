package entity

import "time"

// Estados de una orden de cliente. ORDERED es el único estado con
// transiciones de salida; SHIPPED y CANCELLED son terminales.
const (
	OrderStatusOrdered   = "ORDERED"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusCancelled = "CANCELLED"
)

// CustomerOrder orden de venta de un cliente. Las líneas se crean todas en
// el momento de creación de la orden y son inmutables después.
type CustomerOrder struct {
	ID          string
	CustomerID  string
	Status      string
	DateCreated time.Time
	Lines       []OrderLine
}

// OrderLine línea de una orden de cliente.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
}
