package entity

import "time"

// Estados de una orden de compra. APPROVED es opcional: se permite el
// atajo ORDERED → SHIPPED. RECEIVED es terminal.
const (
	PurchaseOrderStatusOrdered  = "ORDERED"
	PurchaseOrderStatusApproved = "APPROVED"
	PurchaseOrderStatusShipped  = "SHIPPED"
	PurchaseOrderStatusReceived = "RECEIVED"
)

// PurchaseOrder orden de compra a un proveedor. El inventario solo se
// afecta al recibirla (Receive), nunca en la creación.
type PurchaseOrder struct {
	ID          string
	EmployeeID  string
	SupplierID  string
	Status      string
	DateCreated time.Time
	Lines       []PurchaseOrderLine
}

// PurchaseOrderLine línea de una orden de compra.
type PurchaseOrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
}
