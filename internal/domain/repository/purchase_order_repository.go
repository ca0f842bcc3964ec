package repository

import "github.com/jhoicas/warehouse-api/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para órdenes de
// compra a proveedores.
type PurchaseOrderRepository interface {
	// Create persiste la orden y todas sus líneas.
	Create(order *entity.PurchaseOrder) error
	// GetByID devuelve la orden con sus líneas, o nil si no existe.
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate devuelve la orden bloqueando su fila (SELECT FOR
	// UPDATE), o nil si no existe. Usar dentro de transacción.
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	// ListIncomingForSupplier devuelve las órdenes pendientes de un proveedor
	// (estado ORDERED o APPROVED), más reciente primero.
	ListIncomingForSupplier(supplierID string) ([]*entity.PurchaseOrder, error)
	UpdateStatus(id, status string) error
}
