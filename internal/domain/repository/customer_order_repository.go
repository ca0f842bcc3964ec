package repository

import "github.com/jhoicas/warehouse-api/internal/domain/entity"

// CustomerOrderRepository define el puerto de persistencia para órdenes de
// cliente. Consultas con nombre propio en lugar de un query genérico: el
// conjunto de operaciones es fijo y conocido.
type CustomerOrderRepository interface {
	// Create persiste la orden y todas sus líneas.
	Create(order *entity.CustomerOrder) error
	// GetByID devuelve la orden con sus líneas, o nil si no existe.
	GetByID(id string) (*entity.CustomerOrder, error)
	// GetByIDForUpdate devuelve la orden bloqueando su fila (SELECT FOR
	// UPDATE), o nil si no existe. Usar dentro de transacción: el chequeo
	// de estado y el cambio de estado quedan serializados sobre la fila.
	GetByIDForUpdate(id string) (*entity.CustomerOrder, error)
	List(limit, offset int) ([]*entity.CustomerOrder, error)
	ListByCustomer(customerID string) ([]*entity.CustomerOrder, error)
	UpdateStatus(id, status string) error
}
