package repository

import "github.com/jhoicas/warehouse-api/internal/domain/entity"

// CartRepository define el puerto de persistencia para el carrito y sus
// items. El carrito es 1:1 con el cliente; los items son la única colección
// hija mutable del dominio.
type CartRepository interface {
	// GetByCustomer devuelve el carrito con sus items, o nil si no existe.
	GetByCustomer(customerID string) (*entity.ShoppingCart, error)
	// GetByCustomerForUpdate devuelve el carrito con sus items bloqueando
	// la fila del carrito (SELECT FOR UPDATE), o nil si no existe. Usar
	// dentro de transacción: dos checkouts concurrentes del mismo carrito
	// se serializan sobre esa fila.
	GetByCustomerForUpdate(customerID string) (*entity.ShoppingCart, error)
	Create(cart *entity.ShoppingCart) error
	// GetItem devuelve el item del producto en el carrito, o nil si no existe.
	GetItem(cartID, productID string) (*entity.CartItem, error)
	InsertItem(item *entity.CartItem) error
	UpdateItemQuantity(cartID, productID string, quantity int64) error
	DeleteItem(cartID, productID string) error
	// DeleteItems vacía el carrito (checkout o clear).
	DeleteItems(cartID string) error
}
