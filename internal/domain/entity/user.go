package entity

import "time"

// Roles de usuario del almacén.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee" // bodeguero: inventario y órdenes de compra
	RoleSupplier = "supplier" // proveedor: acepta y despacha órdenes de compra
	RoleCustomer = "customer" // cliente: carrito y órdenes
)

// User usuario de la aplicación. El núcleo de inventario solo ve su ID
// como string opaco; la autenticación vive en la capa HTTP.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
