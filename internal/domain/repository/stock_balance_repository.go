package repository

import "github.com/jhoicas/warehouse-api/internal/domain/entity"

// StockBalanceRepository define el puerto del libro de inventario:
// cantidades por (producto, ubicación). No valida reglas de negocio; eso es
// trabajo del motor de movimientos.
type StockBalanceRepository interface {
	// Get devuelve el saldo o nil si la fila no existe.
	Get(productID, location string) (*entity.StockBalance, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Devuelve nil si la fila no existe; usar solo dentro de transacción.
	GetForUpdate(productID, location string) (*entity.StockBalance, error)
	// GetOrCreateForUpdate materializa la fila con cantidad 0 si no existe
	// y la bloquea. El bloqueo recae siempre sobre una fila real: dos
	// transacciones concurrentes sobre una clave nueva se serializan en vez
	// de perder la primera escritura. Usar solo dentro de transacción.
	GetOrCreateForUpdate(productID, location string) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
	// Delete elimina la fila (limpieza al llegar a cero en SHIPPING).
	Delete(productID, location string) error
	ListByProduct(productID string) ([]*entity.StockBalance, error)
}
