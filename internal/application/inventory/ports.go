package inventory

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de saldos atado a esa tx. Garantiza atomicidad para el motor
// de movimientos: o se actualizan todos los saldos tocados, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(stockRepo repository.StockBalanceRepository) error) error
}
