package cart

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// TxRunner ejecuta el checkout dentro de una transacción con los
// repositorios de carrito, saldos y órdenes atados a esa tx: reserva de
// stock, creación de la orden y vaciado del carrito son un solo commit.
type TxRunner interface {
	RunCart(ctx context.Context, fn func(
		stockRepo repository.StockBalanceRepository,
		cartRepo repository.CartRepository,
		orderRepo repository.CustomerOrderRepository,
	) error) error
}
