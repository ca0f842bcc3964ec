package orders

import (
	"context"

	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción con los
// repositorios de saldos y órdenes de cliente atados a esa tx. Cierra el
// bucle multi-línea de Ship/Cancel/Checkout en un solo commit: ninguna
// línea queda aplicada si otra falla.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		stockRepo repository.StockBalanceRepository,
		orderRepo repository.CustomerOrderRepository,
	) error) error
}

// PurchaseTxRunner ejecuta una función dentro de una transacción con los
// repositorios de saldos y órdenes de compra atados a esa tx.
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		stockRepo repository.StockBalanceRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}

// PackingSlipGenerator genera el documento de empaque (PDF) de una orden.
// products va indexado por ProductID para resolver los nombres de línea.
type PackingSlipGenerator interface {
	GeneratePackingSlip(ctx context.Context, order *entity.CustomerOrder, products map[string]*entity.Product) ([]byte, error)
}
