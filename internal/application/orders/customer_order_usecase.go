package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// CustomerOrderUseCase máquina de estados de la orden de cliente:
// ORDERED → SHIPPED y ORDERED → CANCELLED, ambos terminales. La reserva de
// stock ocurre en la creación; Ship consume de SHIPPING y Cancel devuelve a
// almacenamiento, cada operación en una sola transacción.
type CustomerOrderUseCase struct {
	tx          OrderTxRunner
	orderRepo   repository.CustomerOrderRepository
	productRepo repository.ProductRepository
	movements   *inventory.MovementUseCase
	packingSlip PackingSlipGenerator
}

// NewCustomerOrderUseCase construye el caso de uso.
func NewCustomerOrderUseCase(
	tx OrderTxRunner,
	orderRepo repository.CustomerOrderRepository,
	productRepo repository.ProductRepository,
	movements *inventory.MovementUseCase,
	packingSlip PackingSlipGenerator,
) *CustomerOrderUseCase {
	return &CustomerOrderUseCase{
		tx:          tx,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		movements:   movements,
		packingSlip: packingSlip,
	}
}

// Create crea una orden de una sola línea (el camino multi-línea es el
// checkout del carrito). Reserva el stock moviéndolo a SHIPPING y crea la
// orden en ORDERED, todo en la misma transacción.
func (uc *CustomerOrderUseCase) Create(ctx context.Context, customerID, productID string, quantity int64) (*entity.CustomerOrder, error) {
	if customerID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	order := &entity.CustomerOrder{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		Status:      entity.OrderStatusOrdered,
		DateCreated: time.Now().UTC(),
	}
	order.Lines = []entity.OrderLine{{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		ProductID: product.ID,
		Quantity:  quantity,
	}}

	err = uc.tx.RunOrder(ctx, func(
		stockRepo repository.StockBalanceRepository,
		orderRepo repository.CustomerOrderRepository,
	) error {
		if err := uc.movements.MoveToShippingInTx(stockRepo, productID, quantity); err != nil {
			return err
		}
		return orderRepo.Create(order)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, order.ID)
}

// Ship despacha la orden: consume cada línea desde SHIPPING y pasa a
// SHIPPED. Solo es legal desde ORDERED. El bucle corre dentro de una sola
// transacción: si una línea falla ninguna queda consumida. La orden se lee
// bajo bloqueo de fila: dos Ship concurrentes se serializan y el segundo
// relee el estado ya terminal.
func (uc *CustomerOrderUseCase) Ship(ctx context.Context, orderID string) (*entity.CustomerOrder, error) {
	err := uc.tx.RunOrder(ctx, func(
		stockRepo repository.StockBalanceRepository,
		orderRepo repository.CustomerOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusOrdered {
			return domain.ErrInvalidState
		}
		for _, line := range order.Lines {
			if err := uc.movements.ConsumeFromShippingInTx(stockRepo, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		return orderRepo.UpdateStatus(orderID, entity.OrderStatusShipped)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, orderID)
}

// Cancel cancela la orden: devuelve cada línea de SHIPPING a SHELVES y pasa
// a CANCELLED. Solo es legal desde ORDERED. Igual que Ship, la orden se lee
// bajo bloqueo de fila.
func (uc *CustomerOrderUseCase) Cancel(ctx context.Context, orderID string) (*entity.CustomerOrder, error) {
	err := uc.tx.RunOrder(ctx, func(
		stockRepo repository.StockBalanceRepository,
		orderRepo repository.CustomerOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusOrdered {
			return domain.ErrInvalidState
		}
		for _, line := range order.Lines {
			if err := uc.movements.MoveFromShippingToStorageInTx(stockRepo, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		return orderRepo.UpdateStatus(orderID, entity.OrderStatusCancelled)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, orderID)
}

// GetByID devuelve la orden con sus líneas, o ErrNotFound.
func (uc *CustomerOrderUseCase) GetByID(_ context.Context, orderID string) (*entity.CustomerOrder, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List devuelve todas las órdenes, más reciente primero.
func (uc *CustomerOrderUseCase) List(_ context.Context, limit, offset int) ([]*entity.CustomerOrder, error) {
	return uc.orderRepo.List(limit, offset)
}

// ListForCustomer devuelve las órdenes de un cliente.
func (uc *CustomerOrderUseCase) ListForCustomer(_ context.Context, customerID string) ([]*entity.CustomerOrder, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.orderRepo.ListByCustomer(customerID)
}

// PackingSlip genera el PDF de empaque de una orden.
func (uc *CustomerOrderUseCase) PackingSlip(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	products := make(map[string]*entity.Product, len(order.Lines))
	for _, line := range order.Lines {
		if _, ok := products[line.ProductID]; ok {
			continue
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			products[line.ProductID] = product
		}
	}
	return uc.packingSlip.GeneratePackingSlip(ctx, order, products)
}
