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

// PurchaseOrderUseCase máquina de estados de la orden de compra:
// ORDERED → APPROVED → SHIPPED → RECEIVED, con atajo ORDERED → SHIPPED
// (la aprobación es opcional). Accept y Ship son acciones del proveedor
// dueño de la orden; Receive es acción del empleado y es la única que mueve
// inventario: RECEIVING y put-away inmediato en la misma transacción.
type PurchaseOrderUseCase struct {
	tx          PurchaseTxRunner
	poRepo      repository.PurchaseOrderRepository
	productRepo repository.ProductRepository
	movements   *inventory.MovementUseCase
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(
	tx PurchaseTxRunner,
	poRepo repository.PurchaseOrderRepository,
	productRepo repository.ProductRepository,
	movements *inventory.MovementUseCase,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{tx: tx, poRepo: poRepo, productRepo: productRepo, movements: movements}
}

// Create crea una orden de compra en ORDERED. No mueve inventario: eso
// ocurre solo en Receive.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, employeeID, supplierID, productID string, quantity int64) (*entity.PurchaseOrder, error) {
	if employeeID == "" || supplierID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	po := &entity.PurchaseOrder{
		ID:          uuid.New().String(),
		EmployeeID:  employeeID,
		SupplierID:  supplierID,
		Status:      entity.PurchaseOrderStatusOrdered,
		DateCreated: time.Now().UTC(),
	}
	po.Lines = []entity.PurchaseOrderLine{{
		ID:        uuid.New().String(),
		OrderID:   po.ID,
		ProductID: product.ID,
		Quantity:  quantity,
	}}

	if err := uc.poRepo.Create(po); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, po.ID)
}

// Accept acción del proveedor: ORDERED → APPROVED. El proveedor debe ser el
// dueño de la orden.
func (uc *PurchaseOrderUseCase) Accept(ctx context.Context, purchaseOrderID, supplierID string) (*entity.PurchaseOrder, error) {
	po, err := uc.ownedBySupplier(purchaseOrderID, supplierID)
	if err != nil {
		return nil, err
	}
	if po.Status != entity.PurchaseOrderStatusOrdered {
		return nil, domain.ErrInvalidState
	}
	if err := uc.poRepo.UpdateStatus(po.ID, entity.PurchaseOrderStatusApproved); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, po.ID)
}

// Ship acción del proveedor: ORDERED|APPROVED → SHIPPED.
func (uc *PurchaseOrderUseCase) Ship(ctx context.Context, purchaseOrderID, supplierID string) (*entity.PurchaseOrder, error) {
	po, err := uc.ownedBySupplier(purchaseOrderID, supplierID)
	if err != nil {
		return nil, err
	}
	if po.Status != entity.PurchaseOrderStatusOrdered && po.Status != entity.PurchaseOrderStatusApproved {
		return nil, domain.ErrInvalidState
	}
	if err := uc.poRepo.UpdateStatus(po.ID, entity.PurchaseOrderStatusShipped); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, po.ID)
}

// Receive acción del empleado: SHIPPED → RECEIVED. Cada línea entra por
// RECEIVING y se guarda de inmediato en la misma ubicación de destino
// (SHELVES o FREEZER, igual para todas las líneas), en una sola transacción.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, purchaseOrderID, employeeID, targetLocation string) (*entity.PurchaseOrder, error) {
	if employeeID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsStorageLocation(targetLocation) {
		return nil, domain.ErrInvalidInput
	}
	err := uc.tx.RunPurchase(ctx, func(
		stockRepo repository.StockBalanceRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		// Bloqueo de fila: dos Receive concurrentes se serializan y el
		// segundo relee RECEIVED sin duplicar el inventario
		po, err := poRepo.GetByIDForUpdate(purchaseOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.PurchaseOrderStatusShipped {
			return domain.ErrInvalidState
		}
		for _, line := range po.Lines {
			if err := uc.movements.AddToReceivingInTx(stockRepo, line.ProductID, line.Quantity); err != nil {
				return err
			}
			if err := uc.movements.PutAwayInTx(stockRepo, line.ProductID, line.Quantity, targetLocation); err != nil {
				return err
			}
		}
		return poRepo.UpdateStatus(purchaseOrderID, entity.PurchaseOrderStatusReceived)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, purchaseOrderID)
}

// GetByID devuelve la orden de compra con sus líneas, o ErrNotFound.
func (uc *PurchaseOrderUseCase) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return po, nil
}

// List devuelve todas las órdenes de compra, más reciente primero.
func (uc *PurchaseOrderUseCase) List(_ context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	return uc.poRepo.List(limit, offset)
}

// IncomingForSupplier devuelve las órdenes pendientes (ORDERED o APPROVED)
// de un proveedor.
func (uc *PurchaseOrderUseCase) IncomingForSupplier(_ context.Context, supplierID string) ([]*entity.PurchaseOrder, error) {
	if supplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.poRepo.ListIncomingForSupplier(supplierID)
}

// ownedBySupplier carga la orden y verifica la propiedad del proveedor.
// Orden inexistente → ErrNotFound; proveedor distinto → ErrForbidden.
func (uc *PurchaseOrderUseCase) ownedBySupplier(purchaseOrderID, supplierID string) (*entity.PurchaseOrder, error) {
	if supplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	po, err := uc.poRepo.GetByID(purchaseOrderID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if po.SupplierID != supplierID {
		return nil, domain.ErrForbidden
	}
	return po, nil
}
