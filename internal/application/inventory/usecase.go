package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// MovementUseCase es el motor de movimientos de inventario: las únicas
// operaciones que mutan StockBalance. Cada operación pública corre en una
// transacción propia con bloqueo de fila (SELECT FOR UPDATE); las variantes
// *InTx se componen dentro de la transacción del caller (checkout, ship,
// receive) para que toda la operación sea un solo commit.
//
// Las filas se bloquean siempre en el orden RECEIVING, SHELVES, FREEZER,
// SHIPPING para el mismo producto; así dos movimientos concurrentes sobre
// el mismo producto se serializan sin riesgo de deadlock.
type MovementUseCase struct {
	tx          TxRunner
	stockRepo   repository.StockBalanceRepository
	productRepo repository.ProductRepository
}

// NewMovementUseCase construye el motor.
func NewMovementUseCase(
	tx TxRunner,
	stockRepo repository.StockBalanceRepository,
	productRepo repository.ProductRepository,
) *MovementUseCase {
	return &MovementUseCase{tx: tx, stockRepo: stockRepo, productRepo: productRepo}
}

// requireProduct valida que el producto exista antes de abrir la transacción.
func (uc *MovementUseCase) requireProduct(productID string) error {
	if productID == "" {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return nil
}

// getOrCreateForUpdate bloquea el saldo, materializando primero la fila con
// cantidad 0 si no existe. El bloqueo recae sobre una fila real: el primer
// movimiento de un producto en una ubicación se serializa contra movimientos
// concurrentes igual que los siguientes.
func getOrCreateForUpdate(stockRepo repository.StockBalanceRepository, productID, location string) (*entity.StockBalance, error) {
	return stockRepo.GetOrCreateForUpdate(productID, location)
}

// SetInitialStock registra stock inicial de un producto en una ubicación
// (importación de catálogo o alta de producto). Es la única operación que
// acepta cantidad cero; cantidad negativa es inválida. Suma sobre el saldo
// existente, no lo reemplaza.
func (uc *MovementUseCase) SetInitialStock(ctx context.Context, productID string, quantity int64, location string) error {
	if quantity < 0 || !entity.IsValidLocation(location) {
		return domain.ErrInvalidInput
	}
	if err := uc.requireProduct(productID); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(stockRepo repository.StockBalanceRepository) error {
		return uc.SetInitialStockInTx(stockRepo, productID, quantity, location)
	})
}

// SetInitialStockInTx versión componible de SetInitialStock (misma transacción del caller).
func (uc *MovementUseCase) SetInitialStockInTx(stockRepo repository.StockBalanceRepository, productID string, quantity int64, location string) error {
	if quantity < 0 || !entity.IsValidLocation(location) {
		return domain.ErrInvalidInput
	}
	balance, err := getOrCreateForUpdate(stockRepo, productID, location)
	if err != nil {
		return err
	}
	balance.Quantity += quantity
	balance.UpdatedAt = time.Now()
	return stockRepo.Upsert(balance)
}

// AddToReceiving suma cantidad en RECEIVING ("llegó el camión").
func (uc *MovementUseCase) AddToReceiving(ctx context.Context, productID string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if err := uc.requireProduct(productID); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(stockRepo repository.StockBalanceRepository) error {
		return uc.AddToReceivingInTx(stockRepo, productID, quantity)
	})
}

// AddToReceivingInTx versión componible de AddToReceiving.
func (uc *MovementUseCase) AddToReceivingInTx(stockRepo repository.StockBalanceRepository, productID string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	receiving, err := getOrCreateForUpdate(stockRepo, productID, entity.LocationReceiving)
	if err != nil {
		return err
	}
	receiving.Quantity += quantity
	receiving.UpdatedAt = time.Now()
	return stockRepo.Upsert(receiving)
}

// PutAway mueve cantidad de RECEIVING a almacenamiento (SHELVES o FREEZER).
func (uc *MovementUseCase) PutAway(ctx context.Context, productID string, quantity int64, target string) error {
	if quantity <= 0 || !entity.IsStorageLocation(target) {
		return domain.ErrInvalidInput
	}
	if err := uc.requireProduct(productID); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(stockRepo repository.StockBalanceRepository) error {
		return uc.PutAwayInTx(stockRepo, productID, quantity, target)
	})
}

// PutAwayInTx versión componible de PutAway (usada por Receive de órdenes de compra).
func (uc *MovementUseCase) PutAwayInTx(stockRepo repository.StockBalanceRepository, productID string, quantity int64, target string) error {
	if quantity <= 0 || !entity.IsStorageLocation(target) {
		return domain.ErrInvalidInput
	}
	receiving, err := getOrCreateForUpdate(stockRepo, productID, entity.LocationReceiving)
	if err != nil {
		return err
	}
	if receiving.Quantity < quantity {
		return domain.ErrInsufficientStock
	}
	dest, err := getOrCreateForUpdate(stockRepo, productID, target)
	if err != nil {
		return err
	}
	now := time.Now()
	receiving.Quantity -= quantity
	dest.Quantity += quantity
	receiving.UpdatedAt = now
	dest.UpdatedAt = now
	if err := stockRepo.Upsert(receiving); err != nil {
		return err
	}
	return stockRepo.Upsert(dest)
}

// MoveToShipping reserva stock para una orden de cliente: toma primero de
// SHELVES y el resto de FREEZER, y lo acumula en SHIPPING. El desempate
// SHELVES-antes-que-FREEZER es fijo, no configurable.
func (uc *MovementUseCase) MoveToShipping(ctx context.Context, productID string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if err := uc.requireProduct(productID); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(stockRepo repository.StockBalanceRepository) error {
		return uc.MoveToShippingInTx(stockRepo, productID, quantity)
	})
}

// MoveToShippingInTx versión componible de MoveToShipping (usada por checkout y creación de órdenes).
func (uc *MovementUseCase) MoveToShippingInTx(stockRepo repository.StockBalanceRepository, productID string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	shelves, err := getOrCreateForUpdate(stockRepo, productID, entity.LocationShelves)
	if err != nil {
		return err
	}
	freezer, err := getOrCreateForUpdate(stockRepo, productID, entity.LocationFreezer)
	if err != nil {
		return err
	}
	shipping, err := getOrCreateForUpdate(stockRepo, productID, entity.LocationShipping)
	if err != nil {
		return err
	}

	if shelves.Quantity+freezer.Quantity < quantity {
		return domain.ErrInsufficientStock
	}

	// Primero estantería, después congelador
	need := quantity
	takeShelves := min(shelves.Quantity, need)
	shelves.Quantity -= takeShelves
	need -= takeShelves
	if need > 0 {
		freezer.Quantity -= need
	}
	shipping.Quantity += quantity

	now := time.Now()
	shelves.UpdatedAt = now
	freezer.UpdatedAt = now
	shipping.UpdatedAt = now
	if err := stockRepo.Upsert(shelves); err != nil {
		return err
	}
	if err := stockRepo.Upsert(freezer); err != nil {
		return err
	}
	return stockRepo.Upsert(shipping)
}

// MoveFromShippingToStorage revierte una reserva (cancelación de orden).
// Devuelve siempre a SHELVES, aun si la reserva original tomó parte del
// FREEZER; el origen de cada unidad no se registra.
func (uc *MovementUseCase) MoveFromShippingToStorage(ctx context.Context, productID string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if err := uc.requireProduct(productID); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(stockRepo repository.StockBalanceRepository) error {
		return uc.MoveFromShippingToStorageInTx(stockRepo, productID, quantity)
	})
}

// MoveFromShippingToStorageInTx versión componible (usada por cancelación de órdenes).
func (uc *MovementUseCase) MoveFromShippingToStorageInTx(stockRepo repository.StockBalanceRepository, productID string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	shelves, err := getOrCreateForUpdate(stockRepo, productID, entity.LocationShelves)
	if err != nil {
		return err
	}
	shipping, err := getOrCreateForUpdate(stockRepo, productID, entity.LocationShipping)
	if err != nil {
		return err
	}
	if shipping.Quantity < quantity {
		return domain.ErrInsufficientStock
	}
	now := time.Now()
	shipping.Quantity -= quantity
	shelves.Quantity += quantity
	shipping.UpdatedAt = now
	shelves.UpdatedAt = now
	if err := stockRepo.Upsert(shipping); err != nil {
		return err
	}
	return stockRepo.Upsert(shelves)
}

// ConsumeFromShipping saca mercancía del sistema (orden despachada al
// cliente). Si el producto no tiene fila en SHIPPING devuelve ErrNotFound;
// si el saldo queda exactamente en cero la fila se elimina.
func (uc *MovementUseCase) ConsumeFromShipping(ctx context.Context, productID string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if err := uc.requireProduct(productID); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(stockRepo repository.StockBalanceRepository) error {
		return uc.ConsumeFromShippingInTx(stockRepo, productID, quantity)
	})
}

// ConsumeFromShippingInTx versión componible (usada por Ship de órdenes de cliente).
func (uc *MovementUseCase) ConsumeFromShippingInTx(stockRepo repository.StockBalanceRepository, productID string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	shipping, err := stockRepo.GetForUpdate(productID, entity.LocationShipping)
	if err != nil {
		return err
	}
	if shipping == nil {
		return domain.ErrNotFound
	}
	if shipping.Quantity < quantity {
		return domain.ErrInsufficientStock
	}
	shipping.Quantity -= quantity
	if shipping.Quantity == 0 {
		return stockRepo.Delete(productID, entity.LocationShipping)
	}
	shipping.UpdatedAt = time.Now()
	return stockRepo.Upsert(shipping)
}

// StockByProduct devuelve los saldos de un producto en todas las
// ubicaciones donde ha tenido stock (lectura, sin transacción).
func (uc *MovementUseCase) StockByProduct(ctx context.Context, productID string) ([]*entity.StockBalance, error) {
	if err := uc.requireProduct(productID); err != nil {
		return nil, err
	}
	return uc.stockRepo.ListByProduct(productID)
}
