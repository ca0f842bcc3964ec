package orders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/apptest"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/orders"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	employeeID    = "44444444-4444-4444-4444-444444444444"
	supplierID    = "55555555-5555-5555-5555-555555555555"
	otherSupplier = "66666666-6666-6666-6666-666666666666"
)

// newPurchaseUseCase construye el caso de uso de órdenes de compra sobre
// repos en memoria, con un producto registrado.
func newPurchaseUseCase(t *testing.T) (*orders.PurchaseOrderUseCase, *apptest.FakeTx) {
	t.Helper()
	tx := apptest.NewFakeTx()
	products := apptest.NewFakeProductRepo()
	products.Add(&entity.Product{ID: milkID, Name: "Leche entera 1L", SKU: "WH-0001"})
	movements := inventory.NewMovementUseCase(tx, tx.Stock, products)
	return orders.NewPurchaseOrderUseCase(tx, tx.POs, products, movements), tx
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida completo
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseOrder_CicloCompleto(t *testing.T) {
	uc, tx := newPurchaseUseCase(t)
	ctx := context.Background()

	po, err := uc.Create(ctx, employeeID, supplierID, milkID, 30)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusOrdered, po.Status)
	// Crear la orden no mueve inventario
	assert.Equal(t, int64(0), tx.Stock.Quantity(milkID, entity.LocationReceiving))

	po, err = uc.Accept(ctx, po.ID, supplierID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusApproved, po.Status)

	po, err = uc.Ship(ctx, po.ID, supplierID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusShipped, po.Status)

	po, err = uc.Receive(ctx, po.ID, employeeID, entity.LocationShelves)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusReceived, po.Status)

	// Recibir pasa por RECEIVING y guarda de inmediato en el destino
	assert.Equal(t, int64(0), tx.Stock.Quantity(milkID, entity.LocationReceiving))
	assert.Equal(t, int64(30), tx.Stock.Quantity(milkID, entity.LocationShelves))
}

func TestPurchaseOrder_AtajoOrderedAShipped(t *testing.T) {
	uc, _ := newPurchaseUseCase(t)
	ctx := context.Background()

	po, err := uc.Create(ctx, employeeID, supplierID, milkID, 10)
	require.NoError(t, err)

	// La aprobación es opcional: el proveedor puede despachar directo
	po, err = uc.Ship(ctx, po.ID, supplierID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseOrderStatusShipped, po.Status)
}

func TestPurchaseOrder_RecibeEnCongelador(t *testing.T) {
	uc, tx := newPurchaseUseCase(t)
	ctx := context.Background()

	po, err := uc.Create(ctx, employeeID, supplierID, milkID, 12)
	require.NoError(t, err)
	_, err = uc.Ship(ctx, po.ID, supplierID)
	require.NoError(t, err)

	_, err = uc.Receive(ctx, po.ID, employeeID, entity.LocationFreezer)
	require.NoError(t, err)
	assert.Equal(t, int64(12), tx.Stock.Quantity(milkID, entity.LocationFreezer))
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedad del proveedor y estados ilegales
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseOrder_ProveedorAjenoRetornaForbidden(t *testing.T) {
	uc, _ := newPurchaseUseCase(t)
	ctx := context.Background()

	po, err := uc.Create(ctx, employeeID, supplierID, milkID, 10)
	require.NoError(t, err)

	_, err = uc.Accept(ctx, po.ID, otherSupplier)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Ship(ctx, po.ID, otherSupplier)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPurchaseOrder_AcceptSoloDesdeOrdered(t *testing.T) {
	uc, _ := newPurchaseUseCase(t)
	ctx := context.Background()

	po, err := uc.Create(ctx, employeeID, supplierID, milkID, 10)
	require.NoError(t, err)
	_, err = uc.Accept(ctx, po.ID, supplierID)
	require.NoError(t, err)

	// Aprobar dos veces es ilegal
	_, err = uc.Accept(ctx, po.ID, supplierID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestPurchaseOrder_ReceiveSoloDesdeShipped(t *testing.T) {
	uc, tx := newPurchaseUseCase(t)
	ctx := context.Background()

	po, err := uc.Create(ctx, employeeID, supplierID, milkID, 10)
	require.NoError(t, err)

	// ORDERED y APPROVED no son recibibles
	_, err = uc.Receive(ctx, po.ID, employeeID, entity.LocationShelves)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = uc.Accept(ctx, po.ID, supplierID)
	require.NoError(t, err)
	_, err = uc.Receive(ctx, po.ID, employeeID, entity.LocationShelves)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Y el inventario sigue intacto
	assert.Equal(t, int64(0), tx.Stock.Quantity(milkID, entity.LocationShelves))
}

func TestPurchaseOrder_ReceiveEsTerminal(t *testing.T) {
	uc, tx := newPurchaseUseCase(t)
	ctx := context.Background()

	po, err := uc.Create(ctx, employeeID, supplierID, milkID, 10)
	require.NoError(t, err)
	_, err = uc.Ship(ctx, po.ID, supplierID)
	require.NoError(t, err)
	_, err = uc.Receive(ctx, po.ID, employeeID, entity.LocationShelves)
	require.NoError(t, err)

	// Recibir dos veces no duplica el stock
	_, err = uc.Receive(ctx, po.ID, employeeID, entity.LocationShelves)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, int64(10), tx.Stock.Quantity(milkID, entity.LocationShelves))
}

func TestPurchaseOrder_ReceiveLeeLaOrdenBajoBloqueo(t *testing.T) {
	uc, tx := newPurchaseUseCase(t)
	ctx := context.Background()

	po, err := uc.Create(ctx, employeeID, supplierID, milkID, 10)
	require.NoError(t, err)
	_, err = uc.Ship(ctx, po.ID, supplierID)
	require.NoError(t, err)
	require.Zero(t, tx.POs.LockedReads)

	// El chequeo SHIPPED → RECEIVED corre sobre la lectura con bloqueo de
	// fila: dos Receive concurrentes se serializan y el segundo relee el
	// estado terminal en lugar de duplicar el inventario recibido
	_, err = uc.Receive(ctx, po.ID, employeeID, entity.LocationShelves)
	require.NoError(t, err)
	assert.Equal(t, 1, tx.POs.LockedReads)
}

func TestPurchaseOrder_ReceiveDestinoInvalido(t *testing.T) {
	uc, _ := newPurchaseUseCase(t)
	ctx := context.Background()

	po, err := uc.Create(ctx, employeeID, supplierID, milkID, 10)
	require.NoError(t, err)
	_, err = uc.Ship(ctx, po.ID, supplierID)
	require.NoError(t, err)

	_, err = uc.Receive(ctx, po.ID, employeeID, entity.LocationShipping)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestIncomingForSupplier_SoloPendientesDelProveedor(t *testing.T) {
	uc, _ := newPurchaseUseCase(t)
	ctx := context.Background()

	ordered, err := uc.Create(ctx, employeeID, supplierID, milkID, 1)
	require.NoError(t, err)
	approved, err := uc.Create(ctx, employeeID, supplierID, milkID, 2)
	require.NoError(t, err)
	_, err = uc.Accept(ctx, approved.ID, supplierID)
	require.NoError(t, err)
	shipped, err := uc.Create(ctx, employeeID, supplierID, milkID, 3)
	require.NoError(t, err)
	_, err = uc.Ship(ctx, shipped.ID, supplierID)
	require.NoError(t, err)
	_, err = uc.Create(ctx, employeeID, otherSupplier, milkID, 4)
	require.NoError(t, err)

	incoming, err := uc.IncomingForSupplier(ctx, supplierID)
	require.NoError(t, err)
	require.Len(t, incoming, 2, "solo ORDERED y APPROVED del proveedor")
	ids := []string{incoming[0].ID, incoming[1].ID}
	assert.Contains(t, ids, ordered.ID)
	assert.Contains(t, ids, approved.ID)
}

func TestPurchaseOrder_GetByIDInexistente(t *testing.T) {
	uc, _ := newPurchaseUseCase(t)

	_, err := uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
