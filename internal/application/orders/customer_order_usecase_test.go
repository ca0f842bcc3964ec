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
	customerID = "22222222-2222-2222-2222-222222222222"
	milkID     = "11111111-1111-1111-1111-111111111111"
)

// stubSlipGenerator doble del generador de PDF: registra la llamada y
// devuelve bytes fijos.
type stubSlipGenerator struct {
	lastOrder    *entity.CustomerOrder
	lastProducts map[string]*entity.Product
}

func (s *stubSlipGenerator) GeneratePackingSlip(_ context.Context, order *entity.CustomerOrder, products map[string]*entity.Product) ([]byte, error) {
	s.lastOrder = order
	s.lastProducts = products
	return []byte("%PDF-stub"), nil
}

// newOrderUseCase construye el caso de uso de órdenes de cliente sobre
// repos en memoria, con un producto registrado y stock en estantería.
func newOrderUseCase(t *testing.T) (*orders.CustomerOrderUseCase, *apptest.FakeTx, *stubSlipGenerator) {
	t.Helper()
	tx := apptest.NewFakeTx()
	products := apptest.NewFakeProductRepo()
	products.Add(&entity.Product{ID: milkID, Name: "Leche entera 1L", SKU: "WH-0001"})
	tx.Stock.Set(milkID, entity.LocationShelves, 10)
	movements := inventory.NewMovementUseCase(tx, tx.Stock, products)
	slip := &stubSlipGenerator{}
	uc := orders.NewCustomerOrderUseCase(tx, tx.Orders, products, movements, slip)
	return uc, tx, slip
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_ReservaStockYQuedaEnOrdered(t *testing.T) {
	uc, tx, _ := newOrderUseCase(t)

	order, err := uc.Create(context.Background(), customerID, milkID, 4)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, entity.OrderStatusOrdered, order.Status)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, int64(4), order.Lines[0].Quantity)

	assert.Equal(t, int64(6), tx.Stock.Quantity(milkID, entity.LocationShelves))
	assert.Equal(t, int64(4), tx.Stock.Quantity(milkID, entity.LocationShipping))
}

func TestCreateOrder_StockInsuficienteNoCreaOrden(t *testing.T) {
	uc, tx, _ := newOrderUseCase(t)

	_, err := uc.Create(context.Background(), customerID, milkID, 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), tx.Stock.Quantity(milkID, entity.LocationShelves))
	list, err := tx.Orders.ListByCustomer(customerID)
	require.NoError(t, err)
	assert.Empty(t, list, "la orden no se persiste si la reserva falla")
}

func TestCreateOrder_ProductoInexistente(t *testing.T) {
	uc, _, _ := newOrderUseCase(t)

	_, err := uc.Create(context.Background(), customerID, "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ship y Cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestShipOrder_ConsumeDeShipping(t *testing.T) {
	uc, tx, _ := newOrderUseCase(t)
	ctx := context.Background()

	order, err := uc.Create(ctx, customerID, milkID, 4)
	require.NoError(t, err)

	shipped, err := uc.Ship(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, shipped.Status)
	assert.False(t, tx.Stock.Has(milkID, entity.LocationShipping), "consumir hasta cero elimina la fila")
	assert.Equal(t, int64(6), tx.Stock.Quantity(milkID, entity.LocationShelves))
}

func TestShipOrder_SoloDesdeOrdered(t *testing.T) {
	uc, _, _ := newOrderUseCase(t)
	ctx := context.Background()

	order, err := uc.Create(ctx, customerID, milkID, 2)
	require.NoError(t, err)
	_, err = uc.Ship(ctx, order.ID)
	require.NoError(t, err)

	// SHIPPED es terminal
	_, err = uc.Ship(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = uc.Cancel(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCancelOrder_DevuelveStockAEstanteria(t *testing.T) {
	uc, tx, _ := newOrderUseCase(t)
	ctx := context.Background()

	order, err := uc.Create(ctx, customerID, milkID, 4)
	require.NoError(t, err)

	cancelled, err := uc.Cancel(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, int64(10), tx.Stock.Quantity(milkID, entity.LocationShelves))
	assert.Equal(t, int64(0), tx.Stock.Quantity(milkID, entity.LocationShipping))
}

func TestCancelOrder_SoloDesdeOrdered(t *testing.T) {
	uc, _, _ := newOrderUseCase(t)
	ctx := context.Background()

	order, err := uc.Create(ctx, customerID, milkID, 2)
	require.NoError(t, err)
	_, err = uc.Cancel(ctx, order.ID)
	require.NoError(t, err)

	// CANCELLED es terminal
	_, err = uc.Cancel(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = uc.Ship(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestShipOrder_LeeLaOrdenBajoBloqueo(t *testing.T) {
	uc, tx, _ := newOrderUseCase(t)
	ctx := context.Background()

	order, err := uc.Create(ctx, customerID, milkID, 2)
	require.NoError(t, err)
	require.Zero(t, tx.Orders.LockedReads, "crear no necesita bloquear la orden")

	// El chequeo de estado de Ship corre sobre la lectura con bloqueo de
	// fila: dos despachos concurrentes se serializan sobre esa fila
	_, err = uc.Ship(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, tx.Orders.LockedReads)
}

func TestCancelOrder_LeeLaOrdenBajoBloqueo(t *testing.T) {
	uc, tx, _ := newOrderUseCase(t)
	ctx := context.Background()

	order, err := uc.Create(ctx, customerID, milkID, 2)
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, tx.Orders.LockedReads)
}

func TestShipOrder_OrdenInexistente(t *testing.T) {
	uc, _, _ := newOrderUseCase(t)

	_, err := uc.Ship(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas y documento de empaque
// ──────────────────────────────────────────────────────────────────────────────

func TestListForCustomer_FiltraPorCliente(t *testing.T) {
	uc, _, _ := newOrderUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, customerID, milkID, 1)
	require.NoError(t, err)
	_, err = uc.Create(ctx, "otro-cliente", milkID, 1)
	require.NoError(t, err)

	mine, err := uc.ListForCustomer(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, customerID, mine[0].CustomerID)
}

func TestPackingSlip_ResuelveProductosDeLasLineas(t *testing.T) {
	uc, _, slip := newOrderUseCase(t)
	ctx := context.Background()

	order, err := uc.Create(ctx, customerID, milkID, 2)
	require.NoError(t, err)

	pdf, err := uc.PackingSlip(ctx, order.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	require.NotNil(t, slip.lastOrder)
	assert.Equal(t, order.ID, slip.lastOrder.ID)
	require.Contains(t, slip.lastProducts, milkID)
	assert.Equal(t, "Leche entera 1L", slip.lastProducts[milkID].Name)
}

func TestPackingSlip_OrdenInexistente(t *testing.T) {
	uc, _, _ := newOrderUseCase(t)

	_, err := uc.PackingSlip(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
