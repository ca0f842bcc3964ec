package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/apptest"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const productID = "11111111-1111-1111-1111-111111111111"

// newEngine construye el motor de movimientos sobre repos en memoria, con un
// producto de catálogo ya registrado.
func newEngine(t *testing.T) (*inventory.MovementUseCase, *apptest.FakeTx) {
	t.Helper()
	tx := apptest.NewFakeTx()
	products := apptest.NewFakeProductRepo()
	products.Add(&entity.Product{ID: productID, Name: "Leche entera 1L", SKU: "WH-0001"})
	return inventory.NewMovementUseCase(tx, tx.Stock, products), tx
}

// ──────────────────────────────────────────────────────────────────────────────
// SetInitialStock
// ──────────────────────────────────────────────────────────────────────────────

func TestSetInitialStock_CreaSaldo(t *testing.T) {
	uc, tx := newEngine(t)

	err := uc.SetInitialStock(context.Background(), productID, 10, entity.LocationShelves)
	require.NoError(t, err)
	assert.Equal(t, int64(10), tx.Stock.Quantity(productID, entity.LocationShelves))
}

func TestSetInitialStock_SumaSobreSaldoExistente(t *testing.T) {
	uc, tx := newEngine(t)

	require.NoError(t, uc.SetInitialStock(context.Background(), productID, 5, entity.LocationFreezer))
	require.NoError(t, uc.SetInitialStock(context.Background(), productID, 3, entity.LocationFreezer))
	assert.Equal(t, int64(8), tx.Stock.Quantity(productID, entity.LocationFreezer))
}

func TestSetInitialStock_CantidadCeroEsValida(t *testing.T) {
	uc, tx := newEngine(t)

	// Cero materializa la fila con saldo 0 (alta de producto sin stock)
	err := uc.SetInitialStock(context.Background(), productID, 0, entity.LocationShelves)
	require.NoError(t, err)
	assert.True(t, tx.Stock.Has(productID, entity.LocationShelves))
	assert.Equal(t, int64(0), tx.Stock.Quantity(productID, entity.LocationShelves))
}

func TestSetInitialStock_CantidadNegativaInvalida(t *testing.T) {
	uc, _ := newEngine(t)

	err := uc.SetInitialStock(context.Background(), productID, -1, entity.LocationShelves)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetInitialStock_UbicacionInvalida(t *testing.T) {
	uc, _ := newEngine(t)

	err := uc.SetInitialStock(context.Background(), productID, 5, "BASEMENT")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSetInitialStock_ProductoInexistente(t *testing.T) {
	uc, _ := newEngine(t)

	err := uc.SetInitialStock(context.Background(), "no-existe", 5, entity.LocationShelves)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddToReceiving y PutAway
// ──────────────────────────────────────────────────────────────────────────────

func TestAddToReceiving_AcumulaEnRecepcion(t *testing.T) {
	uc, tx := newEngine(t)

	require.NoError(t, uc.AddToReceiving(context.Background(), productID, 20))
	require.NoError(t, uc.AddToReceiving(context.Background(), productID, 5))
	assert.Equal(t, int64(25), tx.Stock.Quantity(productID, entity.LocationReceiving))
}

func TestAddToReceiving_CantidadCeroInvalida(t *testing.T) {
	uc, _ := newEngine(t)

	err := uc.AddToReceiving(context.Background(), productID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPutAway_MueveDeRecepcionAEstanteria(t *testing.T) {
	uc, tx := newEngine(t)
	tx.Stock.Set(productID, entity.LocationReceiving, 10)

	err := uc.PutAway(context.Background(), productID, 6, entity.LocationShelves)
	require.NoError(t, err)
	assert.Equal(t, int64(4), tx.Stock.Quantity(productID, entity.LocationReceiving))
	assert.Equal(t, int64(6), tx.Stock.Quantity(productID, entity.LocationShelves))
}

func TestPutAway_MueveDeRecepcionACongelador(t *testing.T) {
	uc, tx := newEngine(t)
	tx.Stock.Set(productID, entity.LocationReceiving, 10)

	err := uc.PutAway(context.Background(), productID, 10, entity.LocationFreezer)
	require.NoError(t, err)
	assert.Equal(t, int64(0), tx.Stock.Quantity(productID, entity.LocationReceiving))
	assert.Equal(t, int64(10), tx.Stock.Quantity(productID, entity.LocationFreezer))
}

func TestPutAway_RecepcionInsuficiente(t *testing.T) {
	uc, tx := newEngine(t)
	tx.Stock.Set(productID, entity.LocationReceiving, 3)

	err := uc.PutAway(context.Background(), productID, 5, entity.LocationShelves)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	// Nada se movió
	assert.Equal(t, int64(3), tx.Stock.Quantity(productID, entity.LocationReceiving))
	assert.Equal(t, int64(0), tx.Stock.Quantity(productID, entity.LocationShelves))
}

func TestPutAway_DestinoNoAlmacenable(t *testing.T) {
	uc, tx := newEngine(t)
	tx.Stock.Set(productID, entity.LocationReceiving, 10)

	// RECEIVING y SHIPPING no son destinos de put-away
	err := uc.PutAway(context.Background(), productID, 5, entity.LocationShipping)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	err = uc.PutAway(context.Background(), productID, 5, entity.LocationReceiving)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// MoveToShipping: asignación estantería-primero
// ──────────────────────────────────────────────────────────────────────────────

func TestMoveToShipping_TomaPrimeroDeEstanteria(t *testing.T) {
	uc, tx := newEngine(t)
	tx.Stock.Set(productID, entity.LocationShelves, 3)
	tx.Stock.Set(productID, entity.LocationFreezer, 10)
	tx.Stock.Set(productID, entity.LocationShipping, 1)

	// 5 pedidas: 3 de SHELVES agotan la estantería, 2 del FREEZER
	err := uc.MoveToShipping(context.Background(), productID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(0), tx.Stock.Quantity(productID, entity.LocationShelves))
	assert.Equal(t, int64(8), tx.Stock.Quantity(productID, entity.LocationFreezer))
	assert.Equal(t, int64(6), tx.Stock.Quantity(productID, entity.LocationShipping))
}

func TestMoveToShipping_SoloEstanteriaSiAlcanza(t *testing.T) {
	uc, tx := newEngine(t)
	tx.Stock.Set(productID, entity.LocationShelves, 10)
	tx.Stock.Set(productID, entity.LocationFreezer, 10)

	err := uc.MoveToShipping(context.Background(), productID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), tx.Stock.Quantity(productID, entity.LocationShelves))
	assert.Equal(t, int64(10), tx.Stock.Quantity(productID, entity.LocationFreezer), "el congelador no se toca si la estantería alcanza")
	assert.Equal(t, int64(4), tx.Stock.Quantity(productID, entity.LocationShipping))
}

func TestMoveToShipping_StockCombinadoInsuficiente(t *testing.T) {
	uc, tx := newEngine(t)
	tx.Stock.Set(productID, entity.LocationShelves, 2)
	tx.Stock.Set(productID, entity.LocationFreezer, 2)

	err := uc.MoveToShipping(context.Background(), productID, 5)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	// Todo-o-nada: ningún saldo cambió
	assert.Equal(t, int64(2), tx.Stock.Quantity(productID, entity.LocationShelves))
	assert.Equal(t, int64(2), tx.Stock.Quantity(productID, entity.LocationFreezer))
	assert.Equal(t, int64(0), tx.Stock.Quantity(productID, entity.LocationShipping))
}

func TestMoveToShipping_SinFilasDeStock(t *testing.T) {
	uc, _ := newEngine(t)

	// Sin filas el saldo implícito es 0 en ambas ubicaciones
	err := uc.MoveToShipping(context.Background(), productID, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// ──────────────────────────────────────────────────────────────────────────────
// MoveFromShippingToStorage y ConsumeFromShipping
// ──────────────────────────────────────────────────────────────────────────────

func TestMoveFromShippingToStorage_SiempreVuelveAEstanteria(t *testing.T) {
	uc, tx := newEngine(t)
	tx.Stock.Set(productID, entity.LocationFreezer, 10)

	// Reserva tomada enteramente del congelador...
	require.NoError(t, uc.MoveToShipping(context.Background(), productID, 4))
	require.Equal(t, int64(6), tx.Stock.Quantity(productID, entity.LocationFreezer))

	// ...pero la devolución va a SHELVES: el origen no se registra
	err := uc.MoveFromShippingToStorage(context.Background(), productID, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), tx.Stock.Quantity(productID, entity.LocationShelves))
	assert.Equal(t, int64(6), tx.Stock.Quantity(productID, entity.LocationFreezer))
	assert.Equal(t, int64(0), tx.Stock.Quantity(productID, entity.LocationShipping))
}

func TestMoveFromShippingToStorage_ShippingInsuficiente(t *testing.T) {
	uc, tx := newEngine(t)
	tx.Stock.Set(productID, entity.LocationShipping, 2)

	err := uc.MoveFromShippingToStorage(context.Background(), productID, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), tx.Stock.Quantity(productID, entity.LocationShipping))
}

func TestConsumeFromShipping_Consume(t *testing.T) {
	uc, tx := newEngine(t)
	tx.Stock.Set(productID, entity.LocationShipping, 5)

	err := uc.ConsumeFromShipping(context.Background(), productID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), tx.Stock.Quantity(productID, entity.LocationShipping))
	assert.True(t, tx.Stock.Has(productID, entity.LocationShipping))
}

func TestConsumeFromShipping_EliminaFilaEnCeroExacto(t *testing.T) {
	uc, tx := newEngine(t)
	tx.Stock.Set(productID, entity.LocationShipping, 5)

	err := uc.ConsumeFromShipping(context.Background(), productID, 5)
	require.NoError(t, err)
	assert.False(t, tx.Stock.Has(productID, entity.LocationShipping), "la fila se elimina al quedar en cero")
}

func TestConsumeFromShipping_SinFilaRetornaNotFound(t *testing.T) {
	uc, _ := newEngine(t)

	err := uc.ConsumeFromShipping(context.Background(), productID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConsumeFromShipping_SaldoInsuficiente(t *testing.T) {
	uc, tx := newEngine(t)
	tx.Stock.Set(productID, entity.LocationShipping, 2)

	err := uc.ConsumeFromShipping(context.Background(), productID, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), tx.Stock.Quantity(productID, entity.LocationShipping))
}

// ──────────────────────────────────────────────────────────────────────────────
// Bloqueo sobre filas materializadas
// ──────────────────────────────────────────────────────────────────────────────

func TestAddToReceiving_BloqueaSobreFilaMaterializada(t *testing.T) {
	uc, tx := newEngine(t)

	// Primer movimiento de una clave nueva: la fila se materializa con 0 y
	// el bloqueo recae sobre ella, no sobre una fila inexistente
	err := uc.AddToReceiving(context.Background(), productID, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, tx.Stock.LockedCreates)
	assert.Equal(t, int64(20), tx.Stock.Quantity(productID, entity.LocationReceiving))
}

func TestMoveToShipping_BloqueaLasTresUbicaciones(t *testing.T) {
	uc, tx := newEngine(t)
	tx.Stock.Set(productID, entity.LocationShelves, 5)

	err := uc.MoveToShipping(context.Background(), productID, 2)
	require.NoError(t, err)
	// SHELVES, FREEZER y SHIPPING se bloquean aunque FREEZER no tenga stock
	assert.Equal(t, 3, tx.Stock.LockedCreates)
	assert.True(t, tx.Stock.Has(productID, entity.LocationFreezer))
	assert.Equal(t, int64(0), tx.Stock.Quantity(productID, entity.LocationFreezer))
}

func TestConsumeFromShipping_NoMaterializaFilaAusente(t *testing.T) {
	uc, tx := newEngine(t)

	// Consumir no crea filas: la ausencia de la fila es la señal de NotFound
	err := uc.ConsumeFromShipping(context.Background(), productID, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, tx.Stock.LockedCreates)
	assert.False(t, tx.Stock.Has(productID, entity.LocationShipping))
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo y consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujoCompleto_RecepcionHastaDespacho(t *testing.T) {
	uc, tx := newEngine(t)
	ctx := context.Background()

	require.NoError(t, uc.AddToReceiving(ctx, productID, 20))
	require.NoError(t, uc.PutAway(ctx, productID, 15, entity.LocationShelves))
	require.NoError(t, uc.PutAway(ctx, productID, 5, entity.LocationFreezer))
	require.NoError(t, uc.MoveToShipping(ctx, productID, 18))
	require.NoError(t, uc.ConsumeFromShipping(ctx, productID, 18))

	assert.Equal(t, int64(0), tx.Stock.Quantity(productID, entity.LocationReceiving))
	assert.Equal(t, int64(0), tx.Stock.Quantity(productID, entity.LocationShelves))
	assert.Equal(t, int64(2), tx.Stock.Quantity(productID, entity.LocationFreezer))
	assert.False(t, tx.Stock.Has(productID, entity.LocationShipping))
}

func TestStockByProduct_ListaSaldos(t *testing.T) {
	uc, tx := newEngine(t)
	tx.Stock.Set(productID, entity.LocationShelves, 7)
	tx.Stock.Set(productID, entity.LocationFreezer, 3)

	balances, err := uc.StockByProduct(context.Background(), productID)
	require.NoError(t, err)
	require.Len(t, balances, 2)

	byLocation := make(map[string]int64, len(balances))
	for _, b := range balances {
		byLocation[b.Location] = b.Quantity
	}
	assert.Equal(t, int64(7), byLocation[entity.LocationShelves])
	assert.Equal(t, int64(3), byLocation[entity.LocationFreezer])
}

func TestStockByProduct_ProductoInexistente(t *testing.T) {
	uc, _ := newEngine(t)

	_, err := uc.StockByProduct(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
