package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-api/internal/application/apptest"
	"github.com/jhoicas/warehouse-api/internal/application/cart"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	customerID = "22222222-2222-2222-2222-222222222222"
	milkID     = "11111111-1111-1111-1111-111111111111"
	breadID    = "33333333-3333-3333-3333-333333333333"
)

// newCartUseCase construye el caso de uso del carrito sobre repos en
// memoria, con dos productos de catálogo registrados.
func newCartUseCase(t *testing.T) (*cart.CartUseCase, *apptest.FakeTx) {
	t.Helper()
	tx := apptest.NewFakeTx()
	products := apptest.NewFakeProductRepo()
	products.Add(&entity.Product{ID: milkID, Name: "Leche entera 1L", SKU: "WH-0001"})
	products.Add(&entity.Product{ID: breadID, Name: "Pan integral", SKU: "WH-0002"})
	movements := inventory.NewMovementUseCase(tx, tx.Stock, products)
	return cart.NewCartUseCase(tx, tx.Carts, products, movements), tx
}

func itemQuantity(t *testing.T, tx *apptest.FakeTx, productID string) (int64, bool) {
	t.Helper()
	c, err := tx.Carts.GetByCustomer(customerID)
	require.NoError(t, err)
	require.NotNil(t, c)
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it.Quantity, true
		}
	}
	return 0, false
}

// ──────────────────────────────────────────────────────────────────────────────
// Get-or-create y manejo de items
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrCreateCart_CreaUnaSolaVez(t *testing.T) {
	uc, _ := newCartUseCase(t)
	ctx := context.Background()

	first, err := uc.GetOrCreateCart(ctx, customerID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Empty(t, first.Items)

	second, err := uc.GetOrCreateCart(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "el carrito nunca se recrea para el mismo cliente")
}

func TestAddToCart_IncrementaCantidadExistente(t *testing.T) {
	uc, tx := newCartUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.AddToCart(ctx, customerID, milkID, 2))
	require.NoError(t, uc.AddToCart(ctx, customerID, milkID, 3))

	qty, ok := itemQuantity(t, tx, milkID)
	require.True(t, ok)
	assert.Equal(t, int64(5), qty, "agregar incrementa, no reemplaza")
}

func TestAddToCart_ProductoInexistente(t *testing.T) {
	uc, _ := newCartUseCase(t)

	err := uc.AddToCart(context.Background(), customerID, "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddToCart_CantidadInvalida(t *testing.T) {
	uc, _ := newCartUseCase(t)

	err := uc.AddToCart(context.Background(), customerID, milkID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateItemQuantity_ReemplazaCantidad(t *testing.T) {
	uc, tx := newCartUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.AddToCart(ctx, customerID, milkID, 2))
	require.NoError(t, uc.UpdateItemQuantity(ctx, customerID, milkID, 7))

	qty, ok := itemQuantity(t, tx, milkID)
	require.True(t, ok)
	assert.Equal(t, int64(7), qty, "actualizar reemplaza, no suma")
}

func TestUpdateItemQuantity_CeroEliminaItem(t *testing.T) {
	uc, tx := newCartUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.AddToCart(ctx, customerID, milkID, 2))
	require.NoError(t, uc.UpdateItemQuantity(ctx, customerID, milkID, 0))

	_, ok := itemQuantity(t, tx, milkID)
	assert.False(t, ok, "cantidad <= 0 quita el item")
}

func TestUpdateItemQuantity_ItemInexistente(t *testing.T) {
	uc, _ := newCartUseCase(t)

	err := uc.UpdateItemQuantity(context.Background(), customerID, milkID, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveFromCart_NoOpSiNoExiste(t *testing.T) {
	uc, _ := newCartUseCase(t)

	err := uc.RemoveFromCart(context.Background(), customerID, milkID)
	assert.NoError(t, err, "quitar un item ausente no es error")
}

func TestClearCart_VaciaTodosLosItems(t *testing.T) {
	uc, _ := newCartUseCase(t)
	ctx := context.Background()

	require.NoError(t, uc.AddToCart(ctx, customerID, milkID, 2))
	require.NoError(t, uc.AddToCart(ctx, customerID, breadID, 1))
	require.NoError(t, uc.ClearCart(ctx, customerID))

	c, err := uc.GetOrCreateCart(ctx, customerID)
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

// ──────────────────────────────────────────────────────────────────────────────
// Checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckout_CreaOrdenYReservaStock(t *testing.T) {
	uc, tx := newCartUseCase(t)
	ctx := context.Background()
	tx.Stock.Set(milkID, entity.LocationShelves, 10)
	tx.Stock.Set(breadID, entity.LocationShelves, 1)
	tx.Stock.Set(breadID, entity.LocationFreezer, 5)

	require.NoError(t, uc.AddToCart(ctx, customerID, milkID, 4))
	require.NoError(t, uc.AddToCart(ctx, customerID, breadID, 3))

	order, err := uc.Checkout(ctx, customerID)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, customerID, order.CustomerID)
	assert.Equal(t, entity.OrderStatusOrdered, order.Status)
	assert.Len(t, order.Lines, 2)

	// Stock reservado: estantería primero, resto del congelador
	assert.Equal(t, int64(6), tx.Stock.Quantity(milkID, entity.LocationShelves))
	assert.Equal(t, int64(4), tx.Stock.Quantity(milkID, entity.LocationShipping))
	assert.Equal(t, int64(0), tx.Stock.Quantity(breadID, entity.LocationShelves))
	assert.Equal(t, int64(3), tx.Stock.Quantity(breadID, entity.LocationFreezer))
	assert.Equal(t, int64(3), tx.Stock.Quantity(breadID, entity.LocationShipping))

	// La orden quedó persistida y el carrito vacío
	persisted, err := tx.Orders.GetByID(order.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	cartAfter, err := uc.GetOrCreateCart(ctx, customerID)
	require.NoError(t, err)
	assert.Empty(t, cartAfter.Items)
}

func TestCheckout_CarritoVacioRetornaInvalidState(t *testing.T) {
	uc, _ := newCartUseCase(t)

	_, err := uc.Checkout(context.Background(), customerID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.ErrorContains(t, err, "el carrito está vacío")
}

func TestCheckout_StockInsuficienteAbortaTodo(t *testing.T) {
	uc, tx := newCartUseCase(t)
	ctx := context.Background()
	tx.Stock.Set(milkID, entity.LocationShelves, 10)
	// breadID sin stock: la segunda línea falla

	require.NoError(t, uc.AddToCart(ctx, customerID, milkID, 4))
	require.NoError(t, uc.AddToCart(ctx, customerID, breadID, 3))

	_, err := uc.Checkout(ctx, customerID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback completo: ni stock movido, ni orden creada, ni carrito vaciado
	assert.Equal(t, int64(10), tx.Stock.Quantity(milkID, entity.LocationShelves))
	assert.Equal(t, int64(0), tx.Stock.Quantity(milkID, entity.LocationShipping))
	orders, err := tx.Orders.ListByCustomer(customerID)
	require.NoError(t, err)
	assert.Empty(t, orders)
	qty, ok := itemQuantity(t, tx, milkID)
	require.True(t, ok)
	assert.Equal(t, int64(4), qty)
}

func TestCheckout_BloqueaElCarritoYReleeLosItems(t *testing.T) {
	uc, tx := newCartUseCase(t)
	ctx := context.Background()
	tx.Stock.Set(milkID, entity.LocationShelves, 10)

	require.NoError(t, uc.AddToCart(ctx, customerID, milkID, 2))
	cart, err := uc.GetOrCreateCart(ctx, customerID)
	require.NoError(t, err)

	// Otra sesión cambia la cantidad después de nuestra lectura; el
	// checkout bloquea el carrito y relee los items dentro de la
	// transacción, así la orden refleja el estado actual, no el leído antes
	require.NoError(t, tx.Carts.UpdateItemQuantity(cart.ID, milkID, 5))

	order, err := uc.Checkout(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, int64(5), order.Lines[0].Quantity)
	assert.Equal(t, 1, tx.Carts.LockedReads)
	assert.Equal(t, int64(5), tx.Stock.Quantity(milkID, entity.LocationShipping))
}

func TestCheckout_SegundoCheckoutDelCarritoVaciadoFalla(t *testing.T) {
	uc, tx := newCartUseCase(t)
	ctx := context.Background()
	tx.Stock.Set(milkID, entity.LocationShelves, 10)

	require.NoError(t, uc.AddToCart(ctx, customerID, milkID, 2))
	_, err := uc.Checkout(ctx, customerID)
	require.NoError(t, err)

	// Serializado detrás del primero, el segundo checkout ve el carrito ya
	// vacío y no produce una segunda orden
	_, err = uc.Checkout(ctx, customerID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	orders, err := tx.Orders.ListByCustomer(customerID)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, int64(8), tx.Stock.Quantity(milkID, entity.LocationShelves))
}

func TestCheckout_CarritoReutilizableTrasCheckout(t *testing.T) {
	uc, tx := newCartUseCase(t)
	ctx := context.Background()
	tx.Stock.Set(milkID, entity.LocationShelves, 10)

	require.NoError(t, uc.AddToCart(ctx, customerID, milkID, 2))
	first, err := uc.Checkout(ctx, customerID)
	require.NoError(t, err)

	// El mismo carrito acepta una segunda compra
	require.NoError(t, uc.AddToCart(ctx, customerID, milkID, 1))
	second, err := uc.Checkout(ctx, customerID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, int64(7), tx.Stock.Quantity(milkID, entity.LocationShelves))
	assert.Equal(t, int64(3), tx.Stock.Quantity(milkID, entity.LocationShipping))
}
