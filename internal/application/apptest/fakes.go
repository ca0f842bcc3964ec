// Package apptest provee dobles en memoria de los puertos de persistencia
// para los tests de los casos de uso. El FakeTx imita la semántica
// transaccional real: si la función falla, el estado vuelve al snapshot
// previo (rollback).
package apptest

import (
	"context"
	"sort"

	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// ── Stock ─────────────────────────────────────────────────────────────────────

// FakeStockRepo libro de inventario en memoria, clave (producto, ubicación).
// LockedCreates cuenta las lecturas materializantes (GetOrCreateForUpdate)
// para que los tests verifiquen que el motor bloquea sobre filas reales.
type FakeStockRepo struct {
	rows map[string]*entity.StockBalance

	LockedCreates int
}

// NewFakeStockRepo construye el repo vacío.
func NewFakeStockRepo() *FakeStockRepo {
	return &FakeStockRepo{rows: make(map[string]*entity.StockBalance)}
}

func stockKey(productID, location string) string { return productID + "|" + location }

// Set inicializa un saldo directamente (solo para preparar escenarios).
func (f *FakeStockRepo) Set(productID, location string, quantity int64) {
	f.rows[stockKey(productID, location)] = &entity.StockBalance{
		ProductID: productID, Location: location, Quantity: quantity,
	}
}

// Quantity devuelve el saldo actual, cero si la fila no existe.
func (f *FakeStockRepo) Quantity(productID, location string) int64 {
	if b, ok := f.rows[stockKey(productID, location)]; ok {
		return b.Quantity
	}
	return 0
}

// Has indica si la fila existe (distinto de saldo cero).
func (f *FakeStockRepo) Has(productID, location string) bool {
	_, ok := f.rows[stockKey(productID, location)]
	return ok
}

func (f *FakeStockRepo) Get(productID, location string) (*entity.StockBalance, error) {
	b, ok := f.rows[stockKey(productID, location)]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *FakeStockRepo) GetForUpdate(productID, location string) (*entity.StockBalance, error) {
	return f.Get(productID, location)
}

func (f *FakeStockRepo) GetOrCreateForUpdate(productID, location string) (*entity.StockBalance, error) {
	f.LockedCreates++
	k := stockKey(productID, location)
	if _, ok := f.rows[k]; !ok {
		f.rows[k] = &entity.StockBalance{ProductID: productID, Location: location}
	}
	cp := *f.rows[k]
	return &cp, nil
}

func (f *FakeStockRepo) Upsert(balance *entity.StockBalance) error {
	cp := *balance
	f.rows[stockKey(balance.ProductID, balance.Location)] = &cp
	return nil
}

func (f *FakeStockRepo) Delete(productID, location string) error {
	delete(f.rows, stockKey(productID, location))
	return nil
}

func (f *FakeStockRepo) ListByProduct(productID string) ([]*entity.StockBalance, error) {
	var out []*entity.StockBalance
	for _, b := range f.rows {
		if b.ProductID == productID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	return out, nil
}

func (f *FakeStockRepo) snapshot() map[string]*entity.StockBalance {
	snap := make(map[string]*entity.StockBalance, len(f.rows))
	for k, b := range f.rows {
		cp := *b
		snap[k] = &cp
	}
	return snap
}

func (f *FakeStockRepo) restore(snap map[string]*entity.StockBalance) {
	f.rows = snap
}

// ── Productos ─────────────────────────────────────────────────────────────────

// FakeProductRepo catálogo de productos en memoria.
type FakeProductRepo struct {
	byID map[string]*entity.Product
}

// NewFakeProductRepo construye el repo vacío.
func NewFakeProductRepo() *FakeProductRepo {
	return &FakeProductRepo{byID: make(map[string]*entity.Product)}
}

// Add inserta un producto para preparar escenarios.
func (f *FakeProductRepo) Add(p *entity.Product) {
	cp := *p
	f.byID[p.ID] = &cp
}

func (f *FakeProductRepo) Create(product *entity.Product) error {
	if product.SKU != "" {
		for _, p := range f.byID {
			if p.SKU == product.SKU {
				return domain.ErrDuplicate
			}
		}
	}
	cp := *product
	f.byID[product.ID] = &cp
	return nil
}

func (f *FakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *FakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.byID {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakeProductRepo) Update(product *entity.Product) error {
	cp := *product
	f.byID[product.ID] = &cp
	return nil
}

func (f *FakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.byID {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

func (f *FakeProductRepo) ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.byID {
		if p.CategoryID == categoryID {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

func (f *FakeProductRepo) Delete(id string) error {
	delete(f.byID, id)
	return nil
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

// ── Órdenes de cliente ────────────────────────────────────────────────────────

// FakeOrderRepo órdenes de cliente en memoria. LockedReads cuenta las
// lecturas con bloqueo (GetByIDForUpdate).
type FakeOrderRepo struct {
	byID map[string]*entity.CustomerOrder

	LockedReads int
}

// NewFakeOrderRepo construye el repo vacío.
func NewFakeOrderRepo() *FakeOrderRepo {
	return &FakeOrderRepo{byID: make(map[string]*entity.CustomerOrder)}
}

func copyOrder(o *entity.CustomerOrder) *entity.CustomerOrder {
	cp := *o
	cp.Lines = append([]entity.OrderLine(nil), o.Lines...)
	return &cp
}

func (f *FakeOrderRepo) Create(order *entity.CustomerOrder) error {
	f.byID[order.ID] = copyOrder(order)
	return nil
}

func (f *FakeOrderRepo) GetByID(id string) (*entity.CustomerOrder, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return copyOrder(o), nil
}

func (f *FakeOrderRepo) GetByIDForUpdate(id string) (*entity.CustomerOrder, error) {
	f.LockedReads++
	return f.GetByID(id)
}

func (f *FakeOrderRepo) List(limit, offset int) ([]*entity.CustomerOrder, error) {
	var out []*entity.CustomerOrder
	for _, o := range f.byID {
		out = append(out, copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateCreated.After(out[j].DateCreated) })
	return paginate(out, limit, offset), nil
}

func (f *FakeOrderRepo) ListByCustomer(customerID string) ([]*entity.CustomerOrder, error) {
	var out []*entity.CustomerOrder
	for _, o := range f.byID {
		if o.CustomerID == customerID {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateCreated.After(out[j].DateCreated) })
	return out, nil
}

func (f *FakeOrderRepo) UpdateStatus(id, status string) error {
	o, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (f *FakeOrderRepo) snapshot() map[string]*entity.CustomerOrder {
	snap := make(map[string]*entity.CustomerOrder, len(f.byID))
	for k, o := range f.byID {
		snap[k] = copyOrder(o)
	}
	return snap
}

func (f *FakeOrderRepo) restore(snap map[string]*entity.CustomerOrder) {
	f.byID = snap
}

// ── Órdenes de compra ─────────────────────────────────────────────────────────

// FakePurchaseOrderRepo órdenes de compra en memoria. LockedReads cuenta
// las lecturas con bloqueo (GetByIDForUpdate).
type FakePurchaseOrderRepo struct {
	byID map[string]*entity.PurchaseOrder

	LockedReads int
}

// NewFakePurchaseOrderRepo construye el repo vacío.
func NewFakePurchaseOrderRepo() *FakePurchaseOrderRepo {
	return &FakePurchaseOrderRepo{byID: make(map[string]*entity.PurchaseOrder)}
}

func copyPO(po *entity.PurchaseOrder) *entity.PurchaseOrder {
	cp := *po
	cp.Lines = append([]entity.PurchaseOrderLine(nil), po.Lines...)
	return &cp
}

func (f *FakePurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	f.byID[order.ID] = copyPO(order)
	return nil
}

func (f *FakePurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	po, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return copyPO(po), nil
}

func (f *FakePurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	f.LockedReads++
	return f.GetByID(id)
}

func (f *FakePurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range f.byID {
		out = append(out, copyPO(po))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateCreated.After(out[j].DateCreated) })
	return paginate(out, limit, offset), nil
}

func (f *FakePurchaseOrderRepo) ListIncomingForSupplier(supplierID string) ([]*entity.PurchaseOrder, error) {
	var out []*entity.PurchaseOrder
	for _, po := range f.byID {
		if po.SupplierID != supplierID {
			continue
		}
		if po.Status != entity.PurchaseOrderStatusOrdered && po.Status != entity.PurchaseOrderStatusApproved {
			continue
		}
		out = append(out, copyPO(po))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateCreated.After(out[j].DateCreated) })
	return out, nil
}

func (f *FakePurchaseOrderRepo) UpdateStatus(id, status string) error {
	po, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	po.Status = status
	return nil
}

func (f *FakePurchaseOrderRepo) snapshot() map[string]*entity.PurchaseOrder {
	snap := make(map[string]*entity.PurchaseOrder, len(f.byID))
	for k, po := range f.byID {
		snap[k] = copyPO(po)
	}
	return snap
}

func (f *FakePurchaseOrderRepo) restore(snap map[string]*entity.PurchaseOrder) {
	f.byID = snap
}

// ── Carrito ───────────────────────────────────────────────────────────────────

// FakeCartRepo carritos en memoria, clave customer_id. LockedReads cuenta
// las lecturas con bloqueo (GetByCustomerForUpdate).
type FakeCartRepo struct {
	byCustomer map[string]*entity.ShoppingCart

	LockedReads int
}

// NewFakeCartRepo construye el repo vacío.
func NewFakeCartRepo() *FakeCartRepo {
	return &FakeCartRepo{byCustomer: make(map[string]*entity.ShoppingCart)}
}

func copyCart(c *entity.ShoppingCart) *entity.ShoppingCart {
	cp := *c
	cp.Items = append([]entity.CartItem(nil), c.Items...)
	return &cp
}

func (f *FakeCartRepo) GetByCustomer(customerID string) (*entity.ShoppingCart, error) {
	c, ok := f.byCustomer[customerID]
	if !ok {
		return nil, nil
	}
	return copyCart(c), nil
}

func (f *FakeCartRepo) GetByCustomerForUpdate(customerID string) (*entity.ShoppingCart, error) {
	f.LockedReads++
	return f.GetByCustomer(customerID)
}

func (f *FakeCartRepo) Create(cart *entity.ShoppingCart) error {
	f.byCustomer[cart.CustomerID] = copyCart(cart)
	return nil
}

func (f *FakeCartRepo) findCart(cartID string) *entity.ShoppingCart {
	for _, c := range f.byCustomer {
		if c.ID == cartID {
			return c
		}
	}
	return nil
}

func (f *FakeCartRepo) GetItem(cartID, productID string) (*entity.CartItem, error) {
	c := f.findCart(cartID)
	if c == nil {
		return nil, nil
	}
	for _, it := range c.Items {
		if it.ProductID == productID {
			cp := it
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *FakeCartRepo) InsertItem(item *entity.CartItem) error {
	c := f.findCart(item.CartID)
	if c == nil {
		return domain.ErrNotFound
	}
	c.Items = append(c.Items, *item)
	return nil
}

func (f *FakeCartRepo) UpdateItemQuantity(cartID, productID string, quantity int64) error {
	c := f.findCart(cartID)
	if c == nil {
		return domain.ErrNotFound
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *FakeCartRepo) DeleteItem(cartID, productID string) error {
	c := f.findCart(cartID)
	if c == nil {
		return nil
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *FakeCartRepo) DeleteItems(cartID string) error {
	c := f.findCart(cartID)
	if c != nil {
		c.Items = nil
	}
	return nil
}

func (f *FakeCartRepo) snapshot() map[string]*entity.ShoppingCart {
	snap := make(map[string]*entity.ShoppingCart, len(f.byCustomer))
	for k, c := range f.byCustomer {
		snap[k] = copyCart(c)
	}
	return snap
}

func (f *FakeCartRepo) restore(snap map[string]*entity.ShoppingCart) {
	f.byCustomer = snap
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// FakeTx imita los TxRunner reales sobre los repos en memoria: toma un
// snapshot antes de ejecutar la función y lo restaura si falla, para que los
// tests puedan afirmar la semántica todo-o-nada.
type FakeTx struct {
	Stock  *FakeStockRepo
	Orders *FakeOrderRepo
	POs    *FakePurchaseOrderRepo
	Carts  *FakeCartRepo
}

// NewFakeTx construye el runner con todos los repos en memoria.
func NewFakeTx() *FakeTx {
	return &FakeTx{
		Stock:  NewFakeStockRepo(),
		Orders: NewFakeOrderRepo(),
		POs:    NewFakePurchaseOrderRepo(),
		Carts:  NewFakeCartRepo(),
	}
}

func (f *FakeTx) Run(_ context.Context, fn func(stockRepo repository.StockBalanceRepository) error) error {
	snap := f.Stock.snapshot()
	if err := fn(f.Stock); err != nil {
		f.Stock.restore(snap)
		return err
	}
	return nil
}

func (f *FakeTx) RunOrder(_ context.Context, fn func(
	stockRepo repository.StockBalanceRepository,
	orderRepo repository.CustomerOrderRepository,
) error) error {
	stockSnap := f.Stock.snapshot()
	orderSnap := f.Orders.snapshot()
	if err := fn(f.Stock, f.Orders); err != nil {
		f.Stock.restore(stockSnap)
		f.Orders.restore(orderSnap)
		return err
	}
	return nil
}

func (f *FakeTx) RunPurchase(_ context.Context, fn func(
	stockRepo repository.StockBalanceRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	stockSnap := f.Stock.snapshot()
	poSnap := f.POs.snapshot()
	if err := fn(f.Stock, f.POs); err != nil {
		f.Stock.restore(stockSnap)
		f.POs.restore(poSnap)
		return err
	}
	return nil
}

func (f *FakeTx) RunCart(_ context.Context, fn func(
	stockRepo repository.StockBalanceRepository,
	cartRepo repository.CartRepository,
	orderRepo repository.CustomerOrderRepository,
) error) error {
	stockSnap := f.Stock.snapshot()
	cartSnap := f.Carts.snapshot()
	orderSnap := f.Orders.snapshot()
	if err := fn(f.Stock, f.Carts, f.Orders); err != nil {
		f.Stock.restore(stockSnap)
		f.Carts.restore(cartSnap)
		f.Orders.restore(orderSnap)
		return err
	}
	return nil
}
