package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre
// PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden de compra y todas sus líneas.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`INSERT INTO purchase_orders (id, employee_id, supplier_id, status, date_created)
		 VALUES ($1, $2, $3, $4, $5)`,
		order.ID, order.EmployeeID, order.SupplierID, order.Status, order.DateCreated,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for _, line := range order.Lines {
		_, err := r.q.Exec(ctx,
			`INSERT INTO purchase_order_lines (id, order_id, product_id, quantity) VALUES ($1, $2, $3, $4)`,
			line.ID, line.OrderID, line.ProductID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden con sus líneas, o nil si no existe.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	return r.getOne(
		`SELECT id, employee_id, supplier_id, status, date_created FROM purchase_orders WHERE id = $1`, id)
}

// GetByIDForUpdate devuelve la orden bloqueando su fila (SELECT FOR UPDATE),
// o nil si no existe. Dos Receive concurrentes de la misma orden se
// serializan sobre esta fila: el segundo relee RECEIVED y falla sin duplicar
// el inventario recibido.
func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	return r.getOne(
		`SELECT id, employee_id, supplier_id, status, date_created FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) getOne(query, id string) (*entity.PurchaseOrder, error) {
	ctx := context.Background()
	var o entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.EmployeeID, &o.SupplierID, &o.Status, &o.DateCreated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	lines, err := r.linesFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

// List devuelve órdenes de compra con sus líneas, más reciente primero.
func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	return r.list(
		`SELECT id, employee_id, supplier_id, status, date_created FROM purchase_orders
		 ORDER BY date_created DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListIncomingForSupplier devuelve las órdenes pendientes (ORDERED o APPROVED)
// de un proveedor, más reciente primero.
func (r *PurchaseOrderRepo) ListIncomingForSupplier(supplierID string) ([]*entity.PurchaseOrder, error) {
	return r.list(
		`SELECT id, employee_id, supplier_id, status, date_created FROM purchase_orders
		 WHERE supplier_id = $1 AND status IN ($2, $3) ORDER BY date_created DESC`,
		supplierID, entity.PurchaseOrderStatusOrdered, entity.PurchaseOrderStatusApproved)
}

// UpdateStatus cambia el estado de la orden de compra.
func (r *PurchaseOrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2 WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) list(query string, args ...any) ([]*entity.PurchaseOrder, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.PurchaseOrder
	for rows.Next() {
		var o entity.PurchaseOrder
		if err := rows.Scan(&o.ID, &o.EmployeeID, &o.SupplierID, &o.Status, &o.DateCreated); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		lines, err := r.linesFor(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Lines = lines
	}
	return orders, nil
}

func (r *PurchaseOrderRepo) linesFor(ctx context.Context, orderID string) ([]entity.PurchaseOrderLine, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, order_id, product_id, quantity FROM purchase_order_lines WHERE order_id = $1`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list purchase order lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.PurchaseOrderLine
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
