package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.CustomerOrderRepository = (*CustomerOrderRepo)(nil)

// CustomerOrderRepo implementación del puerto CustomerOrderRepository sobre
// PostgreSQL (usable con pool o tx). Las líneas se insertan junto con la
// orden y nunca se mutan después.
type CustomerOrderRepo struct {
	q Querier
}

// NewCustomerOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerOrderRepository(q Querier) *CustomerOrderRepo {
	return &CustomerOrderRepo{q: q}
}

// Create persiste la orden y todas sus líneas.
func (r *CustomerOrderRepo) Create(order *entity.CustomerOrder) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`INSERT INTO customer_orders (id, customer_id, status, date_created) VALUES ($1, $2, $3, $4)`,
		order.ID, order.CustomerID, order.Status, order.DateCreated,
	)
	if err != nil {
		return fmt.Errorf("insert customer order: %w", err)
	}
	for _, line := range order.Lines {
		_, err := r.q.Exec(ctx,
			`INSERT INTO customer_order_lines (id, order_id, product_id, quantity) VALUES ($1, $2, $3, $4)`,
			line.ID, line.OrderID, line.ProductID, line.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la orden con sus líneas, o nil si no existe.
func (r *CustomerOrderRepo) GetByID(id string) (*entity.CustomerOrder, error) {
	return r.getOne(
		`SELECT id, customer_id, status, date_created FROM customer_orders WHERE id = $1`, id)
}

// GetByIDForUpdate devuelve la orden bloqueando su fila (SELECT FOR UPDATE),
// o nil si no existe. Dentro de transacción, el chequeo de estado de
// Ship/Cancel y el UPDATE posterior quedan serializados: una segunda
// transacción concurrente espera y relee el estado ya terminal.
func (r *CustomerOrderRepo) GetByIDForUpdate(id string) (*entity.CustomerOrder, error) {
	return r.getOne(
		`SELECT id, customer_id, status, date_created FROM customer_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *CustomerOrderRepo) getOne(query, id string) (*entity.CustomerOrder, error) {
	ctx := context.Background()
	var o entity.CustomerOrder
	err := r.q.QueryRow(ctx, query, id).Scan(&o.ID, &o.CustomerID, &o.Status, &o.DateCreated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer order: %w", err)
	}
	lines, err := r.linesFor(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

// List devuelve órdenes con sus líneas, más reciente primero.
func (r *CustomerOrderRepo) List(limit, offset int) ([]*entity.CustomerOrder, error) {
	return r.list(
		`SELECT id, customer_id, status, date_created FROM customer_orders
		 ORDER BY date_created DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByCustomer devuelve las órdenes de un cliente, más reciente primero.
func (r *CustomerOrderRepo) ListByCustomer(customerID string) ([]*entity.CustomerOrder, error) {
	return r.list(
		`SELECT id, customer_id, status, date_created FROM customer_orders
		 WHERE customer_id = $1 ORDER BY date_created DESC`, customerID)
}

// UpdateStatus cambia el estado de la orden.
func (r *CustomerOrderRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE customer_orders SET status = $2 WHERE id = $1`, id, status,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func (r *CustomerOrderRepo) list(query string, args ...any) ([]*entity.CustomerOrder, error) {
	ctx := context.Background()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	defer rows.Close()

	var orders []*entity.CustomerOrder
	for rows.Next() {
		var o entity.CustomerOrder
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.Status, &o.DateCreated); err != nil {
			return nil, fmt.Errorf("scan customer order: %w", err)
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

func (r *CustomerOrderRepo) linesFor(ctx context.Context, orderID string) ([]entity.OrderLine, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, order_id, product_id, quantity FROM customer_order_lines WHERE order_id = $1`, orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
