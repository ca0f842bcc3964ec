package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL.
// El carrito es 1:1 con el cliente (unique sobre customer_id).
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador.
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// GetByCustomer devuelve el carrito del cliente con sus items, o nil si no existe.
func (r *CartRepo) GetByCustomer(customerID string) (*entity.ShoppingCart, error) {
	return r.getByCustomer(
		`SELECT id, customer_id, created_at FROM shopping_carts WHERE customer_id = $1`, customerID)
}

// GetByCustomerForUpdate devuelve el carrito con sus items bloqueando la
// fila del carrito (SELECT FOR UPDATE). Los items se leen después de tomar
// el bloqueo: dos checkouts concurrentes del mismo carrito se serializan y
// el segundo ve los items que el primero dejó.
func (r *CartRepo) GetByCustomerForUpdate(customerID string) (*entity.ShoppingCart, error) {
	return r.getByCustomer(
		`SELECT id, customer_id, created_at FROM shopping_carts WHERE customer_id = $1 FOR UPDATE`, customerID)
}

func (r *CartRepo) getByCustomer(query, customerID string) (*entity.ShoppingCart, error) {
	ctx := context.Background()
	var c entity.ShoppingCart
	err := r.q.QueryRow(ctx, query, customerID).Scan(&c.ID, &c.CustomerID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	rows, err := r.q.Query(ctx,
		`SELECT id, cart_id, product_id, quantity FROM cart_items WHERE cart_id = $1`, c.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		c.Items = append(c.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un carrito vacío.
func (r *CartRepo) Create(cart *entity.ShoppingCart) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO shopping_carts (id, customer_id, created_at) VALUES ($1, $2, $3)`,
		cart.ID, cart.CustomerID, cart.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("cart for customer %s: %w", cart.CustomerID, err)
		}
		return fmt.Errorf("insert cart: %w", err)
	}
	return nil
}

// GetItem devuelve el item del producto en el carrito, o nil si no existe.
func (r *CartRepo) GetItem(cartID, productID string) (*entity.CartItem, error) {
	var it entity.CartItem
	err := r.q.QueryRow(context.Background(),
		`SELECT id, cart_id, product_id, quantity FROM cart_items WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID,
	).Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &it, nil
}

// InsertItem agrega un item nuevo al carrito.
func (r *CartRepo) InsertItem(item *entity.CartItem) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO cart_items (id, cart_id, product_id, quantity) VALUES ($1, $2, $3, $4)`,
		item.ID, item.CartID, item.ProductID, item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

// UpdateItemQuantity reemplaza la cantidad del item (no incrementa).
func (r *CartRepo) UpdateItemQuantity(cartID, productID string, quantity int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE cart_items SET quantity = $3 WHERE cart_id = $1 AND product_id = $2`,
		cartID, productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

// DeleteItem elimina un item del carrito. No falla si no existe.
func (r *CartRepo) DeleteItem(cartID, productID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2`, cartID, productID,
	)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// DeleteItems vacía el carrito. La fila del carrito persiste.
func (r *CartRepo) DeleteItems(cartID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM cart_items WHERE cart_id = $1`, cartID,
	)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
