package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementación de StockBalanceRepository sobre PostgreSQL
// (usable con pool o tx). Almacén puro de cantidades por clave: las reglas
// de negocio viven en el motor de movimientos.
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get obtiene el saldo de un producto en una ubicación, o nil si la fila no existe.
func (r *StockBalanceRepo) Get(productID, location string) (*entity.StockBalance, error) {
	query := `
		SELECT product_id, location, quantity, updated_at
		FROM stock_balances WHERE product_id = $1 AND location = $2`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, productID, location).Scan(
		&b.ProductID, &b.Location, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
// Devuelve nil si la fila no existe; usar dentro de transacción.
func (r *StockBalanceRepo) GetForUpdate(productID, location string) (*entity.StockBalance, error) {
	query := `
		SELECT product_id, location, quantity, updated_at
		FROM stock_balances WHERE product_id = $1 AND location = $2
		FOR UPDATE`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, productID, location).Scan(
		&b.ProductID, &b.Location, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock balance for update: %w", err)
	}
	return &b, nil
}

// GetOrCreateForUpdate materializa la fila con cantidad 0 si no existe y la
// bloquea. El INSERT previo garantiza que el FOR UPDATE recaiga sobre una
// fila real: el primer movimiento de una clave nueva se serializa igual que
// los siguientes, sin que el Upsert posterior pise una escritura concurrente.
func (r *StockBalanceRepo) GetOrCreateForUpdate(productID, location string) (*entity.StockBalance, error) {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO stock_balances (product_id, location, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, location) DO NOTHING`,
		productID, location,
	)
	if err != nil {
		return nil, fmt.Errorf("materialize stock balance: %w", err)
	}
	balance, err := r.GetForUpdate(productID, location)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return nil, fmt.Errorf("stock balance %s/%s missing after materialize", productID, location)
	}
	return balance, nil
}

// Upsert inserta o actualiza la cantidad del saldo (por producto y ubicación).
func (r *StockBalanceRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (product_id, location, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, balance.ProductID, balance.Location, balance.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock balance: %w", err)
	}
	return nil
}

// Delete elimina la fila del saldo (limpieza al consumir hasta cero).
func (r *StockBalanceRepo) Delete(productID, location string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_balances WHERE product_id = $1 AND location = $2`,
		productID, location,
	)
	if err != nil {
		return fmt.Errorf("delete stock balance: %w", err)
	}
	return nil
}

// ListByProduct devuelve los saldos de un producto en todas sus ubicaciones.
func (r *StockBalanceRepo) ListByProduct(productID string) ([]*entity.StockBalance, error) {
	query := `
		SELECT product_id, location, quantity, updated_at
		FROM stock_balances WHERE product_id = $1 ORDER BY location`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock balances: %w", err)
	}
	defer rows.Close()

	var balances []*entity.StockBalance
	for rows.Next() {
		var b entity.StockBalance
		if err := rows.Scan(&b.ProductID, &b.Location, &b.Quantity, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		balances = append(balances, &b)
	}
	return balances, rows.Err()
}
