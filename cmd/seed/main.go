// seed puebla la base con datos de demostración: usuarios de cada rol,
// categorías, productos y stock inicial. El stock entra únicamente por el
// motor de movimientos, nunca por INSERT directo.
//
// Uso: go run ./cmd/seed
// Idempotente a nivel de usuarios (email único) y productos (SKU único):
// re-ejecutarlo no duplica, pero sí vuelve a sumar stock inicial.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/warehouse-api/internal/application/auth"
	"github.com/jhoicas/warehouse-api/internal/application/catalog"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-api/pkg/config"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	name     string
	sku      string
	category string
	price    string
	quantity int64
	location string
}

var seedProducts = []seedProduct{
	{"Café de Colombia 500g", "WH-0001", "Groceries", "28000", 120, entity.LocationShelves},
	{"Arroz premium 1kg", "WH-0002", "Groceries", "6500", 300, entity.LocationShelves},
	{"Filete de salmón", "WH-0003", "Frozen", "42000", 40, entity.LocationFreezer},
	{"Helado de vainilla 1L", "WH-0004", "Frozen", "18000", 60, entity.LocationFreezer},
	{"Caja organizadora", "WH-0005", "Home", "35000", 80, entity.LocationShelves},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	stockRepo := postgres.NewStockBalanceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	movementUC := inventory.NewMovementUseCase(txRunner, stockRepo, productRepo)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	productUC := catalog.NewProductUseCase(productRepo, categoryRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Un usuario por rol, password de demo
	users := []dto.RegisterRequest{
		{Email: "admin@warehouse.local", Password: "admin12345", Name: "Admin", Role: entity.RoleAdmin},
		{Email: "employee@warehouse.local", Password: "employee12345", Name: "Bodeguero", Role: entity.RoleEmployee},
		{Email: "supplier@warehouse.local", Password: "supplier12345", Name: "Proveedor", Role: entity.RoleSupplier},
		{Email: "customer@warehouse.local", Password: "customer12345", Name: "Cliente", Role: entity.RoleCustomer},
	}
	for _, u := range users {
		if _, err := authUC.RegisterUser(u); err != nil {
			if errors.Is(err, domain.ErrEmailAlreadyExists) {
				fmt.Printf("usuario %s ya existe, omitido\n", u.Email)
				continue
			}
			fmt.Fprintf(os.Stderr, "crear usuario %s: %v\n", u.Email, err)
			os.Exit(1)
		}
		fmt.Printf("usuario %s creado (%s)\n", u.Email, u.Role)
	}

	for _, sp := range seedProducts {
		existing, err := productRepo.GetBySKU(sp.sku)
		if err != nil {
			fmt.Fprintf(os.Stderr, "buscar producto %s: %v\n", sp.sku, err)
			os.Exit(1)
		}
		if existing != nil {
			fmt.Printf("producto %s ya existe, omitido\n", sp.sku)
			continue
		}
		category, err := categoryUC.GetOrCreateByName(ctx, sp.category)
		if err != nil {
			fmt.Fprintf(os.Stderr, "categoría %s: %v\n", sp.category, err)
			os.Exit(1)
		}
		price, err := decimal.NewFromString(sp.price)
		if err != nil {
			fmt.Fprintf(os.Stderr, "precio de %s: %v\n", sp.sku, err)
			os.Exit(1)
		}
		product, err := productUC.Create(ctx, catalog.ProductInput{
			Name:       sp.name,
			SKU:        sp.sku,
			CategoryID: category.ID,
			Price:      price,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "crear producto %s: %v\n", sp.sku, err)
			os.Exit(1)
		}
		if err := movementUC.SetInitialStock(ctx, product.ID, sp.quantity, sp.location); err != nil {
			fmt.Fprintf(os.Stderr, "stock inicial de %s: %v\n", sp.sku, err)
			os.Exit(1)
		}
		fmt.Printf("producto %s creado con %d unidades en %s\n", sp.sku, sp.quantity, sp.location)
	}

	fmt.Println("seed completado")
}
