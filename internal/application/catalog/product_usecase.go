package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductUseCase gestión del catálogo de productos. El catálogo crea y lee
// productos; nunca toca el libro de inventario (eso es del motor de
// movimientos).
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ProductInput datos para crear o actualizar un producto.
type ProductInput struct {
	Name       string
	SKU        string
	CategoryID string
	SupplierID string
	ImageURL   string
	Price      decimal.Decimal
}

// Create valida nombre y categoría, y persiste el producto.
func (uc *ProductUseCase) Create(_ context.Context, in ProductInput) (*entity.Product, error) {
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       in.Name,
		SKU:        in.SKU,
		CategoryID: in.CategoryID,
		SupplierID: in.SupplierID,
		ImageURL:   in.ImageURL,
		Price:      in.Price,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID devuelve el producto, o ErrNotFound.
func (uc *ProductUseCase) GetByID(_ context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List devuelve productos paginados; si categoryID no es vacío, filtra.
func (uc *ProductUseCase) List(_ context.Context, categoryID string, limit, offset int) ([]*entity.Product, error) {
	if categoryID != "" {
		return uc.productRepo.ListByCategory(categoryID, limit, offset)
	}
	return uc.productRepo.List(limit, offset)
}

// Update actualiza los campos de catálogo de un producto existente.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in ProductInput) (*entity.Product, error) {
	product, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	product.Name = in.Name
	product.SKU = in.SKU
	product.CategoryID = in.CategoryID
	product.SupplierID = in.SupplierID
	product.ImageURL = in.ImageURL
	product.Price = in.Price
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete elimina un producto del catálogo.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.productRepo.Delete(id)
}
