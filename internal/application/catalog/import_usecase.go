package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/external"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// ExternalCatalog puerto hacia un catálogo de productos de terceros.
type ExternalCatalog interface {
	Categories(ctx context.Context) ([]string, error)
	ProductsByCategory(ctx context.Context, category string) ([]external.CatalogItem, error)
	// ByExternalID devuelve el item, o nil si no existe en el feed.
	ByExternalID(ctx context.Context, externalID string) (*external.CatalogItem, error)
}

// ImportUseCase mapea items de un catálogo externo a productos locales con
// stock inicial. El id foráneo se guarda como SKU para deduplicar; la
// importación entra al inventario únicamente por SetInitialStock, el
// contrato que el núcleo expone para este fin.
type ImportUseCase struct {
	catalog     ExternalCatalog
	productRepo repository.ProductRepository
	categories  *CategoryUseCase
	movements   *inventory.MovementUseCase
}

// NewImportUseCase construye el caso de uso.
func NewImportUseCase(
	catalog ExternalCatalog,
	productRepo repository.ProductRepository,
	categories *CategoryUseCase,
	movements *inventory.MovementUseCase,
) *ImportUseCase {
	return &ImportUseCase{catalog: catalog, productRepo: productRepo, categories: categories, movements: movements}
}

// Categories lista las categorías disponibles en el feed externo.
func (uc *ImportUseCase) Categories(ctx context.Context) ([]string, error) {
	return uc.catalog.Categories(ctx)
}

// ProductsByCategory lista los items del feed para una categoría.
func (uc *ImportUseCase) ProductsByCategory(ctx context.Context, category string) ([]external.CatalogItem, error) {
	if category == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.catalog.ProductsByCategory(ctx, category)
}

// ImportProduct trae un item del feed y lo da de alta como producto local:
// get-or-create de la categoría por nombre, producto con SKU = id foráneo y
// stock inicial en la ubicación dada (vacía = SHELVES). Un item ya
// importado devuelve ErrDuplicate.
func (uc *ImportUseCase) ImportProduct(ctx context.Context, externalID, supplierID string, initialQuantity int64, location string) (*entity.Product, error) {
	if externalID == "" || initialQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if location == "" {
		location = entity.LocationShelves
	}
	if !entity.IsValidLocation(location) {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.productRepo.GetBySKU(externalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	item, err := uc.catalog.ByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	category, err := uc.categories.GetOrCreateByName(ctx, item.CategoryName)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       item.Name,
		SKU:        item.ExternalID,
		CategoryID: category.ID,
		SupplierID: supplierID,
		ImageURL:   item.ImageURL,
		Price:      item.UnitPrice,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}

	if err := uc.movements.SetInitialStock(ctx, product.ID, initialQuantity, location); err != nil {
		return nil, err
	}
	return product, nil
}
