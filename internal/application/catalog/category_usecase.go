package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// CategoryUseCase gestión de categorías del catálogo.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// Create valida el nombre y persiste la categoría.
func (uc *CategoryUseCase) Create(_ context.Context, name, description, imageURL string) (*entity.Category, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetByID devuelve la categoría, o ErrNotFound.
func (uc *CategoryUseCase) GetByID(_ context.Context, id string) (*entity.Category, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

// List devuelve categorías paginadas.
func (uc *CategoryUseCase) List(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	return uc.categoryRepo.List(limit, offset)
}

// GetOrCreateByName busca la categoría por nombre exacto; si no existe la
// crea. Usado por la importación de catálogos externos.
func (uc *CategoryUseCase) GetOrCreateByName(ctx context.Context, name string) (*entity.Category, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categoryRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return uc.Create(ctx, name, "", "")
}

// Update actualiza una categoría existente.
func (uc *CategoryUseCase) Update(ctx context.Context, id, name, description, imageURL string) (*entity.Category, error) {
	category, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	category.Name = name
	category.Description = description
	category.ImageURL = imageURL
	category.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete elimina una categoría.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return err
	}
	return uc.categoryRepo.Delete(id)
}
