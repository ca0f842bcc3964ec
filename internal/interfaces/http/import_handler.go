package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/catalog"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain/external"
)

// ImportHandler expone el catálogo externo y la importación de productos
// (protegido: admin y employee).
type ImportHandler struct {
	uc *catalog.ImportUseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *catalog.ImportUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

func toExternalItemResponse(it external.CatalogItem) dto.ExternalItemResponse {
	return dto.ExternalItemResponse{
		ExternalID:   it.ExternalID,
		Name:         it.Name,
		CategoryName: it.CategoryName,
		UnitPrice:    it.UnitPrice,
		ImageURL:     it.ImageURL,
	}
}

// Categories godoc
// @Summary      Categorías del feed externo
// @Tags         import
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/import/categories [get]
func (h *ImportHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.uc.Categories(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(categories)
}

// Products godoc
// @Summary      Productos del feed por categoría
// @Tags         import
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  true  "Nombre de la categoría"
// @Success      200  {array}   dto.ExternalItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/import/products [get]
func (h *ImportHandler) Products(c *fiber.Ctx) error {
	items, err := h.uc.ProductsByCategory(c.Context(), c.Query("category"))
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.ExternalItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toExternalItemResponse(it))
	}
	return c.JSON(out)
}

// ImportProduct godoc
// @Summary      Importar un producto del feed
// @Description  Crea categoría y producto locales y registra el stock inicial. Un item ya importado devuelve 409.
// @Tags         import
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportProductRequest  true  "external_id, initial_quantity, location (vacío = SHELVES)"
// @Success      201   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/import/products [post]
func (h *ImportHandler) ImportProduct(c *fiber.Ctx) error {
	var in dto.ImportProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	product, err := h.uc.ImportProduct(c.Context(), in.ExternalID, in.SupplierID, in.InitialQuantity, in.Location)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(product))
}
