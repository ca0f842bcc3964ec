package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
)

// InventoryHandler expone los movimientos del motor de inventario
// (protegido: admin y employee). Cada endpoint es una operación del motor;
// no hay escritura directa de saldos.
type InventoryHandler struct {
	uc *inventory.MovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.MovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// SetInitialStock godoc
// @Summary      Registrar stock inicial
// @Description  Única entrada que acepta cantidad cero. Suma sobre el saldo existente.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitialStockRequest  true  "product_id, quantity (>=0), location"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/initial-stock [post]
func (h *InventoryHandler) SetInitialStock(c *fiber.Ctx) error {
	var in dto.InitialStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetInitialStock(c.Context(), in.ProductID, in.Quantity, in.Location); err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "stock inicial registrado"})
}

// AddToReceiving godoc
// @Summary      Entrada a RECEIVING
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "product_id, quantity (>0)"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/receiving [post]
func (h *InventoryHandler) AddToReceiving(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.AddToReceiving(c.Context(), in.ProductID, in.Quantity); err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "entrada registrada"})
}

// PutAway godoc
// @Summary      Guardar de RECEIVING a almacenamiento
// @Description  target: SHELVES o FREEZER.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "product_id, quantity, target"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/put-away [post]
func (h *InventoryHandler) PutAway(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.PutAway(c.Context(), in.ProductID, in.Quantity, in.Target); err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "mercancía guardada"})
}

// MoveToShipping godoc
// @Summary      Reservar stock en SHIPPING
// @Description  Toma primero de SHELVES y el resto de FREEZER.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "product_id, quantity"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/move-to-shipping [post]
func (h *InventoryHandler) MoveToShipping(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.MoveToShipping(c.Context(), in.ProductID, in.Quantity); err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "stock reservado"})
}

// ReturnToStorage godoc
// @Summary      Devolver de SHIPPING a SHELVES
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "product_id, quantity"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/return-to-storage [post]
func (h *InventoryHandler) ReturnToStorage(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.MoveFromShippingToStorage(c.Context(), in.ProductID, in.Quantity); err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "stock devuelto a estantería"})
}

// Consume godoc
// @Summary      Consumir de SHIPPING (salida del sistema)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "product_id, quantity"
// @Success      201   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/consume [post]
func (h *InventoryHandler) Consume(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.ConsumeFromShipping(c.Context(), in.ProductID, in.Quantity); err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "mercancía despachada"})
}

// StockByProduct godoc
// @Summary      Saldos de un producto por ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Product ID"
// @Success      200  {array}   dto.StockBalanceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock/{id} [get]
func (h *InventoryHandler) StockByProduct(c *fiber.Ctx) error {
	balances, err := h.uc.StockByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.StockBalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, dto.StockBalanceResponse{
			ProductID: b.ProductID,
			Location:  b.Location,
			Quantity:  b.Quantity,
			UpdatedAt: b.UpdatedAt,
		})
	}
	return c.JSON(out)
}
