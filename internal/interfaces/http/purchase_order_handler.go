package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/application/orders"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// PurchaseOrderHandler maneja las órdenes de compra. Crear y recibir son del
// empleado; aceptar y despachar son del proveedor dueño de la orden (el
// supplier_id sale del token).
type PurchaseOrderHandler struct {
	uc *orders.PurchaseOrderUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *orders.PurchaseOrderUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc}
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	out := dto.PurchaseOrderResponse{
		ID:          po.ID,
		EmployeeID:  po.EmployeeID,
		SupplierID:  po.SupplierID,
		Status:      po.Status,
		DateCreated: po.DateCreated,
		Lines:       []dto.OrderLineResponse{},
	}
	for _, l := range po.Lines {
		out.Lines = append(out.Lines, dto.OrderLineResponse{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return out
}

// Create godoc
// @Summary      Crear orden de compra (empleado)
// @Description  No mueve inventario; eso ocurre solo al recibir.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "supplier_id, product_id, quantity"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	po, err := h.uc.Create(c.Context(), GetUserID(c), in.SupplierID, in.ProductID, in.Quantity)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseOrderResponse(po))
}

// GetByID godoc
// @Summary      Obtener orden de compra por id
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Purchase Order ID"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	po, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

// List godoc
// @Summary      Listar órdenes de compra (bodega)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, toPurchaseOrderResponse(po))
	}
	return c.JSON(out)
}

// Incoming godoc
// @Summary      Órdenes pendientes del proveedor autenticado
// @Description  Estados ORDERED o APPROVED.
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders/incoming [get]
func (h *PurchaseOrderHandler) Incoming(c *fiber.Ctx) error {
	list, err := h.uc.IncomingForSupplier(c.Context(), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, toPurchaseOrderResponse(po))
	}
	return c.JSON(out)
}

// Accept godoc
// @Summary      Aceptar orden de compra (proveedor, ORDERED → APPROVED)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Purchase Order ID"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/accept [post]
func (h *PurchaseOrderHandler) Accept(c *fiber.Ctx) error {
	po, err := h.uc.Accept(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

// Ship godoc
// @Summary      Despachar orden de compra (proveedor, ORDERED|APPROVED → SHIPPED)
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Purchase Order ID"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/ship [post]
func (h *PurchaseOrderHandler) Ship(c *fiber.Ctx) error {
	po, err := h.uc.Ship(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}

// Receive godoc
// @Summary      Recibir orden de compra (empleado, SHIPPED → RECEIVED)
// @Description  Cada línea entra por RECEIVING y se guarda en target_location en la misma transacción.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Purchase Order ID"
// @Param        body  body  dto.ReceivePurchaseOrderRequest  true  "target_location: SHELVES | FREEZER"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id}/receive [post]
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceivePurchaseOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	po, err := h.uc.Receive(c.Context(), c.Params("id"), GetUserID(c), in.TargetLocation)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(po))
}
