package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/cart"
	"github.com/jhoicas/warehouse-api/internal/application/dto"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// CartHandler maneja el carrito del cliente autenticado (rol customer).
// El customer_id sale siempre del token, nunca del cuerpo.
type CartHandler struct {
	uc *cart.CartUseCase
}

// NewCartHandler construye el handler.
func NewCartHandler(uc *cart.CartUseCase) *CartHandler {
	return &CartHandler{uc: uc}
}

func toCartResponse(c *entity.ShoppingCart) dto.CartResponse {
	out := dto.CartResponse{ID: c.ID, CustomerID: c.CustomerID, Items: []dto.CartItemResponse{}}
	for _, it := range c.Items {
		out.Items = append(out.Items, dto.CartItemResponse{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return out
}

// Get godoc
// @Summary      Obtener (o crear) el carrito del cliente
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	shoppingCart, err := h.uc.GetOrCreateCart(c.Context(), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toCartResponse(shoppingCart))
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Description  Si el producto ya está en el carrito, incrementa la cantidad.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "product_id, quantity (>0)"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customerID := GetUserID(c)
	if err := h.uc.AddToCart(c.Context(), customerID, in.ProductID, in.Quantity); err != nil {
		return domainError(c, err)
	}
	shoppingCart, err := h.uc.GetOrCreateCart(c.Context(), customerID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toCartResponse(shoppingCart))
}

// UpdateItem godoc
// @Summary      Cambiar la cantidad de un item
// @Description  La cantidad reemplaza a la anterior; <= 0 elimina el item.
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string  true  "Product ID"
// @Param        body       body  dto.UpdateCartItemRequest  true  "quantity"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cart/items/{productId} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customerID := GetUserID(c)
	if err := h.uc.UpdateItemQuantity(c.Context(), customerID, c.Params("productId"), in.Quantity); err != nil {
		return domainError(c, err)
	}
	shoppingCart, err := h.uc.GetOrCreateCart(c.Context(), customerID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toCartResponse(shoppingCart))
}

// RemoveItem godoc
// @Summary      Quitar un producto del carrito
// @Tags         cart
// @Security     Bearer
// @Param        productId  path  string  true  "Product ID"
// @Success      204
// @Router       /api/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	if err := h.uc.RemoveFromCart(c.Context(), GetUserID(c), c.Params("productId")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Clear godoc
// @Summary      Vaciar el carrito
// @Tags         cart
// @Security     Bearer
// @Success      204
// @Router       /api/cart [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.ClearCart(c.Context(), GetUserID(c)); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Checkout godoc
// @Summary      Checkout del carrito
// @Description  Reserva el stock de cada item, crea la orden y vacía el carrito en una sola transacción.
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cart/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	order, err := h.uc.Checkout(c.Context(), GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}
