package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/warehouse-api/internal/application/auth"
	"github.com/jhoicas/warehouse-api/internal/application/cart"
	"github.com/jhoicas/warehouse-api/internal/application/catalog"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/orders"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *catalog.ProductUseCase
	CategoryUC *catalog.CategoryUseCase
	ImportUC   *catalog.ImportUseCase
	MovementUC *inventory.MovementUseCase
	CartUC     *cart.CartUseCase
	OrderUC    *orders.CustomerOrderUseCase
	PurchaseUC *orders.PurchaseOrderUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Roles por grupo de rutas
	staff := RequireRole(entity.RoleAdmin, entity.RoleEmployee)
	customerOnly := RequireRole(entity.RoleCustomer)
	supplierOnly := RequireRole(entity.RoleSupplier)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo: lectura para cualquier autenticado, escritura solo bodega
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", staff, productHandler.Create)
	products.Put("/:id", staff, productHandler.Update)
	products.Delete("/:id", staff, productHandler.Delete)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", staff, categoryHandler.Create)
	categories.Put("/:id", staff, categoryHandler.Update)
	categories.Delete("/:id", staff, categoryHandler.Delete)

	// Motor de inventario (solo bodega)
	invGroup := protected.Group("/inventory", staff)
	inventoryHandler := NewInventoryHandler(deps.MovementUC)
	invGroup.Post("/initial-stock", inventoryHandler.SetInitialStock)
	invGroup.Post("/receiving", inventoryHandler.AddToReceiving)
	invGroup.Post("/put-away", inventoryHandler.PutAway)
	invGroup.Post("/move-to-shipping", inventoryHandler.MoveToShipping)
	invGroup.Post("/return-to-storage", inventoryHandler.ReturnToStorage)
	invGroup.Post("/consume", inventoryHandler.Consume)
	invGroup.Get("/stock/:id", inventoryHandler.StockByProduct)

	// Importación desde el feed externo (solo bodega)
	importGroup := protected.Group("/import", staff)
	importHandler := NewImportHandler(deps.ImportUC)
	importGroup.Get("/categories", importHandler.Categories)
	importGroup.Get("/products", importHandler.Products)
	importGroup.Post("/products", importHandler.ImportProduct)

	// Carrito (solo clientes; el customer_id sale del token)
	cartGroup := protected.Group("/cart", customerOnly)
	cartHandler := NewCartHandler(deps.CartUC)
	cartGroup.Get("/", cartHandler.Get)
	cartGroup.Delete("/", cartHandler.Clear)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Put("/items/:productId", cartHandler.UpdateItem)
	cartGroup.Delete("/items/:productId", cartHandler.RemoveItem)
	cartGroup.Post("/checkout", cartHandler.Checkout)

	// Órdenes de cliente
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", customerOnly, orderHandler.Create)
	ordersGroup.Get("/mine", customerOnly, orderHandler.ListMine)
	ordersGroup.Get("/", staff, orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/:id/ship", staff, orderHandler.Ship)
	ordersGroup.Post("/:id/cancel", staff, orderHandler.Cancel)
	ordersGroup.Get("/:id/packing-slip", staff, orderHandler.PackingSlip)

	// Órdenes de compra
	poGroup := protected.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchaseUC)
	poGroup.Post("/", staff, poHandler.Create)
	poGroup.Get("/", staff, poHandler.List)
	poGroup.Get("/incoming", supplierOnly, poHandler.Incoming)
	poGroup.Get("/:id", poHandler.GetByID)
	poGroup.Post("/:id/accept", supplierOnly, poHandler.Accept)
	poGroup.Post("/:id/ship", supplierOnly, poHandler.Ship)
	poGroup.Post("/:id/receive", staff, poHandler.Receive)
}
