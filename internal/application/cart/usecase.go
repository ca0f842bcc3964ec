package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/domain"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
	"github.com/jhoicas/warehouse-api/internal/domain/repository"
)

// CartUseCase acumula líneas antes del checkout y las convierte en una
// orden de cliente de forma atómica. El carrito es 1:1 con el cliente
// (get-or-create); la fila del carrito sobrevive al checkout, los items no.
type CartUseCase struct {
	tx          TxRunner
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	movements   *inventory.MovementUseCase
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(
	tx TxRunner,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	movements *inventory.MovementUseCase,
) *CartUseCase {
	return &CartUseCase{tx: tx, cartRepo: cartRepo, productRepo: productRepo, movements: movements}
}

// GetOrCreateCart devuelve el carrito del cliente, creándolo vacío si no
// existe. El carrito nunca se recrea para el mismo cliente.
func (uc *CartUseCase) GetOrCreateCart(_ context.Context, customerID string) (*entity.ShoppingCart, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.cartRepo.GetByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	cart := &entity.ShoppingCart{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		CreatedAt:  time.Now(),
	}
	if err := uc.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return uc.cartRepo.GetByCustomer(customerID)
}

// AddToCart agrega un producto al carrito. Si el item ya existe, incrementa
// su cantidad (no la reemplaza).
func (uc *CartUseCase) AddToCart(ctx context.Context, customerID, productID string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	cart, err := uc.GetOrCreateCart(ctx, customerID)
	if err != nil {
		return err
	}
	item, err := uc.cartRepo.GetItem(cart.ID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return uc.cartRepo.InsertItem(&entity.CartItem{
			ID:        uuid.New().String(),
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		})
	}
	return uc.cartRepo.UpdateItemQuantity(cart.ID, productID, item.Quantity+quantity)
}

// UpdateItemQuantity reemplaza la cantidad de un item existente. Una
// cantidad <= 0 elimina el item ("quitar vía cero").
func (uc *CartUseCase) UpdateItemQuantity(ctx context.Context, customerID, productID string, quantity int64) error {
	cart, err := uc.GetOrCreateCart(ctx, customerID)
	if err != nil {
		return err
	}
	item, err := uc.cartRepo.GetItem(cart.ID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if quantity <= 0 {
		return uc.cartRepo.DeleteItem(cart.ID, productID)
	}
	return uc.cartRepo.UpdateItemQuantity(cart.ID, productID, quantity)
}

// RemoveFromCart elimina el item del producto; no-op si no existe.
func (uc *CartUseCase) RemoveFromCart(ctx context.Context, customerID, productID string) error {
	cart, err := uc.GetOrCreateCart(ctx, customerID)
	if err != nil {
		return err
	}
	item, err := uc.cartRepo.GetItem(cart.ID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}
	return uc.cartRepo.DeleteItem(cart.ID, productID)
}

// ClearCart elimina todos los items del carrito del cliente.
func (uc *CartUseCase) ClearCart(ctx context.Context, customerID string) error {
	cart, err := uc.GetOrCreateCart(ctx, customerID)
	if err != nil {
		return err
	}
	return uc.cartRepo.DeleteItems(cart.ID)
}

// Checkout convierte el carrito en una orden de cliente: reserva el stock
// de cada línea (SHELVES/FREEZER → SHIPPING), crea la orden en ORDERED con
// una línea por item y vacía el carrito, todo en una sola transacción.
// El carrito se bloquea y sus items se releen dentro de la transacción: dos
// checkouts concurrentes del mismo carrito se serializan y el segundo ve el
// carrito ya vacío. Carrito vacío → ErrInvalidState; stock insuficiente en
// cualquier línea aborta el checkout completo.
func (uc *CartUseCase) Checkout(ctx context.Context, customerID string) (*entity.CustomerOrder, error) {
	// Garantiza la fila del carrito fuera de la transacción (get-or-create)
	if _, err := uc.GetOrCreateCart(ctx, customerID); err != nil {
		return nil, err
	}

	var order *entity.CustomerOrder
	err := uc.tx.RunCart(ctx, func(
		stockRepo repository.StockBalanceRepository,
		cartRepo repository.CartRepository,
		orderRepo repository.CustomerOrderRepository,
	) error {
		cart, err := cartRepo.GetByCustomerForUpdate(customerID)
		if err != nil {
			return err
		}
		if cart == nil || len(cart.Items) == 0 {
			return fmt.Errorf("%w: el carrito está vacío", domain.ErrInvalidState)
		}

		order = &entity.CustomerOrder{
			ID:          uuid.New().String(),
			CustomerID:  customerID,
			Status:      entity.OrderStatusOrdered,
			DateCreated: time.Now().UTC(),
		}
		for _, item := range cart.Items {
			order.Lines = append(order.Lines, entity.OrderLine{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
			if err := uc.movements.MoveToShippingInTx(stockRepo, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		return cartRepo.DeleteItems(cart.ID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
