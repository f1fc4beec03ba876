package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/ridloal/clothing-storefront/internal/cart/domain"
	orderDomain "github.com/ridloal/clothing-storefront/internal/order/domain"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderRepository interface {
	// CreateOrder appends order to the ledger and sets order.ID.
	CreateOrder(ctx context.Context, order *orderDomain.Order) error
	ListOrders(ctx context.Context) ([]orderDomain.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*orderDomain.Order, error)
}

// memoryOrderRepository ids come from a counter, never from len(orders).
type memoryOrderRepository struct {
	mu     sync.RWMutex
	orders []orderDomain.Order
	lastID int64
}

func NewMemoryOrderRepository() OrderRepository {
	return &memoryOrderRepository{}
}

func (r *memoryOrderRepository) CreateOrder(ctx context.Context, order *orderDomain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	order.ID = r.lastID
	r.orders = append(r.orders, cloneOrder(*order))
	return nil
}

func (r *memoryOrderRepository) ListOrders(ctx context.Context) ([]orderDomain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]orderDomain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

func (r *memoryOrderRepository) GetOrderByID(ctx context.Context, id int64) (*orderDomain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			found := cloneOrder(o)
			return &found, nil
		}
	}
	return nil, ErrOrderNotFound
}

func cloneOrder(o orderDomain.Order) orderDomain.Order {
	items := make([]domain.CartLine, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
