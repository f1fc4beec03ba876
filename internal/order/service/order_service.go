package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	cartDomain "github.com/ridloal/clothing-storefront/internal/cart/domain"
	cartService "github.com/ridloal/clothing-storefront/internal/cart/service"
	"github.com/ridloal/clothing-storefront/internal/order/domain"
	"github.com/ridloal/clothing-storefront/internal/order/repository"
	"github.com/ridloal/clothing-storefront/internal/platform/logger"
)

var (
	ErrInvalidCustomer     = errors.New("customer name, email and address are required")
	ErrEmptyCart           = cartService.ErrEmptyCart
	ErrOrderCreationFailed = errors.New("order creation failed")
)

// CartCheckout is the part of the cart engine the ledger drives.
type CartCheckout interface {
	Checkout(ctx context.Context, sessionID string, fn cartService.CheckoutFunc) error
}

type OrderService interface {
	SubmitOrder(ctx context.Context, sessionID string, customer domain.Customer) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
	carts     CartCheckout
	now       func() time.Time
}

func NewOrderService(or repository.OrderRepository, carts CartCheckout) OrderService {
	return &orderServiceImpl{orderRepo: or, carts: carts, now: time.Now}
}

func normalizeCustomer(c domain.Customer) (domain.Customer, error) {
	c.Nombre = strings.TrimSpace(c.Nombre)
	c.Email = strings.TrimSpace(c.Email)
	c.Direccion = strings.TrimSpace(c.Direccion)
	c.Pago = strings.TrimSpace(c.Pago)
	if c.Nombre == "" || c.Email == "" || c.Direccion == "" {
		return c, ErrInvalidCustomer
	}
	return c, nil
}

// SubmitOrder snapshots the session cart into a new ledger entry and then
// clears the cart. Both happen under the session's cart lock, so a
// concurrent add either lands in this order or in the emptied cart.
func (s *orderServiceImpl) SubmitOrder(ctx context.Context, sessionID string, customer domain.Customer) (*domain.Order, error) {
	customer, err := normalizeCustomer(customer)
	if err != nil {
		return nil, err
	}

	var created *domain.Order
	err = s.carts.Checkout(ctx, sessionID, func(lines []cartDomain.CartLine) error {
		order := &domain.Order{
			Nombre:    customer.Nombre,
			Email:     customer.Email,
			Direccion: customer.Direccion,
			Pago:      customer.Pago,
			Items:     lines,
			Total:     cartDomain.Total(lines),
			Date:      s.now().UTC(),
		}
		if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
			logger.Error("SubmitOrder: failed to save order to repository", err, nil)
			return fmt.Errorf("%w: %v", ErrOrderCreationFailed, err)
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order %d created: %d lines, total %s", created.ID, len(created.Items), created.Total.StringFixed(2))
	return created, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orderRepo.ListOrders(ctx)
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.orderRepo.GetOrderByID(ctx, orderID)
}
