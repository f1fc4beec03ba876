package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ridloal/clothing-storefront/internal/cart/domain"
	"github.com/ridloal/clothing-storefront/internal/cart/repository"
	catalogDomain "github.com/ridloal/clothing-storefront/internal/catalog/domain"
	"github.com/ridloal/clothing-storefront/internal/platform/logger"
)

var (
	ErrLineNotFound    = errors.New("product not found in cart")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrEmptyCart       = errors.New("cart is empty")
)

// MaxLineQuantity caps a single cart line, on add and on update.
const MaxLineQuantity = 9999

// ProductLookup is the slice of the catalog the cart needs.
type ProductLookup interface {
	GetProduct(ctx context.Context, productID int) (*catalogDomain.Product, error)
}

// CheckoutFunc receives the lines being checked out. The cart is cleared
// only when it returns nil.
type CheckoutFunc func(lines []domain.CartLine) error

type CartService interface {
	AddItem(ctx context.Context, sessionID string, productID, quantity int) ([]domain.CartLine, *catalogDomain.Product, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int) ([]domain.CartLine, error)
	RemoveItem(ctx context.Context, sessionID string, productID int) ([]domain.CartLine, error)
	GetCart(ctx context.Context, sessionID string) ([]domain.CartLine, error)
	Clear(ctx context.Context, sessionID string) error
	Checkout(ctx context.Context, sessionID string, fn CheckoutFunc) error
	EvictIdle(ctx context.Context) int
	StartSweeper(spec string) error
	Stop()
}

type cartServiceImpl struct {
	repo       repository.CartRepository
	products   ProductLookup
	sessionTTL time.Duration
	scheduler  *cron.Cron
}

func NewCartService(repo repository.CartRepository, products ProductLookup, sessionTTL time.Duration) CartService {
	return &cartServiceImpl{
		repo:       repo,
		products:   products,
		sessionTTL: sessionTTL,
		scheduler:  cron.New(cron.WithSeconds()),
	}
}

func findLine(lines []domain.CartLine, productID int) int {
	for i := range lines {
		if lines[i].ID == productID {
			return i
		}
	}
	return -1
}

func (s *cartServiceImpl) AddItem(ctx context.Context, sessionID string, productID, quantity int) ([]domain.CartLine, *catalogDomain.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if quantity < 1 || quantity > MaxLineQuantity {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	lines, err := s.repo.Mutate(ctx, sessionID, func(lines []domain.CartLine) ([]domain.CartLine, error) {
		if i := findLine(lines, productID); i >= 0 {
			// both operands are within [1, MaxLineQuantity], so the sum cannot wrap
			if lines[i].Quantity+quantity > MaxLineQuantity {
				return nil, fmt.Errorf("%w: line would hold %d", ErrInvalidQuantity, lines[i].Quantity+quantity)
			}
			lines[i].Quantity += quantity
			return lines, nil
		}
		return append(lines, domain.CartLine{Product: *product, Quantity: quantity}), nil
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Cart: session %s added product %d x%d", sessionID, productID, quantity)
	return lines, product, nil
}

// UpdateQuantity sets an absolute quantity; zero or less removes the line.
func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int) ([]domain.CartLine, error) {
	return s.repo.Mutate(ctx, sessionID, func(lines []domain.CartLine) ([]domain.CartLine, error) {
		i := findLine(lines, productID)
		if i < 0 {
			return nil, ErrLineNotFound
		}
		if quantity <= 0 {
			return append(lines[:i], lines[i+1:]...), nil
		}
		if quantity > MaxLineQuantity {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
		}
		lines[i].Quantity = quantity
		return lines, nil
	})
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, sessionID string, productID int) ([]domain.CartLine, error) {
	return s.repo.Mutate(ctx, sessionID, func(lines []domain.CartLine) ([]domain.CartLine, error) {
		i := findLine(lines, productID)
		if i < 0 {
			return nil, ErrLineNotFound
		}
		return append(lines[:i], lines[i+1:]...), nil
	})
}

func (s *cartServiceImpl) GetCart(ctx context.Context, sessionID string) ([]domain.CartLine, error) {
	return s.repo.Snapshot(ctx, sessionID)
}

func (s *cartServiceImpl) Clear(ctx context.Context, sessionID string) error {
	_, err := s.repo.Mutate(ctx, sessionID, func([]domain.CartLine) ([]domain.CartLine, error) {
		return []domain.CartLine{}, nil
	})
	return err
}

func (s *cartServiceImpl) Checkout(ctx context.Context, sessionID string, fn CheckoutFunc) error {
	_, err := s.repo.Mutate(ctx, sessionID, func(lines []domain.CartLine) ([]domain.CartLine, error) {
		if len(lines) == 0 {
			return nil, ErrEmptyCart
		}
		if err := fn(lines); err != nil {
			return nil, err
		}
		return []domain.CartLine{}, nil
	})
	return err
}

func (s *cartServiceImpl) EvictIdle(ctx context.Context) int {
	return s.repo.EvictIdle(ctx, s.sessionTTL)
}

// StartSweeper schedules EvictIdle with a six-field cron spec.
func (s *cartServiceImpl) StartSweeper(spec string) error {
	_, err := s.scheduler.AddFunc(spec, func() {
		evicted := s.EvictIdle(context.Background())
		if evicted > 0 {
			logger.Info("Cart sweeper: evicted %d idle carts, %d remaining", evicted, s.repo.Sessions())
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cart sweep spec %q: %w", spec, err)
	}
	s.scheduler.Start()
	logger.Info("Cart sweeper scheduled with spec '%s' and session TTL %v", spec, s.sessionTTL)
	return nil
}

// Stop halts the sweeper and waits for a running sweep to finish.
func (s *cartServiceImpl) Stop() {
	<-s.scheduler.Stop().Done()
}
