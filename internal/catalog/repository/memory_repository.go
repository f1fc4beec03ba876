package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ridloal/clothing-storefront/internal/catalog/domain"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int) (*domain.Product, error)
}

// memoryProductRepository is read-only after construction, so it needs no lock.
type memoryProductRepository struct {
	products []domain.Product
	byID     map[int]int // id -> index di products
}

func NewMemoryProductRepository(products []domain.Product) (ProductRepository, error) {
	r := &memoryProductRepository{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for _, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("product %q: id must be positive, got %d", p.Name, p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("product %d: price must not be negative", p.ID)
		}
		// ledger columns are NUMERIC(12,2)
		if !p.Price.Equal(p.Price.Round(2)) {
			return nil, fmt.Errorf("product %d: price %s has more than two decimals", p.ID, p.Price)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		r.byID[p.ID] = len(r.products)
		r.products = append(r.products, p)
	}
	return r, nil
}

func (r *memoryProductRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *memoryProductRepository) GetProductByID(ctx context.Context, id int) (*domain.Product, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	p := r.products[idx]
	return &p, nil
}
