package service

import (
	"context"

	"github.com/ridloal/clothing-storefront/internal/catalog/domain"
	"github.com/ridloal/clothing-storefront/internal/catalog/repository"
	"github.com/ridloal/clothing-storefront/internal/platform/logger"
)

type ProductService interface {
	ListProducts(ctx context.Context, filter domain.Filter) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID int) (*domain.Product, error)
}

type productServiceImpl struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productServiceImpl{repo: repo}
}

// ListProducts filters the catalog in one pass, keeping catalog order.
func (s *productServiceImpl) ListProducts(ctx context.Context, filter domain.Filter) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		logger.Error("ListProducts: repository error", err, nil)
		return nil, err
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if filter.Match(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, productID)
}

// Paginate returns page number `page` of products. Out of range pages are
// clamped to the first or last page; an empty listing still has one page.
func Paginate(products []domain.Product, page, pageSize int) domain.Page {
	if pageSize <= 0 {
		pageSize = len(products)
		if pageSize == 0 {
			pageSize = 1
		}
	}
	totalPages := (len(products) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(products) {
		start = len(products)
	}
	if end > len(products) {
		end = len(products)
	}

	items := make([]domain.Product, end-start)
	copy(items, products[start:end])
	return domain.Page{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Total:      len(products),
	}
}
