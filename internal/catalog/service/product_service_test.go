package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/clothing-storefront/internal/catalog/domain"
	pRepo "github.com/ridloal/clothing-storefront/internal/catalog/repository"
	"github.com/ridloal/clothing-storefront/internal/catalog/repository/mocks"
)

func ids(products []domain.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.TODO()
	catalog := pRepo.DefaultProducts()

	tests := []struct {
		name   string
		filter domain.Filter
		want   []int
	}{
		{"no filter returns full catalog in order", domain.Filter{}, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"type", domain.NewFilter("remeras", "", "", ""), []int{1, 6, 7, 10}},
		{"gender", domain.NewFilter("", "mujeres", "", ""), []int{4, 6, 8, 10}},
		{"all disables tags", domain.NewFilter("all", "all", "all", ""), []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"price up to 30", domain.NewFilter("", "", "0-30", ""), []int{1, 6, 7, 10}},
		{"price 30 to 60", domain.NewFilter("", "", "30-60", ""), []int{2, 4, 5, 8, 9}},
		{"price over 60", domain.NewFilter("", "", "60+", ""), []int{3}},
		{"unknown price bucket ignored", domain.NewFilter("", "", "cheap", ""), []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"search is case insensitive", domain.NewFilter("", "", "", "REMERA"), []int{6, 7, 10}},
		{"combined filters", domain.NewFilter("remeras", "mujeres", "0-30", "rosa"), []int{10}},
		{"no match", domain.NewFilter("calzado", "mujeres", "", ""), []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockProductRepository)
			mockRepo.On("ListProducts", ctx).Return(catalog, nil).Once()
			svc := NewProductService(mockRepo)

			got, err := svc.ListProducts(ctx, tt.filter)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("ListProducts() ids mismatch (-want +got):\n%s", diff)
			}
			for _, p := range got {
				assert.True(t, tt.filter.Match(p), "product %d does not satisfy filter", p.ID)
			}
			mockRepo.AssertExpectations(t)
		})
	}

	t.Run("Repository error", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		mockRepo.On("ListProducts", ctx).Return(nil, errors.New("boom")).Once()
		svc := NewProductService(mockRepo)

		got, err := svc.ListProducts(ctx, domain.Filter{})
		assert.Error(t, err)
		assert.Nil(t, got)
		mockRepo.AssertExpectations(t)
	})
}

func TestProductService_GetProduct(t *testing.T) {
	ctx := context.TODO()

	t.Run("Found", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		want := &domain.Product{ID: 1, Name: "Camiseta Básica", Price: decimal.RequireFromString("19.99")}
		mockRepo.On("GetProductByID", ctx, 1).Return(want, nil).Once()

		got, err := NewProductService(mockRepo).GetProduct(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Product not found", func(t *testing.T) {
		mockRepo := new(mocks.MockProductRepository)
		mockRepo.On("GetProductByID", ctx, 99).Return(nil, pRepo.ErrProductNotFound).Once()

		got, err := NewProductService(mockRepo).GetProduct(ctx, 99)
		assert.ErrorIs(t, err, pRepo.ErrProductNotFound)
		assert.Nil(t, got)
		mockRepo.AssertExpectations(t)
	})
}

func TestPaginate(t *testing.T) {
	products := pRepo.DefaultProducts() // 10 products

	t.Run("First page", func(t *testing.T) {
		page := Paginate(products, 1, 6)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, ids(page.Items))
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, 10, page.Total)
	})

	t.Run("Last page is partial", func(t *testing.T) {
		page := Paginate(products, 2, 6)
		assert.Equal(t, []int{7, 8, 9, 10}, ids(page.Items))
		assert.Equal(t, 2, page.Page)
	})

	t.Run("Past the end clamps to last page", func(t *testing.T) {
		page := Paginate(products, 3, 6)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, []int{7, 8, 9, 10}, ids(page.Items))
	})

	t.Run("Below one clamps to first page", func(t *testing.T) {
		page := Paginate(products, -4, 6)
		assert.Equal(t, 1, page.Page)
		assert.Len(t, page.Items, 6)
	})

	t.Run("Empty listing has one empty page", func(t *testing.T) {
		page := Paginate(nil, 5, 6)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 1, page.TotalPages)
		assert.Empty(t, page.Items)
		assert.NotNil(t, page.Items)
	})
}
