package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/clothing-storefront/internal/catalog/domain"
)

func TestMemoryProductRepository(t *testing.T) {
	ctx := context.TODO()
	repo, err := NewMemoryProductRepository(DefaultProducts())
	require.NoError(t, err)

	t.Run("GetProductByID found", func(t *testing.T) {
		p, err := repo.GetProductByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Camiseta Básica", p.Name)
		assert.True(t, p.Price.Equal(decimal.RequireFromString("19.99")))
	})

	t.Run("GetProductByID not found", func(t *testing.T) {
		p, err := repo.GetProductByID(ctx, 42)
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Nil(t, p)
	})

	t.Run("ListProducts returns a copy", func(t *testing.T) {
		list, err := repo.ListProducts(ctx)
		require.NoError(t, err)
		list[0].Name = "mutated"

		p, err := repo.GetProductByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Camiseta Básica", p.Name)
	})
}

func TestNewMemoryProductRepository_Validation(t *testing.T) {
	t.Run("Duplicate id", func(t *testing.T) {
		_, err := NewMemoryProductRepository([]domain.Product{{ID: 1, Name: "a"}, {ID: 1, Name: "b"}})
		assert.ErrorContains(t, err, "duplicate product id 1")
	})

	t.Run("Negative price", func(t *testing.T) {
		_, err := NewMemoryProductRepository([]domain.Product{{ID: 1, Name: "a", Price: decimal.NewFromInt(-1)}})
		assert.Error(t, err)
	})

	t.Run("Non positive id", func(t *testing.T) {
		_, err := NewMemoryProductRepository([]domain.Product{{ID: 0, Name: "a"}})
		assert.Error(t, err)
	})

	t.Run("Sub-cent price", func(t *testing.T) {
		_, err := NewMemoryProductRepository([]domain.Product{{ID: 3, Name: "a", Price: decimal.RequireFromString("19.995")}})
		assert.ErrorContains(t, err, "product 3: price 19.995 has more than two decimals")
	})

	t.Run("Whole and two-decimal prices accepted", func(t *testing.T) {
		_, err := NewMemoryProductRepository([]domain.Product{
			{ID: 1, Name: "a", Price: decimal.NewFromInt(20)},
			{ID: 2, Name: "b", Price: decimal.RequireFromString("45.50")},
		})
		assert.NoError(t, err)
	})
}

func TestLoadProducts(t *testing.T) {
	t.Run("Empty path uses built-in catalog", func(t *testing.T) {
		products, err := LoadProducts("")
		require.NoError(t, err)
		assert.Len(t, products, 10)
	})

	t.Run("YAML file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		doc := `products:
  - id: 7
    name: Buzo Canguro
    price: 45.50
    image: ./imagenes_productos/buzo.jpg
    type: buzos
    gender: mujeres
`
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

		products, err := LoadProducts(path)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, 7, products[0].ID)
		assert.Equal(t, "buzos", products[0].Type)
		assert.True(t, products[0].Price.Equal(decimal.RequireFromString("45.5")))
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadProducts(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("Empty catalog rejected", func(t *testing.T) {
		_, err := ParseCatalog([]byte("products: []\n"))
		assert.Error(t, err)
	})
}
