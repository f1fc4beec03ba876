package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/clothing-storefront/internal/catalog/domain"
	"github.com/ridloal/clothing-storefront/internal/catalog/repository"
	"github.com/ridloal/clothing-storefront/internal/catalog/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo, err := repository.NewMemoryProductRepository(repository.DefaultProducts())
	require.NoError(t, err)

	router := gin.New()
	NewProductHandler(service.NewProductService(repo), 6).RegisterRoutes(router.Group("/api"))
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestProductHandler_ListProducts(t *testing.T) {
	router := newTestRouter(t)

	t.Run("Filtered array", func(t *testing.T) {
		w := get(router, "/api/products?type=vestidos&price=30-60")
		require.Equal(t, http.StatusOK, w.Code)

		var products []domain.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
		require.Len(t, products, 2)
		assert.Equal(t, 4, products[0].ID)
		assert.Equal(t, 8, products[1].ID)
	})

	t.Run("Price is a JSON number", func(t *testing.T) {
		w := get(router, "/api/products?search=jeans")
		require.Equal(t, http.StatusOK, w.Code)

		var raw []map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		require.Len(t, raw, 1)
		assert.Equal(t, 49.99, raw[0]["price"])
	})

	t.Run("Paged envelope", func(t *testing.T) {
		w := get(router, "/api/products?page=3")
		require.Equal(t, http.StatusOK, w.Code)

		var page domain.Page
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Items, 4)
	})
}

func TestProductHandler_GetProduct(t *testing.T) {
	router := newTestRouter(t)

	t.Run("Found", func(t *testing.T) {
		w := get(router, "/api/products/3")
		require.Equal(t, http.StatusOK, w.Code)
		var p domain.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
		assert.Equal(t, "Chaqueta de Cuero", p.Name)
	})

	t.Run("Not found", func(t *testing.T) {
		w := get(router, "/api/products/99")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Producto no encontrado"}`, w.Body.String())
	})

	t.Run("Non numeric id", func(t *testing.T) {
		w := get(router, "/api/products/abc")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
