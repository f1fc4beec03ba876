package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/clothing-storefront/internal/catalog/domain"
	"github.com/ridloal/clothing-storefront/internal/catalog/repository"
	"github.com/ridloal/clothing-storefront/internal/catalog/service"
	"github.com/ridloal/clothing-storefront/internal/platform/httpx"
	"github.com/ridloal/clothing-storefront/internal/platform/logger"
)

type ProductHandler struct {
	productService  service.ProductService
	defaultPageSize int
}

func NewProductHandler(ps service.ProductService, defaultPageSize int) *ProductHandler {
	return &ProductHandler{productService: ps, defaultPageSize: defaultPageSize}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	productRoutes := router.Group("/products")
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.GET("/:id", h.GetProduct)
	}
}

// ListProducts returns a plain array, or a page envelope when ?page is set.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := domain.NewFilter(c.Query("type"), c.Query("gender"), c.Query("price"), c.Query("search"))
	products, err := h.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		logger.Error("ListProducts: service error", err)
		httpx.Error(c, http.StatusInternalServerError, "No se pudieron obtener los productos")
		return
	}

	pageParam, paged := c.GetQuery("page")
	if !paged {
		c.JSON(http.StatusOK, products)
		return
	}
	page, err := strconv.Atoi(pageParam)
	if err != nil {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.Query("pageSize"))
	if err != nil || pageSize <= 0 {
		pageSize = h.defaultPageSize
	}
	c.JSON(http.StatusOK, service.Paginate(products, page, pageSize))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httpx.Error(c, http.StatusNotFound, "Producto no encontrado")
		return
	}
	product, err := h.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			httpx.Error(c, http.StatusNotFound, "Producto no encontrado")
			return
		}
		logger.Error("GetProduct: service error", err)
		httpx.Error(c, http.StatusInternalServerError, "No se pudo obtener el producto")
		return
	}
	c.JSON(http.StatusOK, product)
}
