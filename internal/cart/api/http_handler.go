package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ridloal/clothing-storefront/internal/cart/domain"
	"github.com/ridloal/clothing-storefront/internal/cart/service"
	catalogRepo "github.com/ridloal/clothing-storefront/internal/catalog/repository"
	"github.com/ridloal/clothing-storefront/internal/platform/httpx"
	"github.com/ridloal/clothing-storefront/internal/platform/logger"
	"github.com/ridloal/clothing-storefront/internal/platform/session"
)

const (
	msgProductNotFound = "Producto no encontrado"
	msgLineNotFound    = "Producto no encontrado en el carrito"
)

type addItemRequest struct {
	ProductID *httpx.FlexInt `json:"productId" binding:"required"`
	Quantity  *httpx.FlexInt `json:"quantity"` // default 1
}

type updateItemRequest struct {
	ProductID *httpx.FlexInt `json:"productId" binding:"required"`
	Quantity  *httpx.FlexInt `json:"quantity" binding:"required"`
}

type removeItemRequest struct {
	ProductID *httpx.FlexInt `json:"productId" binding:"required"`
}

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cs service.CartService) *CartHandler {
	return &CartHandler{cartService: cs}
}

func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cartRoutes := router.Group("/cart")
	{
		cartRoutes.GET("", h.GetCart)
		cartRoutes.POST("/add", h.AddItem)
		cartRoutes.POST("/update", h.UpdateItem)
		cartRoutes.POST("/remove", h.RemoveItem)
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	lines, err := h.cartService.GetCart(c.Request.Context(), session.ID(c))
	if err != nil {
		logger.Error("GetCart Hdl: service error", err, nil)
		httpx.Error(c, http.StatusInternalServerError, "No se pudo obtener el carrito")
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = req.Quantity.Int()
	}

	lines, product, err := h.cartService.AddItem(c.Request.Context(), session.ID(c), req.ProductID.Int(), quantity)
	if err != nil {
		h.writeError(c, "AddItem", err, msgProductNotFound)
		return
	}
	c.JSON(http.StatusOK, domain.MutationResponse{
		Success: true,
		Message: fmt.Sprintf("%s añadido al carrito", product.Name),
		Cart:    lines,
	})
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}

	lines, err := h.cartService.UpdateQuantity(c.Request.Context(), session.ID(c), req.ProductID.Int(), req.Quantity.Int())
	if err != nil {
		h.writeError(c, "UpdateItem", err, msgLineNotFound)
		return
	}
	c.JSON(http.StatusOK, domain.MutationResponse{Success: true, Message: "Carrito actualizado", Cart: lines})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req removeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}

	lines, err := h.cartService.RemoveItem(c.Request.Context(), session.ID(c), req.ProductID.Int())
	if err != nil {
		h.writeError(c, "RemoveItem", err, msgLineNotFound)
		return
	}
	c.JSON(http.StatusOK, domain.MutationResponse{Success: true, Message: "Producto eliminado del carrito", Cart: lines})
}

func (h *CartHandler) writeError(c *gin.Context, op string, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, catalogRepo.ErrProductNotFound), errors.Is(err, service.ErrLineNotFound):
		httpx.Error(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, service.ErrInvalidQuantity):
		httpx.Error(c, http.StatusBadRequest, "La cantidad debe ser un número entero positivo")
	default:
		logger.Error(op+" Hdl: unhandled service error", err, nil)
		httpx.Error(c, http.StatusInternalServerError, "No se pudo actualizar el carrito")
	}
}
