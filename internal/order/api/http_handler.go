package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartDomain "github.com/ridloal/clothing-storefront/internal/cart/domain"
	"github.com/ridloal/clothing-storefront/internal/order/domain"
	"github.com/ridloal/clothing-storefront/internal/order/repository"
	"github.com/ridloal/clothing-storefront/internal/order/service"
	"github.com/ridloal/clothing-storefront/internal/platform/httpx"
	"github.com/ridloal/clothing-storefront/internal/platform/logger"
	"github.com/ridloal/clothing-storefront/internal/platform/session"
)

const msgCustomerRequired = "Datos de usuario requeridos"

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(os service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orderRoutes := router.Group("/orders")
	{
		orderRoutes.POST("", h.SubmitOrder)
		orderRoutes.GET("", h.ListOrders)
		orderRoutes.GET("/:id", h.GetOrder)
	}
}

func (h *OrderHandler) SubmitOrder(c *gin.Context) {
	var req domain.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("SubmitOrder Hdl: bad request: %v", err)
		httpx.Error(c, http.StatusBadRequest, msgCustomerRequired)
		return
	}

	order, err := h.orderService.SubmitOrder(c.Request.Context(), session.ID(c), req.Customer())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCustomer):
			httpx.Error(c, http.StatusBadRequest, msgCustomerRequired)
		case errors.Is(err, service.ErrEmptyCart):
			httpx.Error(c, http.StatusBadRequest, "El carrito está vacío")
		default:
			logger.Error("SubmitOrder Hdl: unhandled service error", err, nil)
			httpx.Error(c, http.StatusInternalServerError, "No se pudo procesar el pedido")
		}
		return
	}

	c.JSON(http.StatusOK, domain.SubmitOrderResponse{
		Success: true,
		OrderID: order.ID,
		Message: "Pedido procesado exitosamente",
		Cart:    []cartDomain.CartLine{},
	})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		logger.Error("ListOrders Hdl: service error", err, nil)
		httpx.Error(c, http.StatusInternalServerError, "No se pudieron obtener los pedidos")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		httpx.Error(c, http.StatusNotFound, "Pedido no encontrado")
		return
	}
	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			httpx.Error(c, http.StatusNotFound, "Pedido no encontrado")
			return
		}
		logger.Error("GetOrder Hdl: service error", err, nil)
		httpx.Error(c, http.StatusInternalServerError, "No se pudo obtener el pedido")
		return
	}
	c.JSON(http.StatusOK, order)
}
