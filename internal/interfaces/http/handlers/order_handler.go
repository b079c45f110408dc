package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"qfifat.backend/internal/domain/entities"
	"qfifat.backend/internal/interfaces/http/middleware"
	"qfifat.backend/internal/interfaces/http/response"
	"qfifat.backend/internal/usecases"
	"qfifat.backend/pkg/utils"
)

// OrderHandler handles checkout and order endpoints
type OrderHandler struct {
	checkoutUsecase *usecases.CheckoutUsecase
	orderUsecase    *usecases.OrderUsecase
	merchantUsecase *usecases.MerchantUsecase
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	checkoutUsecase *usecases.CheckoutUsecase,
	orderUsecase *usecases.OrderUsecase,
	merchantUsecase *usecases.MerchantUsecase,
) *OrderHandler {
	return &OrderHandler{
		checkoutUsecase: checkoutUsecase,
		orderUsecase:    orderUsecase,
		merchantUsecase: merchantUsecase,
	}
}

// Checkout places an order for the customer's cart
// POST /api/v1/orders/checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	var input entities.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.GetUserID(c)

	resp, err := h.checkoutUsecase.Checkout(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Get returns one order with its items and payment
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	order, err := h.orderUsecase.GetByID(c.Request.Context(), userID, middleware.IsAdmin(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, order)
}

// GetByNumber looks an order up by its human-readable number
// GET /api/v1/orders/number/:orderNumber
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	order, err := h.orderUsecase.GetByOrderNumber(c.Request.Context(), userID, middleware.IsAdmin(c), c.Param("orderNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, order)
}

// ListMine lists the customer's own orders
// GET /api/v1/orders
func (h *OrderHandler) ListMine(c *gin.Context) {
	p := paginationFromQuery(c)
	userID, _ := middleware.GetUserID(c)

	orders, total, err := h.orderUsecase.ListMine(c.Request.Context(), userID, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, orders, utils.CalculateMeta(int64(total), p.Page, p.Limit))
}

// Cancel cancels the customer's own order before shipment
// POST /api/v1/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	if err := h.orderUsecase.Cancel(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListAll lists orders for the back office, optionally by status
// GET /api/v1/admin/orders
func (h *OrderHandler) ListAll(c *gin.Context) {
	p := paginationFromQuery(c)
	status := entities.OrderStatus(c.Query("status"))

	orders, total, err := h.orderUsecase.List(c.Request.Context(), status, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, orders, utils.CalculateMeta(int64(total), p.Page, p.Limit))
}

// ListSales lists the order lines sold by the calling merchant
// GET /api/v1/merchants/sales
func (h *OrderHandler) ListSales(c *gin.Context) {
	p := paginationFromQuery(c)
	userID, _ := middleware.GetUserID(c)

	merchant, err := h.merchantUsecase.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, total, err := h.orderUsecase.ListMerchantSales(c.Request.Context(), merchant.ID, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, items, utils.CalculateMeta(int64(total), p.Page, p.Limit))
}
