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

// PaymentHandler handles the payment verification endpoints
type PaymentHandler struct {
	paymentUsecase *usecases.PaymentUsecase
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase *usecases.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// AddProof attaches a transfer receipt to the order's payment
// POST /api/v1/orders/:id/payment/proofs
func (h *PaymentHandler) AddProof(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input entities.AddProofInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.GetUserID(c)

	proof, err := h.paymentUsecase.AddProof(c.Request.Context(), userID, orderID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, proof)
}

// GetForOrder returns the payment of an order
// GET /api/v1/orders/:id/payment
func (h *PaymentHandler) GetForOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.GetUserID(c)

	payment, err := h.paymentUsecase.GetByOrderID(c.Request.Context(), userID, middleware.IsAdmin(c), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, payment)
}

// ListPending lists payments awaiting verification
// GET /api/v1/admin/payments/pending
func (h *PaymentHandler) ListPending(c *gin.Context) {
	p := paginationFromQuery(c)

	payments, total, err := h.paymentUsecase.ListPending(c.Request.Context(), p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, payments, utils.CalculateMeta(int64(total), p.Page, p.Limit))
}

// Approve verifies a pending payment and confirms its order
// POST /api/v1/admin/payments/:id/approve
func (h *PaymentHandler) Approve(c *gin.Context) {
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	adminID, _ := middleware.GetUserID(c)

	if err := h.paymentUsecase.Approve(c.Request.Context(), adminID, paymentID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Reject fails a pending payment and cancels its order
// POST /api/v1/admin/payments/:id/reject
func (h *PaymentHandler) Reject(c *gin.Context) {
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input entities.RejectPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminID, _ := middleware.GetUserID(c)

	if err := h.paymentUsecase.Reject(c.Request.Context(), adminID, paymentID, &input); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Refund reverses a verified payment before delivery
// POST /api/v1/admin/payments/:id/refund
func (h *PaymentHandler) Refund(c *gin.Context) {
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	adminID, _ := middleware.GetUserID(c)

	if err := h.paymentUsecase.Refund(c.Request.Context(), adminID, paymentID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
