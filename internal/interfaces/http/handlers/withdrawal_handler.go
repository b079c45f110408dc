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

// WithdrawalHandler handles merchant earnings and payout endpoints
type WithdrawalHandler struct {
	withdrawalUsecase *usecases.WithdrawalUsecase
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawalUsecase *usecases.WithdrawalUsecase) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalUsecase: withdrawalUsecase}
}

// Summary returns the calling merchant's balance overview
// GET /api/v1/merchants/earnings/summary
func (h *WithdrawalHandler) Summary(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	summary, err := h.withdrawalUsecase.Summary(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// ListEarnings lists the calling merchant's earnings
// GET /api/v1/merchants/earnings
func (h *WithdrawalHandler) ListEarnings(c *gin.Context) {
	p := paginationFromQuery(c)
	userID, _ := middleware.GetUserID(c)

	earnings, total, err := h.withdrawalUsecase.ListEarnings(c.Request.Context(), userID, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, earnings, utils.CalculateMeta(int64(total), p.Page, p.Limit))
}

// Request opens a payout request
// POST /api/v1/merchants/withdrawals
func (h *WithdrawalHandler) Request(c *gin.Context) {
	var input entities.RequestWithdrawalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.GetUserID(c)

	request, err := h.withdrawalUsecase.Request(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, request)
}

// ListMine lists the calling merchant's withdrawal requests
// GET /api/v1/merchants/withdrawals
func (h *WithdrawalHandler) ListMine(c *gin.Context) {
	p := paginationFromQuery(c)
	userID, _ := middleware.GetUserID(c)

	requests, total, err := h.withdrawalUsecase.ListMine(c.Request.Context(), userID, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, requests, utils.CalculateMeta(int64(total), p.Page, p.Limit))
}

// List lists withdrawal requests for review, optionally by status
// GET /api/v1/admin/withdrawals
func (h *WithdrawalHandler) List(c *gin.Context) {
	p := paginationFromQuery(c)
	status := entities.WithdrawalStatus(c.Query("status"))

	requests, total, err := h.withdrawalUsecase.List(c.Request.Context(), status, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, requests, utils.CalculateMeta(int64(total), p.Page, p.Limit))
}

// Approve moves a pending request to approved
// POST /api/v1/admin/withdrawals/:id/approve
func (h *WithdrawalHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	adminID, _ := middleware.GetUserID(c)

	if err := h.withdrawalUsecase.Approve(c.Request.Context(), adminID, id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Reject closes a pending request with a note
// POST /api/v1/admin/withdrawals/:id/reject
func (h *WithdrawalHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input entities.RejectWithdrawalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminID, _ := middleware.GetUserID(c)

	if err := h.withdrawalUsecase.Reject(c.Request.Context(), adminID, id, &input); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Complete settles an approved request
// POST /api/v1/admin/withdrawals/:id/complete
func (h *WithdrawalHandler) Complete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	adminID, _ := middleware.GetUserID(c)

	if err := h.withdrawalUsecase.Complete(c.Request.Context(), adminID, id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
