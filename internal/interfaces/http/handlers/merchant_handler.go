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

// MerchantHandler handles merchant endpoints
type MerchantHandler struct {
	merchantUsecase *usecases.MerchantUsecase
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(merchantUsecase *usecases.MerchantUsecase) *MerchantHandler {
	return &MerchantHandler{merchantUsecase: merchantUsecase}
}

// Apply handles merchant application
// POST /api/v1/merchants/apply
func (h *MerchantHandler) Apply(c *gin.Context) {
	var input entities.MerchantApplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.GetUserID(c)

	merchant, err := h.merchantUsecase.Apply(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, merchant)
}

// Status gets merchant application status for the current user
// GET /api/v1/merchants/status
func (h *MerchantHandler) Status(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	resp, err := h.merchantUsecase.Status(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// List lists merchants, optionally by status
// GET /api/v1/admin/merchants
func (h *MerchantHandler) List(c *gin.Context) {
	p := paginationFromQuery(c)
	status := entities.MerchantStatus(c.Query("status"))

	merchants, total, err := h.merchantUsecase.List(c.Request.Context(), status, p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, merchants, utils.CalculateMeta(int64(total), p.Page, p.Limit))
}

// Approve approves a pending merchant
// POST /api/v1/admin/merchants/:id/approve
func (h *MerchantHandler) Approve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.merchantUsecase.Approve(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Reject rejects a pending merchant application
// POST /api/v1/admin/merchants/:id/reject
func (h *MerchantHandler) Reject(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.merchantUsecase.Reject(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Suspend suspends an approved merchant
// POST /api/v1/admin/merchants/:id/suspend
func (h *MerchantHandler) Suspend(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.merchantUsecase.Suspend(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetCommissionRate sets or clears a per-merchant commission override
// PUT /api/v1/admin/merchants/:id/commission
func (h *MerchantHandler) SetCommissionRate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Rate *float64 `json:"rate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.merchantUsecase.SetCommissionRate(c.Request.Context(), id, input.Rate); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
