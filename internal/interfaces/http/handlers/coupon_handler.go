package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"qfifat.backend/internal/domain/entities"
	"qfifat.backend/internal/interfaces/http/response"
	"qfifat.backend/internal/usecases"
	"qfifat.backend/pkg/utils"
)

// CouponHandler handles coupon endpoints
type CouponHandler struct {
	couponUsecase *usecases.CouponUsecase
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(couponUsecase *usecases.CouponUsecase) *CouponHandler {
	return &CouponHandler{couponUsecase: couponUsecase}
}

// Validate prices a coupon against a subtotal without consuming a use
// POST /api/v1/coupons/validate
func (h *CouponHandler) Validate(c *gin.Context) {
	var input entities.ValidateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.couponUsecase.Validate(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, quote)
}

// Create creates a coupon
// POST /api/v1/admin/coupons
func (h *CouponHandler) Create(c *gin.Context) {
	var input entities.CreateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupon, err := h.couponUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, coupon)
}

// List lists coupons
// GET /api/v1/admin/coupons
func (h *CouponHandler) List(c *gin.Context) {
	p := paginationFromQuery(c)

	coupons, total, err := h.couponUsecase.List(c.Request.Context(), p.Limit, p.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, coupons, utils.CalculateMeta(int64(total), p.Page, p.Limit))
}

// Get returns one coupon
// GET /api/v1/admin/coupons/:id
func (h *CouponHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	coupon, err := h.couponUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, coupon)
}

// Deactivate turns a coupon off
// POST /api/v1/admin/coupons/:id/deactivate
func (h *CouponHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.couponUsecase.Deactivate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete soft deletes a coupon
// DELETE /api/v1/admin/coupons/:id
func (h *CouponHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.couponUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
