package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/usecases"
)

func couponRouter(repo *couponRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCouponHandler(usecases.NewCouponUsecase(repo))

	r := gin.New()
	r.POST("/coupons/validate", h.Validate)
	r.POST("/admin/coupons", h.Create)
	r.GET("/admin/coupons/:id", h.Get)
	r.POST("/admin/coupons/:id/deactivate", h.Deactivate)
	return r
}

func TestCouponHandler_Validate(t *testing.T) {
	coupon := &entities.Coupon{
		ID:            uuid.New(),
		Code:          "SAVE20",
		DiscountType:  entities.DiscountTypePercentage,
		DiscountValue: 20,
		IsActive:      true,
	}
	r := couponRouter(&couponRepoStub{
		getByCodeFn: func(_ context.Context, code string) (*entities.Coupon, error) {
			if code == "SAVE20" {
				return coupon, nil
			}
			return nil, domainerrors.ErrNotFound
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/coupons/validate",
		strings.NewReader(`{"code":"SAVE20","subtotal":5000}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"discountAmount":1000`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/coupons/validate",
		strings.NewReader(`{"code":"NOPE","subtotal":5000}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Binding failure: subtotal is required.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/coupons/validate", strings.NewReader(`{"code":"SAVE20"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCouponHandler_Create(t *testing.T) {
	r := couponRouter(&couponRepoStub{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/coupons",
		strings.NewReader(`{"code":"EID2026","discountType":"fixed","discountValue":500}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"code":"EID2026"`)
}

func TestCouponHandler_CreateDuplicate(t *testing.T) {
	existing := &entities.Coupon{ID: uuid.New(), Code: "EID2026"}
	r := couponRouter(&couponRepoStub{
		getByCodeFn: func(context.Context, string) (*entities.Coupon, error) { return existing, nil },
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/coupons",
		strings.NewReader(`{"code":"EID2026","discountType":"fixed","discountValue":500}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestCouponHandler_GetRejectsMalformedID(t *testing.T) {
	r := couponRouter(&couponRepoStub{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/coupons/not-a-uuid", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCouponHandler_Deactivate(t *testing.T) {
	coupon := &entities.Coupon{ID: uuid.New(), Code: "SAVE20", IsActive: true}
	var updated *entities.Coupon
	r := couponRouter(&couponRepoStub{
		getByIDFn: func(context.Context, uuid.UUID) (*entities.Coupon, error) { return coupon, nil },
		updateFn: func(_ context.Context, c *entities.Coupon) error {
			updated = c
			return nil
		},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/coupons/"+coupon.ID.String()+"/deactivate", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	require.False(t, updated.IsActive)
}
