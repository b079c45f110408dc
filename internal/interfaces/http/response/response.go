package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "qfifat.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Paginated sends a list response with pagination metadata
func Paginated(c *gin.Context, items interface{}, meta interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"pagination": meta,
	})
}

// Error sends an error response, mapping domain errors to HTTP status
// codes
func Error(c *gin.Context, err error) {
	appErr := toAppError(err)
	c.JSON(appErr.Code, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

func toAppError(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound(err.Error())
	case errors.Is(err, domainerrors.ErrAlreadyExists),
		errors.Is(err, domainerrors.ErrConflict),
		errors.Is(err, domainerrors.ErrAlreadyProcessed),
		errors.Is(err, domainerrors.ErrOutOfStock):
		return domainerrors.Conflict(err.Error())
	case errors.Is(err, domainerrors.ErrUnauthorized),
		errors.Is(err, domainerrors.ErrInvalidCredentials),
		errors.Is(err, domainerrors.ErrTokenExpired):
		return domainerrors.Unauthorized(err.Error())
	case errors.Is(err, domainerrors.ErrForbidden),
		errors.Is(err, domainerrors.ErrMerchantNotApproved):
		return domainerrors.Forbidden(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidInput),
		errors.Is(err, domainerrors.ErrBadRequest),
		errors.Is(err, domainerrors.ErrEmptyCart),
		errors.Is(err, domainerrors.ErrProofRequired),
		errors.Is(err, domainerrors.ErrInvalidTransition),
		errors.Is(err, domainerrors.ErrCouponInvalid),
		errors.Is(err, domainerrors.ErrCouponExpired),
		errors.Is(err, domainerrors.ErrCouponMinOrder),
		errors.Is(err, domainerrors.ErrCouponExhausted),
		errors.Is(err, domainerrors.ErrBelowMinimumWithdrawal),
		errors.Is(err, domainerrors.ErrExceedsBalance):
		return domainerrors.BadRequest(err.Error())
	default:
		return domainerrors.InternalError(err)
	}
}
