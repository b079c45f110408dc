package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"qfifat.backend/internal/domain/entities"
)

// CouponRepository defines coupon data operations
type CouponRepository interface {
	Create(ctx context.Context, coupon *entities.Coupon) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Coupon, error)
	// GetByCode looks up by the uppercase-normalized code.
	GetByCode(ctx context.Context, code string) (*entities.Coupon, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Coupon, int, error)
	Update(ctx context.Context, coupon *entities.Coupon) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// Redeem increments used_count by one as a single conditional
	// update, failing with ErrCouponExhausted when the usage cap or the
	// active flag no longer allows another use. Safe under concurrent
	// checkouts.
	Redeem(ctx context.Context, id uuid.UUID) error
	// DeactivateExpired clears the active flag of coupons whose expiry
	// window has passed, returning the number of rows changed.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}
