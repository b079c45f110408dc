package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/domain/repositories"
)

// CouponUsecase handles coupon business logic
type CouponUsecase struct {
	couponRepo repositories.CouponRepository
}

// NewCouponUsecase creates a new coupon usecase
func NewCouponUsecase(couponRepo repositories.CouponRepository) *CouponUsecase {
	return &CouponUsecase{couponRepo: couponRepo}
}

// Create creates a coupon. Codes are stored uppercase so lookups are
// case-insensitive.
func (u *CouponUsecase) Create(ctx context.Context, input *entities.CreateCouponInput) (*entities.Coupon, error) {
	if input.DiscountType != entities.DiscountTypePercentage && input.DiscountType != entities.DiscountTypeFixed {
		return nil, domainerrors.ErrInvalidInput
	}
	if input.DiscountType == entities.DiscountTypePercentage && input.DiscountValue > 100 {
		return nil, domainerrors.ErrInvalidInput
	}
	if input.StartsAt != nil && input.ExpiresAt != nil && input.ExpiresAt.Before(*input.StartsAt) {
		return nil, domainerrors.ErrInvalidInput
	}

	code := entities.NormalizeCouponCode(input.Code)
	_, err := u.couponRepo.GetByCode(ctx, code)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	coupon := &entities.Coupon{
		Code:           code,
		DiscountType:   input.DiscountType,
		DiscountValue:  input.DiscountValue,
		MinOrderAmount: input.MinOrderAmount,
		MaxUses:        input.MaxUses,
		IsActive:       true,
		StartsAt:       null.TimeFromPtr(input.StartsAt),
		ExpiresAt:      null.TimeFromPtr(input.ExpiresAt),
	}

	if err := u.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Validate prices a coupon against a subtotal without consuming a use
func (u *CouponUsecase) Validate(ctx context.Context, input *entities.ValidateCouponInput) (*entities.CouponQuote, error) {
	coupon, err := u.couponRepo.GetByCode(ctx, input.Code)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrCouponInvalid
		}
		return nil, err
	}

	if err := coupon.Usable(input.Subtotal, time.Now()); err != nil {
		return nil, err
	}

	return &entities.CouponQuote{
		CouponID:       coupon.ID,
		Code:           coupon.Code,
		DiscountType:   coupon.DiscountType,
		DiscountAmount: coupon.DiscountFor(input.Subtotal),
	}, nil
}

// GetByID gets a coupon by ID
func (u *CouponUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Coupon, error) {
	return u.couponRepo.GetByID(ctx, id)
}

// List lists coupons with pagination
func (u *CouponUsecase) List(ctx context.Context, limit, offset int) ([]*entities.Coupon, int, error) {
	return u.couponRepo.List(ctx, limit, offset)
}

// Deactivate turns a coupon off without deleting its redemption history
func (u *CouponUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	coupon, err := u.couponRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	coupon.IsActive = false
	return u.couponRepo.Update(ctx, coupon)
}

// Delete soft deletes a coupon
func (u *CouponUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.couponRepo.SoftDelete(ctx, id)
}
