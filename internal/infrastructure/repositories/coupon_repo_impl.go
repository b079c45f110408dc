package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/infrastructure/models"
)

// CouponRepository implements coupon data operations
type CouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository creates a new coupon repository
func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// Create creates a new coupon. The code must already be normalized.
func (r *CouponRepository) Create(ctx context.Context, coupon *entities.Coupon) error {
	m := r.fromEntity(coupon)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	coupon.ID = m.ID
	return nil
}

// GetByID gets a coupon by ID
func (r *CouponRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Coupon, error) {
	var m models.Coupon
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByCode gets a coupon by its normalized code
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	var m models.Coupon
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("code = ?", entities.NormalizeCouponCode(code)).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List gets coupons with pagination
func (r *CouponRepository) List(ctx context.Context, limit, offset int) ([]*entities.Coupon, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Coupon{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Coupon
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var coupons []*entities.Coupon
	for i := range ms {
		coupons = append(coupons, r.toEntity(&ms[i]))
	}
	return coupons, int(total), nil
}

// Update updates a coupon's settings. The usage counter is only ever
// touched by Redeem.
func (r *CouponRepository) Update(ctx context.Context, coupon *entities.Coupon) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Coupon{}).
		Where("id = ?", coupon.ID).
		Updates(map[string]interface{}{
			"discount_type":    coupon.DiscountType,
			"discount_value":   coupon.DiscountValue,
			"min_order_amount": coupon.MinOrderAmount,
			"max_uses":         coupon.MaxUses,
			"is_active":        coupon.IsActive,
			"starts_at":        coupon.StartsAt.Ptr(),
			"expires_at":       coupon.ExpiresAt.Ptr(),
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a coupon
func (r *CouponRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Coupon{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Redeem increments used_count by one in a single conditional update.
// The cap check lives in the WHERE clause, not in the client, so
// concurrent checkouts near the cap cannot race past it.
func (r *CouponRepository) Redeem(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Coupon{}).
		Where("id = ? AND is_active = ? AND (max_uses IS NULL OR used_count < max_uses)", id, true).
		Updates(map[string]interface{}{
			"used_count": gorm.Expr("used_count + 1"),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCouponExhausted
	}
	return nil
}

// DeactivateExpired clears the active flag of coupons past their
// expiry window
func (r *CouponRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Coupon{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, now).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

func (r *CouponRepository) fromEntity(coupon *entities.Coupon) *models.Coupon {
	return &models.Coupon{
		ID:             coupon.ID,
		Code:           coupon.Code,
		DiscountType:   string(coupon.DiscountType),
		DiscountValue:  coupon.DiscountValue,
		MinOrderAmount: coupon.MinOrderAmount,
		MaxUses:        coupon.MaxUses,
		UsedCount:      coupon.UsedCount,
		IsActive:       coupon.IsActive,
		StartsAt:       coupon.StartsAt.Ptr(),
		ExpiresAt:      coupon.ExpiresAt.Ptr(),
		CreatedAt:      coupon.CreatedAt,
		UpdatedAt:      coupon.UpdatedAt,
	}
}

func (r *CouponRepository) toEntity(m *models.Coupon) *entities.Coupon {
	return &entities.Coupon{
		ID:             m.ID,
		Code:           m.Code,
		DiscountType:   entities.DiscountType(m.DiscountType),
		DiscountValue:  m.DiscountValue,
		MinOrderAmount: m.MinOrderAmount,
		MaxUses:        m.MaxUses,
		UsedCount:      m.UsedCount,
		IsActive:       m.IsActive,
		StartsAt:       null.TimeFromPtr(m.StartsAt),
		ExpiresAt:      null.TimeFromPtr(m.ExpiresAt),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
