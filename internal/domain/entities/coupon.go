package entities

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	domainerrors "qfifat.backend/internal/domain/errors"
)

// DiscountType represents how a coupon discounts an order
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// Coupon represents a discount coupon
type Coupon struct {
	ID             uuid.UUID    `json:"id"`
	Code           string       `json:"code"`
	DiscountType   DiscountType `json:"discountType"`
	DiscountValue  int64        `json:"discountValue"`
	MinOrderAmount int64        `json:"minOrderAmount"`
	MaxUses        *int         `json:"maxUses,omitempty"`
	UsedCount      int          `json:"usedCount"`
	IsActive       bool         `json:"isActive"`
	StartsAt       null.Time    `json:"startsAt,omitempty"`
	ExpiresAt      null.Time    `json:"expiresAt,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
	DeletedAt      *time.Time   `json:"-"`
}

// NormalizeCouponCode uppercases and trims a user-entered coupon code.
// Codes are stored uppercase and matched case-insensitively.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Usable reports whether the coupon can still be applied at the given
// time for the given order subtotal. The returned reason matches the
// rejection vocabulary: invalid code, expired, minimum order not met,
// exhausted.
func (c *Coupon) Usable(subtotal int64, now time.Time) error {
	if !c.IsActive {
		return domainerrors.ErrCouponInvalid
	}
	if c.StartsAt.Valid && now.Before(c.StartsAt.Time) {
		return domainerrors.ErrCouponInvalid
	}
	if c.ExpiresAt.Valid && now.After(c.ExpiresAt.Time) {
		return domainerrors.ErrCouponExpired
	}
	if subtotal < c.MinOrderAmount {
		return domainerrors.ErrCouponMinOrder
	}
	if c.MaxUses != nil && c.UsedCount >= *c.MaxUses {
		return domainerrors.ErrCouponExhausted
	}
	return nil
}

// DiscountFor computes the discount amount for the subtotal.
// percentage: round(subtotal * value / 100); fixed: min(value, subtotal).
// The result never exceeds the subtotal.
func (c *Coupon) DiscountFor(subtotal int64) int64 {
	var discount int64
	switch c.DiscountType {
	case DiscountTypePercentage:
		discount = int64(math.Round(float64(subtotal) * float64(c.DiscountValue) / 100))
	case DiscountTypeFixed:
		discount = c.DiscountValue
	default:
		return 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

// CreateCouponInput represents input for creating a coupon
type CreateCouponInput struct {
	Code           string       `json:"code" binding:"required,min=3,max=32"`
	DiscountType   DiscountType `json:"discountType" binding:"required"`
	DiscountValue  int64        `json:"discountValue" binding:"required,min=1"`
	MinOrderAmount int64        `json:"minOrderAmount"`
	MaxUses        *int         `json:"maxUses,omitempty"`
	StartsAt       *time.Time   `json:"startsAt,omitempty"`
	ExpiresAt      *time.Time   `json:"expiresAt,omitempty"`
}

// ValidateCouponInput represents input for pricing a coupon at checkout
type ValidateCouponInput struct {
	Code     string `json:"code" binding:"required"`
	Subtotal int64  `json:"subtotal" binding:"required,min=1"`
}

// CouponQuote represents the priced result of a valid coupon
type CouponQuote struct {
	CouponID       uuid.UUID    `json:"couponId"`
	Code           string       `json:"code"`
	DiscountType   DiscountType `json:"discountType"`
	DiscountAmount int64        `json:"discountAmount"`
}
