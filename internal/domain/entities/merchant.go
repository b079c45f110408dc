package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// MerchantStatus represents merchant verification status
type MerchantStatus string

const (
	MerchantStatusPending   MerchantStatus = "pending"
	MerchantStatusApproved  MerchantStatus = "approved"
	MerchantStatusSuspended MerchantStatus = "suspended"
	MerchantStatusRejected  MerchantStatus = "rejected"
)

// Merchant represents an artisan shop selling on the platform
type Merchant struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"userId"`
	ShopName  string         `json:"shopName"`
	Bio       null.String    `json:"bio,omitempty"`
	Wilaya    string         `json:"wilaya"`
	Phone     string         `json:"phone"`
	Status    MerchantStatus `json:"status"`
	// Per-merchant commission override as a fraction (0-1). When null
	// the configured platform rate applies.
	CommissionRate null.Float64 `json:"commissionRate,omitempty"`
	VerifiedAt     null.Time    `json:"verifiedAt,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
	DeletedAt      *time.Time   `json:"-"`
}

// EffectiveCommissionRate returns the merchant override when set,
// otherwise the given platform default.
func (m *Merchant) EffectiveCommissionRate(platformRate float64) float64 {
	if m.CommissionRate.Valid {
		return m.CommissionRate.Float64
	}
	return platformRate
}

// MerchantApplyInput represents input for a merchant application
type MerchantApplyInput struct {
	ShopName string `json:"shopName" binding:"required,min=2,max=200"`
	Bio      string `json:"bio,omitempty"`
	Wilaya   string `json:"wilaya" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
}

// MerchantStatusResponse represents merchant application status
type MerchantStatusResponse struct {
	MerchantID  uuid.UUID      `json:"merchantId"`
	Status      MerchantStatus `json:"status"`
	ShopName    string         `json:"shopName"`
	Message     string         `json:"message"`
	SubmittedAt time.Time      `json:"submittedAt"`
	ReviewedAt  null.Time      `json:"reviewedAt,omitempty"`
}
