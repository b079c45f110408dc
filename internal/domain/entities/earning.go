package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// EarningStatus represents merchant earning status
type EarningStatus string

const (
	EarningStatusPending EarningStatus = "pending"
	EarningStatusPaid    EarningStatus = "paid"
)

// MerchantEarning represents the commission split of one sold order
// item: amount is the gross line total, commission goes to the
// platform, net to the merchant.
type MerchantEarning struct {
	ID               uuid.UUID     `json:"id"`
	MerchantID       uuid.UUID     `json:"merchantId"`
	OrderID          uuid.UUID     `json:"orderId"`
	OrderItemID      uuid.UUID     `json:"orderItemId"`
	Amount           int64         `json:"amount"`
	CommissionRate   float64       `json:"commissionRate"`
	CommissionAmount int64         `json:"commissionAmount"`
	NetAmount        int64         `json:"netAmount"`
	Status           EarningStatus `json:"status"`
	PaidAt           null.Time     `json:"paidAt,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// SplitCommission splits a gross amount by the commission rate.
// The net is derived from the rounded commission so that
// commission + net always equals gross.
func SplitCommission(gross int64, rate float64) (commission, net int64) {
	commission = int64(math.Round(float64(gross) * rate))
	if commission < 0 {
		commission = 0
	}
	if commission > gross {
		commission = gross
	}
	return commission, gross - commission
}

// NewMerchantEarning builds a pending earning for an order item.
func NewMerchantEarning(item *OrderItem, rate float64, now time.Time) *MerchantEarning {
	commission, net := SplitCommission(item.LineTotal, rate)
	return &MerchantEarning{
		MerchantID:       item.MerchantID,
		OrderID:          item.OrderID,
		OrderItemID:      item.ID,
		Amount:           item.LineTotal,
		CommissionRate:   rate,
		CommissionAmount: commission,
		NetAmount:        net,
		Status:           EarningStatusPending,
		CreatedAt:        now,
	}
}

// EarningsSummary represents a merchant's balance overview
type EarningsSummary struct {
	PendingNet       int64 `json:"pendingNet"`
	OpenWithdrawals  int64 `json:"openWithdrawals"`
	AvailableBalance int64 `json:"availableBalance"`
}
