package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// WithdrawalStatus represents withdrawal request status
type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusApproved  WithdrawalStatus = "approved"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	WithdrawalStatusRejected  WithdrawalStatus = "rejected"
)

// WithdrawalRequest represents a merchant payout request drawing down
// the available balance of pending earnings
type WithdrawalRequest struct {
	ID            uuid.UUID        `json:"id"`
	MerchantID    uuid.UUID        `json:"merchantId"`
	Amount        int64            `json:"amount"`
	PayoutMethod  string           `json:"payoutMethod"`
	AccountNumber string           `json:"accountNumber"`
	AccountHolder string           `json:"accountHolder"`
	AccountKey    null.String      `json:"accountKey,omitempty"`
	Status        WithdrawalStatus `json:"status"`
	AdminNotes    null.String      `json:"adminNotes,omitempty"`
	ProcessedBy   *uuid.UUID       `json:"processedBy,omitempty"`
	ProcessedAt   null.Time        `json:"processedAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// RequestWithdrawalInput represents input for requesting a withdrawal
type RequestWithdrawalInput struct {
	Amount        int64  `json:"amount" binding:"required,min=1"`
	PayoutMethod  string `json:"payoutMethod" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	AccountHolder string `json:"accountHolder" binding:"required"`
	AccountKey    string `json:"accountKey,omitempty"`
}

// RejectWithdrawalInput represents input for rejecting a withdrawal
type RejectWithdrawalInput struct {
	Notes string `json:"notes" binding:"required,min=3"`
}
