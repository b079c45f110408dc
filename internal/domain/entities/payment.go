package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PaymentMethod represents how an order is paid
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
)

// GatewayLabel returns the user-facing gateway name for the method.
func (m PaymentMethod) GatewayLabel() string {
	switch m {
	case PaymentMethodBankTransfer:
		return "barid"
	case PaymentMethodCard:
		return "stripe"
	default:
		return string(m)
	}
}

// IsValid reports whether the method is supported.
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodBankTransfer || m == PaymentMethodCard
}

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusVerified PaymentStatus = "verified"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Payment represents the single payment attempt of an order
type Payment struct {
	ID              uuid.UUID     `json:"id"`
	OrderID         uuid.UUID     `json:"orderId"`
	Method          PaymentMethod `json:"method"`
	Amount          int64         `json:"amount"`
	Status          PaymentStatus `json:"status"`
	VerifiedBy      *uuid.UUID    `json:"verifiedBy,omitempty"`
	VerifiedAt      null.Time     `json:"verifiedAt,omitempty"`
	RejectionReason null.String   `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`

	// Joins
	Proofs []PaymentProof `json:"proofs,omitempty"`
}

// PaymentProof represents an uploaded transfer receipt attached to a
// bank_transfer payment
type PaymentProof struct {
	ID         uuid.UUID `json:"id"`
	PaymentID  uuid.UUID `json:"paymentId"`
	FileURL    string    `json:"fileUrl"`
	UploadedBy uuid.UUID `json:"uploadedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// AddProofInput represents input for attaching a payment proof
type AddProofInput struct {
	FileURL string `json:"fileUrl" binding:"required"`
}

// RejectPaymentInput represents input for rejecting a payment
type RejectPaymentInput struct {
	Reason string `json:"reason" binding:"required,min=3"`
}
