package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"qfifat.backend/internal/domain/entities"
)

// PaymentRepository defines payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entities.Payment, error)
	ListByStatus(ctx context.Context, status entities.PaymentStatus, limit, offset int) ([]*entities.Payment, int, error)
	AddProof(ctx context.Context, proof *entities.PaymentProof) error
	CountProofs(ctx context.Context, paymentID uuid.UUID) (int64, error)
	// MarkVerified moves a pending payment to verified. Returns
	// ErrAlreadyProcessed when the payment is not pending anymore.
	MarkVerified(ctx context.Context, id uuid.UUID, verifier uuid.UUID, at time.Time) error
	// MarkFailed moves a pending payment to failed with the rejection
	// reason. Returns ErrAlreadyProcessed when not pending.
	MarkFailed(ctx context.Context, id uuid.UUID, verifier uuid.UUID, reason string, at time.Time) error
	// MarkRefunded moves a verified payment to refunded.
	MarkRefunded(ctx context.Context, id uuid.UUID, at time.Time) error
}
