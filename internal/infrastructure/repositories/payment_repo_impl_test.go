package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
)

func newPendingPayment(orderID uuid.UUID) *entities.Payment {
	return &entities.Payment{
		ID:        uuid.New(),
		OrderID:   orderID,
		Method:    entities.PaymentMethodBankTransfer,
		Amount:    5600,
		Status:    entities.PaymentStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestPaymentRepository_CreateGetAndProofs(t *testing.T) {
	db := newTestDB(t)
	createPaymentTables(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	orderID := uuid.New()
	p := newPendingPayment(orderID)
	require.NoError(t, repo.Create(ctx, p))

	byOrder, err := repo.GetByOrderID(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, p.ID, byOrder.ID)
	require.Equal(t, entities.PaymentMethodBankTransfer, byOrder.Method)

	count, err := repo.CountProofs(ctx, p.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	proof := &entities.PaymentProof{
		ID:         uuid.New(),
		PaymentID:  p.ID,
		FileURL:    "https://cdn.example.dz/receipt.jpg",
		UploadedBy: uuid.New(),
		CreatedAt:  time.Now(),
	}
	require.NoError(t, repo.AddProof(ctx, proof))

	count, err = repo.CountProofs(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	byID, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, byID.Proofs, 1)
	require.Equal(t, proof.FileURL, byID.Proofs[0].FileURL)
}

func TestPaymentRepository_ListByStatus(t *testing.T) {
	db := newTestDB(t)
	createPaymentTables(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	pending := newPendingPayment(uuid.New())
	require.NoError(t, repo.Create(ctx, pending))

	verified := newPendingPayment(uuid.New())
	verified.Status = entities.PaymentStatusVerified
	require.NoError(t, repo.Create(ctx, verified))

	items, total, err := repo.ListByStatus(ctx, entities.PaymentStatusPending, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, pending.ID, items[0].ID)
}

func TestPaymentRepository_MarkVerifiedOnce(t *testing.T) {
	db := newTestDB(t)
	createPaymentTables(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := newPendingPayment(uuid.New())
	require.NoError(t, repo.Create(ctx, p))

	admin := uuid.New()
	now := time.Now()
	require.NoError(t, repo.MarkVerified(ctx, p.ID, admin, now))

	// second verification hits zero rows
	err := repo.MarkVerified(ctx, p.ID, admin, now)
	require.ErrorIs(t, err, domainerrors.ErrAlreadyProcessed)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusVerified, got.Status)
	require.NotNil(t, got.VerifiedBy)
	require.Equal(t, admin, *got.VerifiedBy)
	require.True(t, got.VerifiedAt.Valid)
}

func TestPaymentRepository_MarkFailedKeepsReason(t *testing.T) {
	db := newTestDB(t)
	createPaymentTables(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := newPendingPayment(uuid.New())
	require.NoError(t, repo.Create(ctx, p))

	admin := uuid.New()
	require.NoError(t, repo.MarkFailed(ctx, p.ID, admin, "receipt unreadable", time.Now()))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusFailed, got.Status)
	require.Equal(t, "receipt unreadable", got.RejectionReason.String)

	// failed payments cannot be verified afterwards
	err = repo.MarkVerified(ctx, p.ID, admin, time.Now())
	require.ErrorIs(t, err, domainerrors.ErrAlreadyProcessed)
}

func TestPaymentRepository_MarkRefundedRequiresVerified(t *testing.T) {
	db := newTestDB(t)
	createPaymentTables(t, db)
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := newPendingPayment(uuid.New())
	require.NoError(t, repo.Create(ctx, p))

	// still pending, refund affects zero rows
	err := repo.MarkRefunded(ctx, p.ID, time.Now())
	require.ErrorIs(t, err, domainerrors.ErrAlreadyProcessed)

	require.NoError(t, repo.MarkVerified(ctx, p.ID, uuid.New(), time.Now()))
	require.NoError(t, repo.MarkRefunded(ctx, p.ID, time.Now()))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusRefunded, got.Status)
}
