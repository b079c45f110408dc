package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"qfifat.backend/internal/domain/entities"
)

// EarningRepository defines merchant earning data operations
type EarningRepository interface {
	CreateBatch(ctx context.Context, earnings []*entities.MerchantEarning) error
	GetByMerchantID(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]*entities.MerchantEarning, int, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entities.MerchantEarning, error)
	// SumPendingNet sums net_amount over the merchant's pending earnings.
	SumPendingNet(ctx context.Context, merchantID uuid.UUID) (int64, error)
	// MarkPaidFIFO marks the merchant's oldest pending earnings paid
	// until their net amounts cover the given amount, returning the net
	// total actually marked.
	MarkPaidFIFO(ctx context.Context, merchantID uuid.UUID, amount int64, paidAt time.Time) (int64, error)
	// DeletePendingByOrderID removes the pending earnings of a refunded
	// order, returning the number of rows removed. Paid earnings are
	// never touched.
	DeletePendingByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error)
}

// WithdrawalRepository defines withdrawal request data operations
type WithdrawalRepository interface {
	Create(ctx context.Context, request *entities.WithdrawalRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error)
	GetByMerchantID(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]*entities.WithdrawalRequest, int, error)
	List(ctx context.Context, status entities.WithdrawalStatus, limit, offset int) ([]*entities.WithdrawalRequest, int, error)
	// SumOpenAmount sums the amounts of the merchant's pending and
	// approved requests so the same earnings cannot back two requests.
	SumOpenAmount(ctx context.Context, merchantID uuid.UUID) (int64, error)
	// UpdateStatus transitions conditionally on the current status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.WithdrawalStatus, processor uuid.UUID, notes string, at time.Time) error
}
