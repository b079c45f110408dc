package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/domain/repositories"
)

// WithdrawalUsecase handles merchant earnings and payout requests
type WithdrawalUsecase struct {
	withdrawalRepo    repositories.WithdrawalRepository
	earningRepo       repositories.EarningRepository
	merchantRepo      repositories.MerchantRepository
	uow               repositories.UnitOfWork
	minimumWithdrawal int64
}

// NewWithdrawalUsecase creates a new withdrawal usecase
func NewWithdrawalUsecase(
	withdrawalRepo repositories.WithdrawalRepository,
	earningRepo repositories.EarningRepository,
	merchantRepo repositories.MerchantRepository,
	uow repositories.UnitOfWork,
	minimumWithdrawal int64,
) *WithdrawalUsecase {
	return &WithdrawalUsecase{
		withdrawalRepo:    withdrawalRepo,
		earningRepo:       earningRepo,
		merchantRepo:      merchantRepo,
		uow:               uow,
		minimumWithdrawal: minimumWithdrawal,
	}
}

// Summary returns the merchant's balance overview. Open withdrawal
// requests reduce the available balance so the same earnings cannot
// back two requests.
func (u *WithdrawalUsecase) Summary(ctx context.Context, userID uuid.UUID) (*entities.EarningsSummary, error) {
	merchant, err := u.merchantRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.summaryFor(ctx, merchant.ID)
}

// ListEarnings lists the merchant's earnings newest first
func (u *WithdrawalUsecase) ListEarnings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.MerchantEarning, int, error) {
	merchant, err := u.merchantRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return u.earningRepo.GetByMerchantID(ctx, merchant.ID, limit, offset)
}

// ListMine lists the merchant's own withdrawal requests
func (u *WithdrawalUsecase) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.WithdrawalRequest, int, error) {
	merchant, err := u.merchantRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return u.withdrawalRepo.GetByMerchantID(ctx, merchant.ID, limit, offset)
}

// List lists withdrawal requests for review, optionally by status
func (u *WithdrawalUsecase) List(ctx context.Context, status entities.WithdrawalStatus, limit, offset int) ([]*entities.WithdrawalRequest, int, error) {
	return u.withdrawalRepo.List(ctx, status, limit, offset)
}

// Request opens a payout request against the merchant's available
// balance. The merchant row is locked before the balance check so two
// concurrent requests serialize instead of both reading the same
// balance and jointly overdrawing it.
func (u *WithdrawalUsecase) Request(ctx context.Context, userID uuid.UUID, input *entities.RequestWithdrawalInput) (*entities.WithdrawalRequest, error) {
	merchant, err := u.merchantRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if merchant.Status != entities.MerchantStatusApproved {
		return nil, domainerrors.ErrMerchantNotApproved
	}
	if input.Amount < u.minimumWithdrawal {
		return nil, domainerrors.ErrBelowMinimumWithdrawal
	}

	request := &entities.WithdrawalRequest{
		MerchantID:    merchant.ID,
		Amount:        input.Amount,
		PayoutMethod:  input.PayoutMethod,
		AccountNumber: input.AccountNumber,
		AccountHolder: input.AccountHolder,
		AccountKey:    nullStringFrom(input.AccountKey),
		Status:        entities.WithdrawalStatusPending,
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.merchantRepo.LockByID(ctx, merchant.ID); err != nil {
			return err
		}
		summary, err := u.summaryFor(ctx, merchant.ID)
		if err != nil {
			return err
		}
		if input.Amount > summary.AvailableBalance {
			return domainerrors.ErrExceedsBalance
		}
		return u.withdrawalRepo.Create(ctx, request)
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// Approve moves a pending request to approved
func (u *WithdrawalUsecase) Approve(ctx context.Context, adminID, requestID uuid.UUID) error {
	return u.withdrawalRepo.UpdateStatus(ctx, requestID,
		entities.WithdrawalStatusPending, entities.WithdrawalStatusApproved, adminID, "", time.Now())
}

// Reject closes a pending request with a note; the held balance frees
// up immediately
func (u *WithdrawalUsecase) Reject(ctx context.Context, adminID, requestID uuid.UUID, input *entities.RejectWithdrawalInput) error {
	return u.withdrawalRepo.UpdateStatus(ctx, requestID,
		entities.WithdrawalStatusPending, entities.WithdrawalStatusRejected, adminID, input.Notes, time.Now())
}

// Complete settles an approved request: the oldest pending earnings
// are marked paid until they cover the paid-out amount.
func (u *WithdrawalUsecase) Complete(ctx context.Context, adminID, requestID uuid.UUID) error {
	now := time.Now()
	return u.uow.Do(ctx, func(ctx context.Context) error {
		request, err := u.withdrawalRepo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}

		if err := u.withdrawalRepo.UpdateStatus(ctx, requestID,
			entities.WithdrawalStatusApproved, entities.WithdrawalStatusCompleted, adminID, "", now); err != nil {
			return err
		}

		covered, err := u.earningRepo.MarkPaidFIFO(ctx, request.MerchantID, request.Amount, now)
		if err != nil {
			return err
		}
		// The balance guard at request time makes a shortfall
		// impossible unless earnings were tampered with.
		if covered < request.Amount {
			return fmt.Errorf("pending earnings cover %d of %d requested", covered, request.Amount)
		}
		return nil
	})
}

func (u *WithdrawalUsecase) summaryFor(ctx context.Context, merchantID uuid.UUID) (*entities.EarningsSummary, error) {
	pending, err := u.earningRepo.SumPendingNet(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	open, err := u.withdrawalRepo.SumOpenAmount(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	return &entities.EarningsSummary{
		PendingNet:       pending,
		OpenWithdrawals:  open,
		AvailableBalance: pending - open,
	}, nil
}
