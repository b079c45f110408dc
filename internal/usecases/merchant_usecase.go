package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/domain/repositories"
)

// MerchantUsecase handles merchant onboarding and administration
type MerchantUsecase struct {
	merchantRepo repositories.MerchantRepository
	userRepo     repositories.UserRepository
	uow          repositories.UnitOfWork
}

// NewMerchantUsecase creates a new merchant usecase
func NewMerchantUsecase(
	merchantRepo repositories.MerchantRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
) *MerchantUsecase {
	return &MerchantUsecase{
		merchantRepo: merchantRepo,
		userRepo:     userRepo,
		uow:          uow,
	}
}

// Apply submits a merchant application for the calling user
func (u *MerchantUsecase) Apply(ctx context.Context, userID uuid.UUID, input *entities.MerchantApplyInput) (*entities.Merchant, error) {
	_, err := u.merchantRepo.GetByUserID(ctx, userID)
	if err == nil {
		return nil, domainerrors.ErrAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	merchant := &entities.Merchant{
		UserID:   userID,
		ShopName: input.ShopName,
		Bio:      nullStringFrom(input.Bio),
		Wilaya:   input.Wilaya,
		Phone:    input.Phone,
		Status:   entities.MerchantStatusPending,
	}

	if err := u.merchantRepo.Create(ctx, merchant); err != nil {
		return nil, err
	}
	return merchant, nil
}

// Status returns the application status of the calling user's shop
func (u *MerchantUsecase) Status(ctx context.Context, userID uuid.UUID) (*entities.MerchantStatusResponse, error) {
	merchant, err := u.merchantRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &entities.MerchantStatusResponse{
		MerchantID:  merchant.ID,
		Status:      merchant.Status,
		ShopName:    merchant.ShopName,
		Message:     statusMessage(merchant.Status),
		SubmittedAt: merchant.CreatedAt,
		ReviewedAt:  merchant.VerifiedAt,
	}, nil
}

// GetByUserID returns the merchant record of a user
func (u *MerchantUsecase) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Merchant, error) {
	return u.merchantRepo.GetByUserID(ctx, userID)
}

// List lists merchants, optionally filtered by status
func (u *MerchantUsecase) List(ctx context.Context, status entities.MerchantStatus, limit, offset int) ([]*entities.Merchant, int, error) {
	return u.merchantRepo.List(ctx, status, limit, offset)
}

// Approve approves a pending merchant and upgrades the owning user to
// the merchant role in the same transaction
func (u *MerchantUsecase) Approve(ctx context.Context, merchantID uuid.UUID) error {
	return u.uow.Do(ctx, func(ctx context.Context) error {
		merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
		if err != nil {
			return err
		}
		if merchant.Status == entities.MerchantStatusApproved {
			return domainerrors.ErrAlreadyProcessed
		}

		if err := u.merchantRepo.UpdateStatus(ctx, merchantID, entities.MerchantStatusApproved); err != nil {
			return err
		}

		user, err := u.userRepo.GetByID(ctx, merchant.UserID)
		if err != nil {
			return err
		}
		if user.Role == entities.UserRoleCustomer {
			user.Role = entities.UserRoleMerchant
			if err := u.userRepo.Update(ctx, user); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reject rejects a pending merchant application
func (u *MerchantUsecase) Reject(ctx context.Context, merchantID uuid.UUID) error {
	merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return err
	}
	if merchant.Status != entities.MerchantStatusPending {
		return domainerrors.ErrAlreadyProcessed
	}
	return u.merchantRepo.UpdateStatus(ctx, merchantID, entities.MerchantStatusRejected)
}

// Suspend suspends an approved merchant; their catalog keeps its data
// but new products and withdrawals are blocked
func (u *MerchantUsecase) Suspend(ctx context.Context, merchantID uuid.UUID) error {
	merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return err
	}
	if merchant.Status != entities.MerchantStatusApproved {
		return domainerrors.ErrInvalidTransition
	}
	return u.merchantRepo.UpdateStatus(ctx, merchantID, entities.MerchantStatusSuspended)
}

// SetCommissionRate sets a per-merchant commission override. A nil
// rate clears the override back to the platform default.
func (u *MerchantUsecase) SetCommissionRate(ctx context.Context, merchantID uuid.UUID, rate *float64) error {
	if rate != nil && (*rate < 0 || *rate > 1) {
		return domainerrors.ErrInvalidInput
	}

	merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return err
	}
	merchant.CommissionRate = null.Float64FromPtr(rate)
	return u.merchantRepo.Update(ctx, merchant)
}

func statusMessage(status entities.MerchantStatus) string {
	switch status {
	case entities.MerchantStatusPending:
		return "Your application is under review"
	case entities.MerchantStatusApproved:
		return "Your shop is live"
	case entities.MerchantStatusSuspended:
		return "Your shop is suspended, contact support"
	case entities.MerchantStatusRejected:
		return "Your application was not accepted"
	default:
		return ""
	}
}
