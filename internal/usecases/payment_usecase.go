package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/domain/repositories"
)

// PaymentUsecase handles the payment verification workflow: customers
// attach transfer receipts, admins approve, reject or refund.
type PaymentUsecase struct {
	paymentRepo    repositories.PaymentRepository
	orderRepo      repositories.OrderRepository
	orderItemRepo  repositories.OrderItemRepository
	productRepo    repositories.ProductRepository
	merchantRepo   repositories.MerchantRepository
	earningRepo    repositories.EarningRepository
	uow            repositories.UnitOfWork
	commissionRate float64
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	paymentRepo repositories.PaymentRepository,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	productRepo repositories.ProductRepository,
	merchantRepo repositories.MerchantRepository,
	earningRepo repositories.EarningRepository,
	uow repositories.UnitOfWork,
	commissionRate float64,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo:    paymentRepo,
		orderRepo:      orderRepo,
		orderItemRepo:  orderItemRepo,
		productRepo:    productRepo,
		merchantRepo:   merchantRepo,
		earningRepo:    earningRepo,
		uow:            uow,
		commissionRate: commissionRate,
	}
}

// AddProof attaches a transfer receipt to the pending payment of the
// customer's own order
func (u *PaymentUsecase) AddProof(ctx context.Context, customerID, orderID uuid.UUID, input *entities.AddProofInput) (*entities.PaymentProof, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domainerrors.ErrForbidden
	}

	payment, err := u.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if payment.Method != entities.PaymentMethodBankTransfer {
		return nil, domainerrors.ErrInvalidInput
	}
	if payment.Status != entities.PaymentStatusPending {
		return nil, domainerrors.ErrAlreadyProcessed
	}

	count, err := u.paymentRepo.CountProofs(ctx, payment.ID)
	if err != nil {
		return nil, err
	}
	if count >= MaxProofsPerPayment {
		return nil, domainerrors.ErrInvalidInput
	}

	proof := &entities.PaymentProof{
		PaymentID:  payment.ID,
		FileURL:    input.FileURL,
		UploadedBy: customerID,
	}
	if err := u.paymentRepo.AddProof(ctx, proof); err != nil {
		return nil, err
	}
	return proof, nil
}

// GetByOrderID returns the payment of an order the requester may see
func (u *PaymentUsecase) GetByOrderID(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*entities.Payment, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.CustomerID != requesterID {
		return nil, domainerrors.ErrForbidden
	}
	return u.paymentRepo.GetByOrderID(ctx, orderID)
}

// ListPending lists payments awaiting verification
func (u *PaymentUsecase) ListPending(ctx context.Context, limit, offset int) ([]*entities.Payment, int, error) {
	return u.paymentRepo.ListByStatus(ctx, entities.PaymentStatusPending, limit, offset)
}

// Approve verifies a pending payment, confirms its order, and books
// the merchant earnings. Bank transfers need at least one receipt.
func (u *PaymentUsecase) Approve(ctx context.Context, adminID, paymentID uuid.UUID) error {
	now := time.Now()
	return u.uow.Do(ctx, func(ctx context.Context) error {
		payment, err := u.paymentRepo.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}

		if payment.Method == entities.PaymentMethodBankTransfer {
			count, err := u.paymentRepo.CountProofs(ctx, payment.ID)
			if err != nil {
				return err
			}
			if count == 0 {
				return domainerrors.ErrProofRequired
			}
		}

		if err := u.paymentRepo.MarkVerified(ctx, payment.ID, adminID, now); err != nil {
			return err
		}
		if err := u.orderRepo.UpdateStatus(ctx, payment.OrderID, entities.OrderStatusPending, entities.OrderStatusConfirmed); err != nil {
			return err
		}

		items, err := u.orderItemRepo.GetByOrderID(ctx, payment.OrderID)
		if err != nil {
			return err
		}
		return u.createEarnings(ctx, items, now)
	})
}

// Reject fails a pending payment, cancels its order, and returns the
// reserved stock.
func (u *PaymentUsecase) Reject(ctx context.Context, adminID, paymentID uuid.UUID, input *entities.RejectPaymentInput) error {
	now := time.Now()
	return u.uow.Do(ctx, func(ctx context.Context) error {
		payment, err := u.paymentRepo.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}

		if err := u.paymentRepo.MarkFailed(ctx, payment.ID, adminID, input.Reason, now); err != nil {
			return err
		}
		if err := u.orderRepo.UpdateStatus(ctx, payment.OrderID, entities.OrderStatusPending, entities.OrderStatusCancelled); err != nil {
			return err
		}
		return u.restock(ctx, payment.OrderID)
	})
}

// Refund reverses a verified payment before delivery: the order is
// cancelled, stock returned, and undisbursed earnings withdrawn.
func (u *PaymentUsecase) Refund(ctx context.Context, adminID, paymentID uuid.UUID) error {
	now := time.Now()
	return u.uow.Do(ctx, func(ctx context.Context) error {
		payment, err := u.paymentRepo.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		order, err := u.orderRepo.GetByID(ctx, payment.OrderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(entities.OrderStatusCancelled) {
			return domainerrors.ErrInvalidTransition
		}

		if err := u.paymentRepo.MarkRefunded(ctx, payment.ID, now); err != nil {
			return err
		}
		if err := u.orderRepo.UpdateStatus(ctx, order.ID, order.Status, entities.OrderStatusCancelled); err != nil {
			return err
		}
		if _, err := u.earningRepo.DeletePendingByOrderID(ctx, order.ID); err != nil {
			return err
		}
		return u.restock(ctx, order.ID)
	})
}

func (u *PaymentUsecase) restock(ctx context.Context, orderID uuid.UUID) error {
	items, err := u.orderItemRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := u.productRepo.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (u *PaymentUsecase) createEarnings(ctx context.Context, items []*entities.OrderItem, now time.Time) error {
	rates := make(map[uuid.UUID]float64)
	earnings := make([]*entities.MerchantEarning, 0, len(items))
	for _, item := range items {
		rate, ok := rates[item.MerchantID]
		if !ok {
			merchant, err := u.merchantRepo.GetByID(ctx, item.MerchantID)
			if err != nil {
				return err
			}
			rate = merchant.EffectiveCommissionRate(u.commissionRate)
			rates[item.MerchantID] = rate
		}
		earnings = append(earnings, entities.NewMerchantEarning(item, rate, now))
	}
	return u.earningRepo.CreateBatch(ctx, earnings)
}
