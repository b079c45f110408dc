package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/domain/repositories"
)

// OrderUsecase handles order reads and customer cancellation
type OrderUsecase struct {
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	paymentRepo   repositories.PaymentRepository
	productRepo   repositories.ProductRepository
	earningRepo   repositories.EarningRepository
	uow           repositories.UnitOfWork
}

// NewOrderUsecase creates a new order usecase
func NewOrderUsecase(
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	paymentRepo repositories.PaymentRepository,
	productRepo repositories.ProductRepository,
	earningRepo repositories.EarningRepository,
	uow repositories.UnitOfWork,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		paymentRepo:   paymentRepo,
		productRepo:   productRepo,
		earningRepo:   earningRepo,
		uow:           uow,
	}
}

// GetByID returns an order visible to the requester
func (u *OrderUsecase) GetByID(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderID uuid.UUID) (*entities.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.CustomerID != requesterID {
		return nil, domainerrors.ErrForbidden
	}
	return order, nil
}

// GetByOrderNumber returns an order looked up by its human-readable
// number
func (u *OrderUsecase) GetByOrderNumber(ctx context.Context, requesterID uuid.UUID, isAdmin bool, orderNumber string) (*entities.Order, error) {
	order, err := u.orderRepo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.CustomerID != requesterID {
		return nil, domainerrors.ErrForbidden
	}
	return order, nil
}

// ListMine lists the customer's own orders
func (u *OrderUsecase) ListMine(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entities.Order, int, error) {
	return u.orderRepo.GetByCustomerID(ctx, customerID, limit, offset)
}

// List lists orders, optionally filtered by status
func (u *OrderUsecase) List(ctx context.Context, status entities.OrderStatus, limit, offset int) ([]*entities.Order, int, error) {
	if status != "" && !status.IsValid() {
		return nil, 0, domainerrors.ErrInvalidInput
	}
	return u.orderRepo.List(ctx, status, limit, offset)
}

// ListMerchantSales lists the order lines sold by the calling merchant
func (u *OrderUsecase) ListMerchantSales(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]*entities.OrderItem, int, error) {
	return u.orderItemRepo.GetByMerchantID(ctx, merchantID, limit, offset)
}

// Cancel cancels the customer's own order while it has not shipped.
// Stock returns to the catalog; a pending payment is closed and
// undisbursed earnings are withdrawn.
func (u *OrderUsecase) Cancel(ctx context.Context, customerID, orderID uuid.UUID) error {
	now := time.Now()
	return u.uow.Do(ctx, func(ctx context.Context) error {
		order, err := u.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.CustomerID != customerID {
			return domainerrors.ErrForbidden
		}
		// Once shipped the parcel is with the courier; cancellation
		// stops at that point.
		if order.Status != entities.OrderStatusPending && order.Status != entities.OrderStatusConfirmed {
			return domainerrors.ErrInvalidTransition
		}

		if err := u.orderRepo.UpdateStatus(ctx, order.ID, order.Status, entities.OrderStatusCancelled); err != nil {
			return err
		}

		payment, err := u.paymentRepo.GetByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}
		if payment.Status == entities.PaymentStatusPending {
			if err := u.paymentRepo.MarkFailed(ctx, payment.ID, customerID, "order cancelled by customer", now); err != nil {
				return err
			}
		}

		if _, err := u.earningRepo.DeletePendingByOrderID(ctx, order.ID); err != nil {
			return err
		}

		items, err := u.orderItemRepo.GetByOrderID(ctx, order.ID)
		if err != nil {
			return err
		}
		for _, item := range items {
			if err := u.productRepo.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}
