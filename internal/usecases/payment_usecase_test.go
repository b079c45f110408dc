package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/usecases"
)

type paymentMocks struct {
	paymentRepo   *MockPaymentRepository
	orderRepo     *MockOrderRepository
	orderItemRepo *MockOrderItemRepository
	productRepo   *MockProductRepository
	merchantRepo  *MockMerchantRepository
	earningRepo   *MockEarningRepository
	uow           *MockUnitOfWork
}

func newPaymentUsecase() (*usecases.PaymentUsecase, *paymentMocks) {
	m := &paymentMocks{
		paymentRepo:   new(MockPaymentRepository),
		orderRepo:     new(MockOrderRepository),
		orderItemRepo: new(MockOrderItemRepository),
		productRepo:   new(MockProductRepository),
		merchantRepo:  new(MockMerchantRepository),
		earningRepo:   new(MockEarningRepository),
		uow:           new(MockUnitOfWork),
	}
	uc := usecases.NewPaymentUsecase(
		m.paymentRepo, m.orderRepo, m.orderItemRepo, m.productRepo,
		m.merchantRepo, m.earningRepo, m.uow, 0.12,
	)
	return uc, m
}

func TestAddProof_Success(t *testing.T) {
	uc, m := newPaymentUsecase()

	customerID := uuid.New()
	order := &entities.Order{ID: uuid.New(), CustomerID: customerID}
	payment := &entities.Payment{
		ID:      uuid.New(),
		OrderID: order.ID,
		Method:  entities.PaymentMethodBankTransfer,
		Status:  entities.PaymentStatusPending,
	}

	m.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	m.paymentRepo.On("GetByOrderID", mock.Anything, order.ID).Return(payment, nil)
	m.paymentRepo.On("CountProofs", mock.Anything, payment.ID).Return(int64(1), nil)
	m.paymentRepo.On("AddProof", mock.Anything, mock.AnythingOfType("*entities.PaymentProof")).Return(nil)

	proof, err := uc.AddProof(context.Background(), customerID, order.ID,
		&entities.AddProofInput{FileURL: "https://cdn.qfifat.dz/receipts/ccp-777.jpg"})
	require.NoError(t, err)
	require.Equal(t, payment.ID, proof.PaymentID)
	require.Equal(t, customerID, proof.UploadedBy)

	m.paymentRepo.AssertExpectations(t)
}

func TestAddProof_Guards(t *testing.T) {
	customerID := uuid.New()
	order := &entities.Order{ID: uuid.New(), CustomerID: customerID}
	input := &entities.AddProofInput{FileURL: "https://cdn.qfifat.dz/receipts/x.jpg"}

	t.Run("someone else's order", func(t *testing.T) {
		uc, m := newPaymentUsecase()
		m.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)

		_, err := uc.AddProof(context.Background(), uuid.New(), order.ID, input)
		require.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("card payment takes no receipts", func(t *testing.T) {
		uc, m := newPaymentUsecase()
		m.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
		m.paymentRepo.On("GetByOrderID", mock.Anything, order.ID).Return(&entities.Payment{
			ID: uuid.New(), Method: entities.PaymentMethodCard, Status: entities.PaymentStatusVerified,
		}, nil)

		_, err := uc.AddProof(context.Background(), customerID, order.ID, input)
		require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
	})

	t.Run("payment already settled", func(t *testing.T) {
		uc, m := newPaymentUsecase()
		m.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
		m.paymentRepo.On("GetByOrderID", mock.Anything, order.ID).Return(&entities.Payment{
			ID: uuid.New(), Method: entities.PaymentMethodBankTransfer, Status: entities.PaymentStatusVerified,
		}, nil)

		_, err := uc.AddProof(context.Background(), customerID, order.ID, input)
		require.ErrorIs(t, err, domainerrors.ErrAlreadyProcessed)
	})

	t.Run("proof cap reached", func(t *testing.T) {
		uc, m := newPaymentUsecase()
		payment := &entities.Payment{
			ID: uuid.New(), Method: entities.PaymentMethodBankTransfer, Status: entities.PaymentStatusPending,
		}
		m.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
		m.paymentRepo.On("GetByOrderID", mock.Anything, order.ID).Return(payment, nil)
		m.paymentRepo.On("CountProofs", mock.Anything, payment.ID).Return(int64(usecases.MaxProofsPerPayment), nil)

		_, err := uc.AddProof(context.Background(), customerID, order.ID, input)
		require.ErrorIs(t, err, domainerrors.ErrInvalidInput)
		m.paymentRepo.AssertNotCalled(t, "AddProof", mock.Anything, mock.Anything)
	})
}

func TestGetPaymentByOrderID_Visibility(t *testing.T) {
	uc, m := newPaymentUsecase()

	customerID := uuid.New()
	order := &entities.Order{ID: uuid.New(), CustomerID: customerID}
	payment := &entities.Payment{ID: uuid.New(), OrderID: order.ID}

	m.orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, nil)
	m.paymentRepo.On("GetByOrderID", mock.Anything, order.ID).Return(payment, nil)

	got, err := uc.GetByOrderID(context.Background(), customerID, false, order.ID)
	require.NoError(t, err)
	require.Equal(t, payment.ID, got.ID)

	_, err = uc.GetByOrderID(context.Background(), uuid.New(), false, order.ID)
	require.ErrorIs(t, err, domainerrors.ErrForbidden)

	// Admins see any order's payment.
	_, err = uc.GetByOrderID(context.Background(), uuid.New(), true, order.ID)
	require.NoError(t, err)
}

func TestApprovePayment_RequiresProofForBankTransfer(t *testing.T) {
	uc, m := newPaymentUsecase()

	payment := &entities.Payment{
		ID:      uuid.New(),
		OrderID: uuid.New(),
		Method:  entities.PaymentMethodBankTransfer,
		Status:  entities.PaymentStatusPending,
	}

	m.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	m.paymentRepo.On("GetByID", mock.Anything, payment.ID).Return(payment, nil)
	m.paymentRepo.On("CountProofs", mock.Anything, payment.ID).Return(int64(0), nil)

	err := uc.Approve(context.Background(), uuid.New(), payment.ID)
	require.ErrorIs(t, err, domainerrors.ErrProofRequired)

	m.paymentRepo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApprovePayment_ConfirmsOrderAndBooksEarnings(t *testing.T) {
	uc, m := newPaymentUsecase()

	adminID := uuid.New()
	merchantID := uuid.New()
	payment := &entities.Payment{
		ID:      uuid.New(),
		OrderID: uuid.New(),
		Method:  entities.PaymentMethodBankTransfer,
		Status:  entities.PaymentStatusPending,
	}
	items := []*entities.OrderItem{
		{ID: uuid.New(), OrderID: payment.OrderID, ProductID: uuid.New(), MerchantID: merchantID, LineTotal: 2000, Quantity: 1},
		{ID: uuid.New(), OrderID: payment.OrderID, ProductID: uuid.New(), MerchantID: merchantID, LineTotal: 3000, Quantity: 2},
	}
	merchant := &entities.Merchant{
		ID:             merchantID,
		Status:         entities.MerchantStatusApproved,
		CommissionRate: null.Float64From(0.05),
	}

	m.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	m.paymentRepo.On("GetByID", mock.Anything, payment.ID).Return(payment, nil)
	m.paymentRepo.On("CountProofs", mock.Anything, payment.ID).Return(int64(1), nil)
	m.paymentRepo.On("MarkVerified", mock.Anything, payment.ID, adminID, mock.AnythingOfType("time.Time")).Return(nil)
	m.orderRepo.On("UpdateStatus", mock.Anything, payment.OrderID, entities.OrderStatusPending, entities.OrderStatusConfirmed).Return(nil)
	m.orderItemRepo.On("GetByOrderID", mock.Anything, payment.OrderID).Return(items, nil)
	m.merchantRepo.On("GetByID", mock.Anything, merchantID).Return(merchant, nil).Once()

	var booked []*entities.MerchantEarning
	m.earningRepo.On("CreateBatch", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		booked = args.Get(1).([]*entities.MerchantEarning)
	}).Return(nil)

	err := uc.Approve(context.Background(), adminID, payment.ID)
	require.NoError(t, err)

	// The merchant rate is resolved once and reused across lines.
	require.Len(t, booked, 2)
	require.Equal(t, int64(100), booked[0].CommissionAmount)
	require.Equal(t, int64(1900), booked[0].NetAmount)
	require.Equal(t, int64(150), booked[1].CommissionAmount)
	require.Equal(t, int64(2850), booked[1].NetAmount)

	m.paymentRepo.AssertExpectations(t)
	m.orderRepo.AssertExpectations(t)
	m.merchantRepo.AssertExpectations(t)
}

func TestRejectPayment_CancelsOrderAndRestocks(t *testing.T) {
	uc, m := newPaymentUsecase()

	adminID := uuid.New()
	payment := &entities.Payment{
		ID:      uuid.New(),
		OrderID: uuid.New(),
		Method:  entities.PaymentMethodBankTransfer,
		Status:  entities.PaymentStatusPending,
	}
	items := []*entities.OrderItem{
		{ID: uuid.New(), ProductID: uuid.New(), Quantity: 2},
		{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1},
	}

	m.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	m.paymentRepo.On("GetByID", mock.Anything, payment.ID).Return(payment, nil)
	m.paymentRepo.On("MarkFailed", mock.Anything, payment.ID, adminID, "receipt unreadable", mock.AnythingOfType("time.Time")).Return(nil)
	m.orderRepo.On("UpdateStatus", mock.Anything, payment.OrderID, entities.OrderStatusPending, entities.OrderStatusCancelled).Return(nil)
	m.orderItemRepo.On("GetByOrderID", mock.Anything, payment.OrderID).Return(items, nil)
	m.productRepo.On("IncrementStock", mock.Anything, items[0].ProductID, 2).Return(nil)
	m.productRepo.On("IncrementStock", mock.Anything, items[1].ProductID, 1).Return(nil)

	err := uc.Reject(context.Background(), adminID, payment.ID, &entities.RejectPaymentInput{Reason: "receipt unreadable"})
	require.NoError(t, err)

	m.paymentRepo.AssertExpectations(t)
	m.productRepo.AssertExpectations(t)
}

func TestRefundPayment_BlockedAfterDelivery(t *testing.T) {
	uc, m := newPaymentUsecase()

	payment := &entities.Payment{ID: uuid.New(), OrderID: uuid.New(), Status: entities.PaymentStatusVerified}
	order := &entities.Order{ID: payment.OrderID, Status: entities.OrderStatusDelivered}

	m.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	m.paymentRepo.On("GetByID", mock.Anything, payment.ID).Return(payment, nil)
	m.orderRepo.On("GetByID", mock.Anything, payment.OrderID).Return(order, nil)

	err := uc.Refund(context.Background(), uuid.New(), payment.ID)
	require.ErrorIs(t, err, domainerrors.ErrInvalidTransition)

	m.paymentRepo.AssertNotCalled(t, "MarkRefunded", mock.Anything, mock.Anything, mock.Anything)
}

func TestRefundPayment_CancelsOrderAndUnwindsEarnings(t *testing.T) {
	uc, m := newPaymentUsecase()

	payment := &entities.Payment{ID: uuid.New(), OrderID: uuid.New(), Status: entities.PaymentStatusVerified}
	order := &entities.Order{ID: payment.OrderID, Status: entities.OrderStatusConfirmed}
	items := []*entities.OrderItem{{ID: uuid.New(), ProductID: uuid.New(), Quantity: 3}}

	m.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	m.paymentRepo.On("GetByID", mock.Anything, payment.ID).Return(payment, nil)
	m.orderRepo.On("GetByID", mock.Anything, payment.OrderID).Return(order, nil)
	m.paymentRepo.On("MarkRefunded", mock.Anything, payment.ID, mock.AnythingOfType("time.Time")).Return(nil)
	m.orderRepo.On("UpdateStatus", mock.Anything, order.ID, entities.OrderStatusConfirmed, entities.OrderStatusCancelled).Return(nil)
	m.earningRepo.On("DeletePendingByOrderID", mock.Anything, order.ID).Return(int64(1), nil)
	m.orderItemRepo.On("GetByOrderID", mock.Anything, order.ID).Return(items, nil)
	m.productRepo.On("IncrementStock", mock.Anything, items[0].ProductID, 3).Return(nil)

	err := uc.Refund(context.Background(), uuid.New(), payment.ID)
	require.NoError(t, err)

	m.paymentRepo.AssertExpectations(t)
	m.earningRepo.AssertExpectations(t)
	m.productRepo.AssertExpectations(t)
}

func TestListPendingPayments(t *testing.T) {
	uc, m := newPaymentUsecase()

	m.paymentRepo.On("ListByStatus", mock.Anything, entities.PaymentStatusPending, 20, 0).
		Return([]*entities.Payment{{ID: uuid.New()}}, 1, nil)

	payments, total, err := uc.ListPending(context.Background(), 20, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, payments, 1)
}
