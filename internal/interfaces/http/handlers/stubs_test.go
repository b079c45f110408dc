package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
)

// Repository stubs with overridable function fields. Methods without an
// override answer ErrNotFound or a zero value.

type userRepoStub struct {
	getByEmailFn func(ctx context.Context, email string) (*entities.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	createFn     func(ctx context.Context, user *entities.User) error
}

func (s *userRepoStub) Create(ctx context.Context, user *entities.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *userRepoStub) List(context.Context, int, int) ([]*entities.User, int, error) {
	return nil, 0, nil
}

func (s *userRepoStub) Update(context.Context, *entities.User) error { return nil }

type couponRepoStub struct {
	getByCodeFn func(ctx context.Context, code string) (*entities.Coupon, error)
	getByIDFn   func(ctx context.Context, id uuid.UUID) (*entities.Coupon, error)
	createFn    func(ctx context.Context, coupon *entities.Coupon) error
	updateFn    func(ctx context.Context, coupon *entities.Coupon) error
}

func (s *couponRepoStub) Create(ctx context.Context, coupon *entities.Coupon) error {
	if s.createFn != nil {
		return s.createFn(ctx, coupon)
	}
	return nil
}

func (s *couponRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Coupon, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *couponRepoStub) GetByCode(ctx context.Context, code string) (*entities.Coupon, error) {
	if s.getByCodeFn != nil {
		return s.getByCodeFn(ctx, code)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *couponRepoStub) List(context.Context, int, int) ([]*entities.Coupon, int, error) {
	return nil, 0, nil
}

func (s *couponRepoStub) Update(ctx context.Context, coupon *entities.Coupon) error {
	if s.updateFn != nil {
		return s.updateFn(ctx, coupon)
	}
	return nil
}

func (s *couponRepoStub) SoftDelete(context.Context, uuid.UUID) error { return nil }
func (s *couponRepoStub) Redeem(context.Context, uuid.UUID) error     { return nil }
func (s *couponRepoStub) DeactivateExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type orderRepoStub struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	listMine  func(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entities.Order, int, error)
}

func (s *orderRepoStub) Create(context.Context, *entities.Order) error { return nil }

func (s *orderRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *orderRepoStub) GetByOrderNumber(context.Context, string) (*entities.Order, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *orderRepoStub) GetByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entities.Order, int, error) {
	if s.listMine != nil {
		return s.listMine(ctx, customerID, limit, offset)
	}
	return nil, 0, nil
}

func (s *orderRepoStub) List(context.Context, entities.OrderStatus, int, int) ([]*entities.Order, int, error) {
	return nil, 0, nil
}

func (s *orderRepoStub) UpdateStatus(context.Context, uuid.UUID, entities.OrderStatus, entities.OrderStatus) error {
	return nil
}

func (s *orderRepoStub) SetCurrentState(context.Context, uuid.UUID, entities.OrderStatus, string) error {
	return nil
}

type orderItemRepoStub struct{}

func (orderItemRepoStub) GetByOrderID(context.Context, uuid.UUID) ([]*entities.OrderItem, error) {
	return nil, nil
}

func (orderItemRepoStub) GetByMerchantID(context.Context, uuid.UUID, int, int) ([]*entities.OrderItem, int, error) {
	return nil, 0, nil
}

type paymentRepoStub struct {
	getByOrderIDFn func(ctx context.Context, orderID uuid.UUID) (*entities.Payment, error)
}

func (s *paymentRepoStub) Create(context.Context, *entities.Payment) error { return nil }
func (s *paymentRepoStub) GetByID(context.Context, uuid.UUID) (*entities.Payment, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *paymentRepoStub) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entities.Payment, error) {
	if s.getByOrderIDFn != nil {
		return s.getByOrderIDFn(ctx, orderID)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *paymentRepoStub) ListByStatus(context.Context, entities.PaymentStatus, int, int) ([]*entities.Payment, int, error) {
	return nil, 0, nil
}

func (s *paymentRepoStub) AddProof(context.Context, *entities.PaymentProof) error { return nil }
func (s *paymentRepoStub) CountProofs(context.Context, uuid.UUID) (int64, error)  { return 0, nil }
func (s *paymentRepoStub) MarkVerified(context.Context, uuid.UUID, uuid.UUID, time.Time) error {
	return nil
}

func (s *paymentRepoStub) MarkFailed(context.Context, uuid.UUID, uuid.UUID, string, time.Time) error {
	return nil
}

func (s *paymentRepoStub) MarkRefunded(context.Context, uuid.UUID, time.Time) error { return nil }

type productRepoStub struct {
	getByIDsFn func(ctx context.Context, ids []uuid.UUID) ([]*entities.Product, error)
}

func (s *productRepoStub) Create(context.Context, *entities.Product) error { return nil }
func (s *productRepoStub) GetByID(context.Context, uuid.UUID) (*entities.Product, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *productRepoStub) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Product, error) {
	if s.getByIDsFn != nil {
		return s.getByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (s *productRepoStub) List(context.Context, bool, int, int) ([]*entities.Product, int, error) {
	return nil, 0, nil
}

func (s *productRepoStub) GetByMerchantID(context.Context, uuid.UUID, int, int) ([]*entities.Product, int, error) {
	return nil, 0, nil
}

func (s *productRepoStub) Update(context.Context, *entities.Product) error          { return nil }
func (s *productRepoStub) SoftDelete(context.Context, uuid.UUID) error              { return nil }
func (s *productRepoStub) DecrementStock(context.Context, uuid.UUID, int) error     { return nil }
func (s *productRepoStub) IncrementStock(context.Context, uuid.UUID, int) error     { return nil }

type merchantRepoStub struct {
	getByUserIDFn func(ctx context.Context, userID uuid.UUID) (*entities.Merchant, error)
}

func (s *merchantRepoStub) Create(context.Context, *entities.Merchant) error { return nil }
func (s *merchantRepoStub) GetByID(context.Context, uuid.UUID) (*entities.Merchant, error) {
	return nil, domainerrors.ErrNotFound
}

func (s *merchantRepoStub) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Merchant, error) {
	if s.getByUserIDFn != nil {
		return s.getByUserIDFn(ctx, userID)
	}
	return nil, domainerrors.ErrNotFound
}

func (s *merchantRepoStub) LockByID(context.Context, uuid.UUID) error { return nil }

func (s *merchantRepoStub) List(context.Context, entities.MerchantStatus, int, int) ([]*entities.Merchant, int, error) {
	return nil, 0, nil
}

func (s *merchantRepoStub) Update(context.Context, *entities.Merchant) error { return nil }
func (s *merchantRepoStub) UpdateStatus(context.Context, uuid.UUID, entities.MerchantStatus) error {
	return nil
}
func (s *merchantRepoStub) SoftDelete(context.Context, uuid.UUID) error { return nil }

type earningRepoStub struct{}

func (earningRepoStub) CreateBatch(context.Context, []*entities.MerchantEarning) error { return nil }
func (earningRepoStub) GetByMerchantID(context.Context, uuid.UUID, int, int) ([]*entities.MerchantEarning, int, error) {
	return nil, 0, nil
}

func (earningRepoStub) GetByOrderID(context.Context, uuid.UUID) ([]*entities.MerchantEarning, error) {
	return nil, nil
}

func (earningRepoStub) SumPendingNet(context.Context, uuid.UUID) (int64, error) { return 0, nil }
func (earningRepoStub) MarkPaidFIFO(context.Context, uuid.UUID, int64, time.Time) (int64, error) {
	return 0, nil
}

func (earningRepoStub) DeletePendingByOrderID(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

type uowStub struct{}

func (uowStub) Do(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }
