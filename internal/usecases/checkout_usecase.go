package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/domain/repositories"
	"qfifat.backend/pkg/utils"
)

// CheckoutConfig holds the pricing knobs applied at checkout
type CheckoutConfig struct {
	ShippingCost      int64
	CommissionRate    float64
	OrderNumberPrefix string
}

// CheckoutUsecase places orders: it snapshots cart lines, decrements
// stock, applies a coupon, and opens the payment, all in one
// transaction.
type CheckoutUsecase struct {
	productRepo  repositories.ProductRepository
	orderRepo    repositories.OrderRepository
	paymentRepo  repositories.PaymentRepository
	couponRepo   repositories.CouponRepository
	merchantRepo repositories.MerchantRepository
	earningRepo  repositories.EarningRepository
	uow          repositories.UnitOfWork
	cfg          CheckoutConfig
}

// NewCheckoutUsecase creates a new checkout usecase
func NewCheckoutUsecase(
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	paymentRepo repositories.PaymentRepository,
	couponRepo repositories.CouponRepository,
	merchantRepo repositories.MerchantRepository,
	earningRepo repositories.EarningRepository,
	uow repositories.UnitOfWork,
	cfg CheckoutConfig,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		couponRepo:   couponRepo,
		merchantRepo: merchantRepo,
		earningRepo:  earningRepo,
		uow:          uow,
		cfg:          cfg,
	}
}

// Checkout places an order for the customer's cart
func (u *CheckoutUsecase) Checkout(ctx context.Context, customerID uuid.UUID, input *entities.CheckoutInput) (*entities.CheckoutResponse, error) {
	if len(input.Items) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}
	if !input.PaymentMethod.IsValid() {
		return nil, domainerrors.ErrInvalidInput
	}
	// A bank transfer cannot be reviewed without a receipt, so the
	// order is not accepted until one is attached.
	if input.PaymentMethod == entities.PaymentMethodBankTransfer && input.ProofFileURL == "" {
		return nil, domainerrors.ErrProofRequired
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, domainerrors.ErrInvalidInput
		}
	}

	now := time.Now()
	var resp *entities.CheckoutResponse

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		order, err := u.buildOrder(ctx, customerID, input, now)
		if err != nil {
			return err
		}

		if err := u.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		payment := &entities.Payment{
			OrderID: order.ID,
			Method:  input.PaymentMethod,
			Amount:  order.Total,
			Status:  entities.PaymentStatusPending,
		}
		// Card payments settle at the gateway, so the payment arrives
		// already verified and the order skips straight to confirmed.
		if input.PaymentMethod == entities.PaymentMethodCard {
			payment.Status = entities.PaymentStatusVerified
			payment.VerifiedAt = null.TimeFrom(now)
		}

		if err := u.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		if input.PaymentMethod == entities.PaymentMethodBankTransfer {
			proof := &entities.PaymentProof{
				PaymentID:  payment.ID,
				FileURL:    input.ProofFileURL,
				UploadedBy: customerID,
			}
			if err := u.paymentRepo.AddProof(ctx, proof); err != nil {
				return err
			}
		}

		if input.PaymentMethod == entities.PaymentMethodCard {
			if err := u.createEarnings(ctx, order, now); err != nil {
				return err
			}
		}

		resp = &entities.CheckoutResponse{
			OrderID:       order.ID,
			OrderNumber:   order.OrderNumber,
			Subtotal:      order.Subtotal,
			Discount:      order.Discount,
			ShippingCost:  order.ShippingCost,
			Total:         order.Total,
			OrderStatus:   order.Status,
			PaymentStatus: payment.Status,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// buildOrder snapshots the cart lines, decrements stock, and prices
// the order including the coupon discount.
func (u *CheckoutUsecase) buildOrder(ctx context.Context, customerID uuid.UUID, input *entities.CheckoutInput, now time.Time) (*entities.Order, error) {
	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := u.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entities.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var subtotal int64
	items := make([]entities.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		product, ok := byID[line.ProductID]
		if !ok || !product.IsActive {
			return nil, domainerrors.ErrNotFound
		}

		// The stock check rides in the update itself, so two
		// concurrent checkouts cannot both take the last unit.
		if err := u.productRepo.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
			return nil, err
		}

		lineTotal := product.Price * int64(line.Quantity)
		items = append(items, entities.OrderItem{
			ProductID:    product.ID,
			MerchantID:   product.MerchantID,
			ProductName:  product.Name,
			ProductImage: product.ImageURL,
			UnitPrice:    product.Price,
			Quantity:     line.Quantity,
			LineTotal:    lineTotal,
		})
		subtotal += lineTotal
	}

	var discount int64
	var couponID *uuid.UUID
	if input.CouponCode != "" {
		coupon, err := u.couponRepo.GetByCode(ctx, input.CouponCode)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.ErrCouponInvalid
			}
			return nil, err
		}
		if err := coupon.Usable(subtotal, now); err != nil {
			return nil, err
		}
		// Redeem enforces the usage cap in the update itself.
		if err := u.couponRepo.Redeem(ctx, coupon.ID); err != nil {
			return nil, err
		}
		discount = coupon.DiscountFor(subtotal)
		couponID = &coupon.ID
	}

	orderNumber, err := utils.GenerateOrderNumber(u.cfg.OrderNumberPrefix, now)
	if err != nil {
		return nil, err
	}

	status := entities.OrderStatusPending
	if input.PaymentMethod == entities.PaymentMethodCard {
		status = entities.OrderStatusConfirmed
	}

	return &entities.Order{
		OrderNumber:    orderNumber,
		CustomerID:     customerID,
		CouponID:       couponID,
		Subtotal:       subtotal,
		Discount:       discount,
		ShippingCost:   u.cfg.ShippingCost,
		Total:          subtotal - discount + u.cfg.ShippingCost,
		RecipientName:  input.RecipientName,
		RecipientPhone: input.RecipientPhone,
		Address:        input.Address,
		City:           input.City,
		Region:         input.Region,
		Notes:          nullStringFrom(input.Notes),
		Status:         status,
		Items:          items,
	}, nil
}

// createEarnings splits each line total between the platform and the
// selling merchant at the merchant's effective rate.
func (u *CheckoutUsecase) createEarnings(ctx context.Context, order *entities.Order, now time.Time) error {
	rates := make(map[uuid.UUID]float64)
	earnings := make([]*entities.MerchantEarning, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		rate, ok := rates[item.MerchantID]
		if !ok {
			merchant, err := u.merchantRepo.GetByID(ctx, item.MerchantID)
			if err != nil {
				return err
			}
			rate = merchant.EffectiveCommissionRate(u.cfg.CommissionRate)
			rates[item.MerchantID] = rate
		}
		earnings = append(earnings, entities.NewMerchantEarning(item, rate, now))
	}
	return u.earningRepo.CreateBatch(ctx, earnings)
}
