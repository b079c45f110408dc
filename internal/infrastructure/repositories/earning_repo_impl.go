package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"qfifat.backend/internal/domain/entities"
	"qfifat.backend/internal/infrastructure/models"
)

// EarningRepository implements merchant earning data operations
type EarningRepository struct {
	db *gorm.DB
}

// NewEarningRepository creates a new earning repository
func NewEarningRepository(db *gorm.DB) *EarningRepository {
	return &EarningRepository{db: db}
}

// CreateBatch inserts earnings for a verified order in one statement
func (r *EarningRepository) CreateBatch(ctx context.Context, earnings []*entities.MerchantEarning) error {
	if len(earnings) == 0 {
		return nil
	}

	ms := make([]models.MerchantEarning, 0, len(earnings))
	for _, e := range earnings {
		ms = append(ms, models.MerchantEarning{
			ID:               e.ID,
			MerchantID:       e.MerchantID,
			OrderID:          e.OrderID,
			OrderItemID:      e.OrderItemID,
			Amount:           e.Amount,
			CommissionRate:   e.CommissionRate,
			CommissionAmount: e.CommissionAmount,
			NetAmount:        e.NetAmount,
			Status:           string(e.Status),
			CreatedAt:        e.CreatedAt,
		})
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(&ms).Error; err != nil {
		return err
	}
	for i := range ms {
		earnings[i].ID = ms[i].ID
	}
	return nil
}

// GetByMerchantID gets a merchant's earnings with pagination
func (r *EarningRepository) GetByMerchantID(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]*entities.MerchantEarning, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.MerchantEarning{}).
		Where("merchant_id = ?", merchantID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.MerchantEarning
	if err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var earnings []*entities.MerchantEarning
	for i := range ms {
		earnings = append(earnings, earningToEntity(&ms[i]))
	}
	return earnings, int(total), nil
}

// GetByOrderID gets the earnings created for an order
func (r *EarningRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entities.MerchantEarning, error) {
	var ms []models.MerchantEarning
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var earnings []*entities.MerchantEarning
	for i := range ms {
		earnings = append(earnings, earningToEntity(&ms[i]))
	}
	return earnings, nil
}

// SumPendingNet sums net_amount over the merchant's pending earnings
func (r *EarningRepository) SumPendingNet(ctx context.Context, merchantID uuid.UUID) (int64, error) {
	var sum int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.MerchantEarning{}).
		Where("merchant_id = ? AND status = ?", merchantID, entities.EarningStatusPending).
		Select("COALESCE(SUM(net_amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// MarkPaidFIFO consumes the merchant's oldest pending earnings until
// their net amounts cover the given amount. An earning that straddles
// the amount is split: the consumed part is marked paid and the rest
// stays pending, so the merchant never loses net to rounding up to a
// whole earning. Returns the net total actually marked paid, which can
// fall short only when fewer pending earnings remain.
func (r *EarningRepository) MarkPaidFIFO(ctx context.Context, merchantID uuid.UUID, amount int64, paidAt time.Time) (int64, error) {
	db := GetDB(ctx, r.db)

	var ms []models.MerchantEarning
	if err := db.WithContext(ctx).
		Where("merchant_id = ? AND status = ?", merchantID, entities.EarningStatusPending).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return 0, err
	}

	var ids []uuid.UUID
	var covered int64
	var boundary *models.MerchantEarning
	for i := range ms {
		remaining := amount - covered
		if remaining <= 0 {
			break
		}
		if ms[i].NetAmount > remaining {
			boundary = &ms[i]
			break
		}
		ids = append(ids, ms[i].ID)
		covered += ms[i].NetAmount
	}
	if len(ids) == 0 && boundary == nil {
		return 0, nil
	}

	if len(ids) > 0 {
		result := db.WithContext(ctx).Model(&models.MerchantEarning{}).
			Where("id IN ? AND status = ?", ids, entities.EarningStatusPending).
			Updates(map[string]interface{}{
				"status":  entities.EarningStatusPaid,
				"paid_at": paidAt,
			})
		if result.Error != nil {
			return 0, result.Error
		}
	}

	if boundary != nil {
		need := amount - covered
		// Commission follows the consumed net proportionally so both
		// halves keep amount = commission_amount + net_amount.
		paidCommission := boundary.CommissionAmount * need / boundary.NetAmount
		paidGross := need + paidCommission

		// The residual keeps the original created_at so it stays at
		// the front of the queue for the next withdrawal.
		residual := models.MerchantEarning{
			ID:               uuid.New(),
			MerchantID:       boundary.MerchantID,
			OrderID:          boundary.OrderID,
			OrderItemID:      boundary.OrderItemID,
			Amount:           boundary.Amount - paidGross,
			CommissionRate:   boundary.CommissionRate,
			CommissionAmount: boundary.CommissionAmount - paidCommission,
			NetAmount:        boundary.NetAmount - need,
			Status:           string(entities.EarningStatusPending),
			CreatedAt:        boundary.CreatedAt,
		}
		if err := db.WithContext(ctx).Create(&residual).Error; err != nil {
			return 0, err
		}

		result := db.WithContext(ctx).Model(&models.MerchantEarning{}).
			Where("id = ? AND status = ?", boundary.ID, entities.EarningStatusPending).
			Updates(map[string]interface{}{
				"amount":            paidGross,
				"commission_amount": paidCommission,
				"net_amount":        need,
				"status":            entities.EarningStatusPaid,
				"paid_at":           paidAt,
			})
		if result.Error != nil {
			return 0, result.Error
		}
		covered += need
	}
	return covered, nil
}

// DeletePendingByOrderID removes the pending earnings of a refunded
// order. Paid earnings are left alone.
func (r *EarningRepository) DeletePendingByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error) {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Where("order_id = ? AND status = ?", orderID, entities.EarningStatusPending).
		Delete(&models.MerchantEarning{})
	return result.RowsAffected, result.Error
}

func earningToEntity(m *models.MerchantEarning) *entities.MerchantEarning {
	return &entities.MerchantEarning{
		ID:               m.ID,
		MerchantID:       m.MerchantID,
		OrderID:          m.OrderID,
		OrderItemID:      m.OrderItemID,
		Amount:           m.Amount,
		CommissionRate:   m.CommissionRate,
		CommissionAmount: m.CommissionAmount,
		NetAmount:        m.NetAmount,
		Status:           entities.EarningStatus(m.Status),
		PaidAt:           null.TimeFromPtr(m.PaidAt),
		CreatedAt:        m.CreatedAt,
	}
}
