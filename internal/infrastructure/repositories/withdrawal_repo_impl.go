package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/infrastructure/models"
)

// WithdrawalRepository implements withdrawal request data operations
type WithdrawalRepository struct {
	db *gorm.DB
}

// NewWithdrawalRepository creates a new withdrawal repository
func NewWithdrawalRepository(db *gorm.DB) *WithdrawalRepository {
	return &WithdrawalRepository{db: db}
}

// Create creates a new withdrawal request
func (r *WithdrawalRepository) Create(ctx context.Context, request *entities.WithdrawalRequest) error {
	m := &models.WithdrawalRequest{
		ID:            request.ID,
		MerchantID:    request.MerchantID,
		Amount:        request.Amount,
		PayoutMethod:  request.PayoutMethod,
		AccountNumber: request.AccountNumber,
		AccountHolder: request.AccountHolder,
		AccountKey:    request.AccountKey.Ptr(),
		Status:        string(request.Status),
		CreatedAt:     request.CreatedAt,
		UpdatedAt:     request.UpdatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	request.ID = m.ID
	return nil
}

// GetByID gets a withdrawal request by ID
func (r *WithdrawalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.WithdrawalRequest, error) {
	var m models.WithdrawalRequest
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return withdrawalToEntity(&m), nil
}

// GetByMerchantID gets a merchant's withdrawal requests with pagination
func (r *WithdrawalRepository) GetByMerchantID(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]*entities.WithdrawalRequest, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.WithdrawalRequest{}).
		Where("merchant_id = ?", merchantID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.WithdrawalRequest
	if err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var requests []*entities.WithdrawalRequest
	for i := range ms {
		requests = append(requests, withdrawalToEntity(&ms[i]))
	}
	return requests, int(total), nil
}

// List gets withdrawal requests with optional status filter
func (r *WithdrawalRepository) List(ctx context.Context, status entities.WithdrawalStatus, limit, offset int) ([]*entities.WithdrawalRequest, int, error) {
	q := r.db.WithContext(ctx).Model(&models.WithdrawalRequest{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.WithdrawalRequest
	find := r.db.WithContext(ctx)
	if status != "" {
		find = find.Where("status = ?", status)
	}
	if err := find.Order("created_at ASC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var requests []*entities.WithdrawalRequest
	for i := range ms {
		requests = append(requests, withdrawalToEntity(&ms[i]))
	}
	return requests, int(total), nil
}

// SumOpenAmount sums the merchant's pending and approved request
// amounts. Computed inside the request transaction so the same
// earnings cannot back two concurrent requests.
func (r *WithdrawalRepository) SumOpenAmount(ctx context.Context, merchantID uuid.UUID) (int64, error) {
	var sum int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.WithdrawalRequest{}).
		Where("merchant_id = ? AND status IN ?", merchantID,
			[]string{string(entities.WithdrawalStatusPending), string(entities.WithdrawalStatusApproved)}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// UpdateStatus transitions the request conditionally on its current
// status; a repeated transition affects zero rows.
func (r *WithdrawalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.WithdrawalStatus, processor uuid.UUID, notes string, at time.Time) error {
	updates := map[string]interface{}{
		"status":       to,
		"processed_by": processor,
		"processed_at": at,
		"updated_at":   at,
	}
	if notes != "" {
		updates["admin_notes"] = notes
	}

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.WithdrawalRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlreadyProcessed
	}
	return nil
}

func withdrawalToEntity(m *models.WithdrawalRequest) *entities.WithdrawalRequest {
	return &entities.WithdrawalRequest{
		ID:            m.ID,
		MerchantID:    m.MerchantID,
		Amount:        m.Amount,
		PayoutMethod:  m.PayoutMethod,
		AccountNumber: m.AccountNumber,
		AccountHolder: m.AccountHolder,
		AccountKey:    null.StringFromPtr(m.AccountKey),
		Status:        entities.WithdrawalStatus(m.Status),
		AdminNotes:    null.StringFromPtr(m.AdminNotes),
		ProcessedBy:   m.ProcessedBy,
		ProcessedAt:   null.TimeFromPtr(m.ProcessedAt),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
