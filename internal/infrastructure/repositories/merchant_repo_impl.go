package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/infrastructure/models"
)

// MerchantRepository implements merchant data operations
type MerchantRepository struct {
	db *gorm.DB
}

// NewMerchantRepository creates a new merchant repository
func NewMerchantRepository(db *gorm.DB) *MerchantRepository {
	return &MerchantRepository{db: db}
}

// Create creates a new merchant application
func (r *MerchantRepository) Create(ctx context.Context, merchant *entities.Merchant) error {
	m := &models.Merchant{
		ID:             merchant.ID,
		UserID:         merchant.UserID,
		ShopName:       merchant.ShopName,
		Bio:            merchant.Bio.Ptr(),
		Wilaya:         merchant.Wilaya,
		Phone:          merchant.Phone,
		Status:         string(merchant.Status),
		CommissionRate: merchant.CommissionRate.Ptr(),
		CreatedAt:      merchant.CreatedAt,
		UpdatedAt:      merchant.UpdatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	merchant.ID = m.ID
	return nil
}

// GetByID gets a merchant by ID
func (r *MerchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	var m models.Merchant
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return merchantToEntity(&m), nil
}

// GetByUserID gets a merchant by the owning user ID
func (r *MerchantRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Merchant, error) {
	var m models.Merchant
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return merchantToEntity(&m), nil
}

// LockByID takes the merchant row with SELECT ... FOR UPDATE so that
// concurrent transactions doing balance math against the merchant wait
// on each other. SQLite has no FOR UPDATE grammar; its single-writer
// model already serializes transactions, so the clause is skipped
// there.
func (r *MerchantRepository) LockByID(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx)
	if db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var m models.Merchant
	if err := q.Select("id").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrNotFound
		}
		return err
	}
	return nil
}

// List gets merchants with optional status filter
func (r *MerchantRepository) List(ctx context.Context, status entities.MerchantStatus, limit, offset int) ([]*entities.Merchant, int, error) {
	q := r.db.WithContext(ctx).Model(&models.Merchant{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Merchant
	find := r.db.WithContext(ctx)
	if status != "" {
		find = find.Where("status = ?", status)
	}
	if err := find.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var merchants []*entities.Merchant
	for i := range ms {
		merchants = append(merchants, merchantToEntity(&ms[i]))
	}
	return merchants, int(total), nil
}

// Update updates a merchant's profile
func (r *MerchantRepository) Update(ctx context.Context, merchant *entities.Merchant) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Merchant{}).
		Where("id = ?", merchant.ID).
		Updates(map[string]interface{}{
			"shop_name":       merchant.ShopName,
			"bio":             merchant.Bio.Ptr(),
			"wilaya":          merchant.Wilaya,
			"phone":           merchant.Phone,
			"commission_rate": merchant.CommissionRate.Ptr(),
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus updates merchant status, stamping verified_at on approval
func (r *MerchantRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MerchantStatus) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}
	if status == entities.MerchantStatusApproved {
		updates["verified_at"] = now
	}

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Merchant{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a merchant
func (r *MerchantRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Merchant{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func merchantToEntity(m *models.Merchant) *entities.Merchant {
	return &entities.Merchant{
		ID:             m.ID,
		UserID:         m.UserID,
		ShopName:       m.ShopName,
		Bio:            null.StringFromPtr(m.Bio),
		Wilaya:         m.Wilaya,
		Phone:          m.Phone,
		Status:         entities.MerchantStatus(m.Status),
		CommissionRate: null.Float64FromPtr(m.CommissionRate),
		VerifiedAt:     null.TimeFromPtr(m.VerifiedAt),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
