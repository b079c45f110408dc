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

// PaymentRepository implements payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	m := &models.Payment{
		ID:         payment.ID,
		OrderID:    payment.OrderID,
		Method:     string(payment.Method),
		Amount:     payment.Amount,
		Status:     string(payment.Status),
		VerifiedBy: payment.VerifiedBy,
		CreatedAt:  payment.CreatedAt,
		UpdatedAt:  payment.UpdatedAt,
	}
	if payment.VerifiedAt.Valid {
		t := payment.VerifiedAt.Time
		m.VerifiedAt = &t
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	payment.ID = m.ID
	return nil
}

// GetByID gets a payment with its proofs
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Proofs").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return paymentToEntity(&m), nil
}

// GetByOrderID gets the payment of an order
func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Proofs").Where("order_id = ?", orderID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return paymentToEntity(&m), nil
}

// ListByStatus gets payments in a status with pagination
func (r *PaymentRepository) ListByStatus(ctx context.Context, status entities.PaymentStatus, limit, offset int) ([]*entities.Payment, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("status = ?", status).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Payment
	if err := r.db.WithContext(ctx).
		Preload("Proofs").
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var payments []*entities.Payment
	for i := range ms {
		payments = append(payments, paymentToEntity(&ms[i]))
	}
	return payments, int(total), nil
}

// AddProof attaches an uploaded proof to a payment
func (r *PaymentRepository) AddProof(ctx context.Context, proof *entities.PaymentProof) error {
	m := &models.PaymentProof{
		ID:         proof.ID,
		PaymentID:  proof.PaymentID,
		FileURL:    proof.FileURL,
		UploadedBy: proof.UploadedBy,
		CreatedAt:  proof.CreatedAt,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	proof.ID = m.ID
	return nil
}

// CountProofs counts proofs attached to a payment
func (r *PaymentRepository) CountProofs(ctx context.Context, paymentID uuid.UUID) (int64, error) {
	var count int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.PaymentProof{}).
		Where("payment_id = ?", paymentID).
		Count(&count).Error
	return count, err
}

// MarkVerified moves a pending payment to verified. The conditional
// WHERE makes a repeat verification affect zero rows.
func (r *PaymentRepository) MarkVerified(ctx context.Context, id uuid.UUID, verifier uuid.UUID, at time.Time) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, entities.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":      entities.PaymentStatusVerified,
			"verified_by": verifier,
			"verified_at": at,
			"updated_at":  at,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlreadyProcessed
	}
	return nil
}

// MarkFailed moves a pending payment to failed with the reason
func (r *PaymentRepository) MarkFailed(ctx context.Context, id uuid.UUID, verifier uuid.UUID, reason string, at time.Time) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, entities.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":           entities.PaymentStatusFailed,
			"verified_by":      verifier,
			"verified_at":      at,
			"rejection_reason": reason,
			"updated_at":       at,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlreadyProcessed
	}
	return nil
}

// MarkRefunded moves a verified payment to refunded
func (r *PaymentRepository) MarkRefunded(ctx context.Context, id uuid.UUID, at time.Time) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, entities.PaymentStatusVerified).
		Updates(map[string]interface{}{
			"status":     entities.PaymentStatusRefunded,
			"updated_at": at,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlreadyProcessed
	}
	return nil
}

func paymentToEntity(m *models.Payment) *entities.Payment {
	p := &entities.Payment{
		ID:              m.ID,
		OrderID:         m.OrderID,
		Method:          entities.PaymentMethod(m.Method),
		Amount:          m.Amount,
		Status:          entities.PaymentStatus(m.Status),
		VerifiedBy:      m.VerifiedBy,
		RejectionReason: null.StringFromPtr(m.RejectionReason),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.VerifiedAt != nil {
		p.VerifiedAt = null.TimeFrom(*m.VerifiedAt)
	}
	for _, proof := range m.Proofs {
		p.Proofs = append(p.Proofs, entities.PaymentProof{
			ID:         proof.ID,
			PaymentID:  proof.PaymentID,
			FileURL:    proof.FileURL,
			UploadedBy: proof.UploadedBy,
			CreatedAt:  proof.CreatedAt,
		})
	}
	return p
}
