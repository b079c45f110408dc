package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/infrastructure/models"
)

// TrackingRepository implements shipment tracking data operations.
// Points are only ever inserted; there is deliberately no update or
// delete path.
type TrackingRepository struct {
	db *gorm.DB
}

// NewTrackingRepository creates a new tracking repository
func NewTrackingRepository(db *gorm.DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

// Append inserts a new tracking point
func (r *TrackingRepository) Append(ctx context.Context, point *entities.TrackingPoint) error {
	m := &models.TrackingPoint{
		ID:          point.ID,
		OrderID:     point.OrderID,
		Status:      string(point.Status),
		Location:    point.Location,
		Latitude:    point.Latitude.Ptr(),
		Longitude:   point.Longitude.Ptr(),
		Description: point.Description.Ptr(),
		CreatedAt:   point.CreatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	point.ID = m.ID
	return nil
}

// GetByOrderID gets the full trail of an order, oldest first
func (r *TrackingRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entities.TrackingPoint, error) {
	var ms []models.TrackingPoint
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var points []*entities.TrackingPoint
	for i := range ms {
		points = append(points, trackingToEntity(&ms[i]))
	}
	return points, nil
}

// GetLatestByOrderID gets the newest tracking point of an order
func (r *TrackingRepository) GetLatestByOrderID(ctx context.Context, orderID uuid.UUID) (*entities.TrackingPoint, error) {
	var m models.TrackingPoint
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return trackingToEntity(&m), nil
}

func trackingToEntity(m *models.TrackingPoint) *entities.TrackingPoint {
	return &entities.TrackingPoint{
		ID:          m.ID,
		OrderID:     m.OrderID,
		Status:      entities.OrderStatus(m.Status),
		Location:    m.Location,
		Latitude:    null.Float64FromPtr(m.Latitude),
		Longitude:   null.Float64FromPtr(m.Longitude),
		Description: null.StringFromPtr(m.Description),
		CreatedAt:   m.CreatedAt,
	}
}
