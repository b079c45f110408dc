package repositories

import (
	"context"

	"github.com/google/uuid"
	"qfifat.backend/internal/domain/entities"
)

// TrackingRepository defines shipment tracking data operations.
// The trail is append-only: no update or delete operations exist.
type TrackingRepository interface {
	Append(ctx context.Context, point *entities.TrackingPoint) error
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entities.TrackingPoint, error)
	GetLatestByOrderID(ctx context.Context, orderID uuid.UUID) (*entities.TrackingPoint, error)
}
