package notify

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"qfifat.backend/internal/domain/entities"
	"qfifat.backend/internal/usecases"
	"qfifat.backend/pkg/redis"
)

// TrackingChannel returns the pub/sub channel carrying one order's
// tracking updates.
func TrackingChannel(orderID uuid.UUID) string {
	return usecases.TrackingChannelPrefix + orderID.String()
}

// RedisTrackingPublisher fans tracking points out over Redis pub/sub
// so storefront clients can follow a shipment live.
type RedisTrackingPublisher struct{}

// NewRedisTrackingPublisher creates a new tracking publisher
func NewRedisTrackingPublisher() *RedisTrackingPublisher {
	return &RedisTrackingPublisher{}
}

// PublishTrackingUpdate publishes a tracking point as JSON on the
// order's channel
func (p *RedisTrackingPublisher) PublishTrackingUpdate(ctx context.Context, point *entities.TrackingPoint) error {
	payload, err := json.Marshal(point)
	if err != nil {
		return err
	}
	return redis.Publish(ctx, TrackingChannel(point.OrderID), payload)
}
