package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TrackingPoint represents one checkpoint of an order's shipment
// trail. Points are append-only; prior points are never edited.
type TrackingPoint struct {
	ID          uuid.UUID    `json:"id"`
	OrderID     uuid.UUID    `json:"orderId"`
	Status      OrderStatus  `json:"status"`
	Location    string       `json:"location"`
	Latitude    null.Float64 `json:"latitude,omitempty"`
	Longitude   null.Float64 `json:"longitude,omitempty"`
	Description null.String  `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// AppendTrackingInput represents input for appending a tracking point
type AppendTrackingInput struct {
	Status      OrderStatus `json:"status" binding:"required"`
	Location    string      `json:"location" binding:"required"`
	Latitude    *float64    `json:"latitude,omitempty"`
	Longitude   *float64    `json:"longitude,omitempty"`
	Description string      `json:"description,omitempty"`
}
