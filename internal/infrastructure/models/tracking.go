package models

import (
	"time"

	"github.com/google/uuid"
)

type TrackingPoint struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(20);not null"`
	Location    string    `gorm:"type:varchar(255);not null"`
	Latitude    *float64
	Longitude   *float64
	Description *string `gorm:"type:text"`
	CreatedAt   time.Time
}
