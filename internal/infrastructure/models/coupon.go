package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Coupon struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Code           string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	DiscountType   string    `gorm:"type:varchar(20);not null"`
	DiscountValue  int64     `gorm:"not null"`
	MinOrderAmount int64     `gorm:"not null;default:0"`
	MaxUses        *int
	UsedCount      int  `gorm:"not null;default:0"`
	IsActive       bool `gorm:"not null;default:true;index"`
	StartsAt       *time.Time
	ExpiresAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
