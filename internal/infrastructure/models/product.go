package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Description *string   `gorm:"type:text"`
	ImageURL    string    `gorm:"type:varchar(500)"`
	Price       int64     `gorm:"not null"`
	Stock       int       `gorm:"not null;default:0"`
	Category    *string   `gorm:"type:varchar(100);index"`
	IsActive    bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
