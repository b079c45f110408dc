package models

import (
	"time"

	"github.com/google/uuid"
)

type MerchantEarning struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID       uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderID          uuid.UUID `gorm:"type:uuid;not null;index"`
	OrderItemID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Amount           int64     `gorm:"not null"`
	CommissionRate   float64   `gorm:"not null"`
	CommissionAmount int64     `gorm:"not null"`
	NetAmount        int64     `gorm:"not null"`
	Status           string    `gorm:"type:varchar(20);not null;index"`
	PaidAt           *time.Time
	CreatedAt        time.Time
}

type WithdrawalRequest struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	MerchantID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount        int64      `gorm:"not null"`
	PayoutMethod  string     `gorm:"type:varchar(50);not null"`
	AccountNumber string     `gorm:"type:varchar(100);not null"`
	AccountHolder string     `gorm:"type:varchar(100);not null"`
	AccountKey    *string    `gorm:"type:varchar(100)"`
	Status        string     `gorm:"type:varchar(20);not null;index"`
	AdminNotes    *string    `gorm:"type:text"`
	ProcessedBy   *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
