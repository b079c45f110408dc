package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrderID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Method          string     `gorm:"type:varchar(20);not null"`
	Amount          int64      `gorm:"not null"`
	Status          string     `gorm:"type:varchar(20);not null;index"`
	VerifiedBy      *uuid.UUID `gorm:"type:uuid"`
	VerifiedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Proofs []PaymentProof `gorm:"foreignKey:PaymentID"`
}

type PaymentProof struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	PaymentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	FileURL    string    `gorm:"type:varchar(500);not null"`
	UploadedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
}
