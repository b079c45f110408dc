package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrderNumber     string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	CouponID        *uuid.UUID `gorm:"type:uuid;index"`
	Subtotal        int64      `gorm:"not null"`
	Discount        int64      `gorm:"not null;default:0"`
	ShippingCost    int64      `gorm:"not null"`
	Total           int64      `gorm:"not null"`
	RecipientName   string     `gorm:"type:varchar(100);not null"`
	RecipientPhone  string     `gorm:"type:varchar(30);not null"`
	Address         string     `gorm:"type:varchar(500);not null"`
	City            string     `gorm:"type:varchar(100)"`
	Region          string     `gorm:"type:varchar(100);not null"`
	Notes           *string    `gorm:"type:text"`
	Status          string     `gorm:"type:varchar(20);not null;index"`
	CurrentLocation *string    `gorm:"type:varchar(255)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`

	Items   []OrderItem `gorm:"foreignKey:OrderID"`
	Payment *Payment    `gorm:"foreignKey:OrderID"`
}

type OrderItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index"`
	MerchantID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName  string    `gorm:"type:varchar(200);not null"`
	ProductImage string    `gorm:"type:varchar(500)"`
	UnitPrice    int64     `gorm:"not null"`
	Quantity     int       `gorm:"not null"`
	LineTotal    int64     `gorm:"not null"`
	CreatedAt    time.Time
}
