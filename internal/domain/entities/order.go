package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// OrderStatus represents order lifecycle status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// orderStatusRank orders the forward progression of an order.
var orderStatusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusConfirmed:  1,
	OrderStatusProcessing: 2,
	OrderStatusShipped:    3,
	OrderStatusDelivered:  4,
}

// IsValid reports whether the status belongs to the closed vocabulary.
func (s OrderStatus) IsValid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := orderStatusRank[s]
	return ok
}

// CanTransitionTo reports whether the transition s -> next is legal.
// Orders only move forward; cancelled is terminal and reachable from
// any non-delivered state.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == OrderStatusCancelled || s == OrderStatusDelivered {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	curRank, ok := orderStatusRank[s]
	if !ok {
		return false
	}
	nextRank, ok := orderStatusRank[next]
	if !ok {
		return false
	}
	return nextRank > curRank
}

// Order represents a customer order aggregate
type Order struct {
	ID           uuid.UUID  `json:"id"`
	OrderNumber  string     `json:"orderNumber"`
	CustomerID   uuid.UUID  `json:"customerId"`
	CouponID     *uuid.UUID `json:"couponId,omitempty"`
	Subtotal     int64      `json:"subtotal"`
	Discount     int64      `json:"discount"`
	ShippingCost int64      `json:"shippingCost"`
	Total        int64      `json:"total"`

	// Shipping destination
	RecipientName  string      `json:"recipientName"`
	RecipientPhone string      `json:"recipientPhone"`
	Address        string      `json:"address"`
	City           string      `json:"city"`
	Region         string      `json:"region"`
	Notes          null.String `json:"notes,omitempty"`

	Status OrderStatus `json:"status"`
	// Mirror of the latest tracking point, kept denormalized so status
	// display does not scan the tracking trail.
	CurrentLocation null.String `json:"currentLocation,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"-"`

	// Joins
	Items   []OrderItem `json:"items,omitempty"`
	Payment *Payment    `json:"payment,omitempty"`
}

// OrderItem represents one line of an order. Product name, image and
// price are snapshots taken at purchase time so historical orders stay
// stable when the catalog changes.
type OrderItem struct {
	ID           uuid.UUID `json:"id"`
	OrderID      uuid.UUID `json:"orderId"`
	ProductID    uuid.UUID `json:"productId"`
	MerchantID   uuid.UUID `json:"merchantId"`
	ProductName  string    `json:"productName"`
	ProductImage string    `json:"productImage"`
	UnitPrice    int64     `json:"unitPrice"`
	Quantity     int       `json:"quantity"`
	LineTotal    int64     `json:"lineTotal"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CheckoutItemInput represents one cart line submitted at checkout
type CheckoutItemInput struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CheckoutInput represents input for placing an order
type CheckoutInput struct {
	Items          []CheckoutItemInput `json:"items" binding:"required"`
	RecipientName  string              `json:"recipientName" binding:"required,min=2,max=100"`
	RecipientPhone string              `json:"recipientPhone" binding:"required"`
	Address        string              `json:"address" binding:"required"`
	City           string              `json:"city"`
	Region         string              `json:"region" binding:"required"`
	Notes          string              `json:"notes,omitempty"`
	PaymentMethod  PaymentMethod       `json:"paymentMethod" binding:"required"`
	CouponCode     string              `json:"couponCode,omitempty"`
	ProofFileURL   string              `json:"proofFileUrl,omitempty"`
}

// CheckoutResponse represents the result of a successful checkout
type CheckoutResponse struct {
	OrderID       uuid.UUID     `json:"orderId"`
	OrderNumber   string        `json:"orderNumber"`
	Subtotal      int64         `json:"subtotal"`
	Discount      int64         `json:"discount"`
	ShippingCost  int64         `json:"shippingCost"`
	Total         int64         `json:"total"`
	OrderStatus   OrderStatus   `json:"orderStatus"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}
