package repositories

import (
	"context"

	"github.com/google/uuid"
	"qfifat.backend/internal/domain/entities"
)

// OrderRepository defines order data operations
type OrderRepository interface {
	// Create persists the order together with its line items.
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*entities.Order, error)
	GetByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entities.Order, int, error)
	List(ctx context.Context, status entities.OrderStatus, limit, offset int) ([]*entities.Order, int, error)
	// UpdateStatus transitions the order from one status to another.
	// The update is conditional on the current status so concurrent or
	// repeated transitions cannot double-apply.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.OrderStatus) error
	// SetCurrentState mirrors the newest tracking point onto the order.
	SetCurrentState(ctx context.Context, id uuid.UUID, status entities.OrderStatus, location string) error
}

// OrderItemRepository defines order line item read operations
type OrderItemRepository interface {
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entities.OrderItem, error)
	GetByMerchantID(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]*entities.OrderItem, int, error)
}
