package repositories

import (
	"context"

	"github.com/google/uuid"
	"qfifat.backend/internal/domain/entities"
)

// ProductRepository defines product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Product, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*entities.Product, int, error)
	GetByMerchantID(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]*entities.Product, int, error)
	Update(ctx context.Context, product *entities.Product) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// DecrementStock subtracts quantity from stock as a single
	// conditional update, failing with ErrOutOfStock when the remaining
	// stock does not cover the quantity.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	// IncrementStock returns quantity to stock, used when an order is
	// cancelled before shipment.
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}
