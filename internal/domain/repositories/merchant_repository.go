package repositories

import (
	"context"

	"github.com/google/uuid"
	"qfifat.backend/internal/domain/entities"
)

// MerchantRepository defines merchant data operations
type MerchantRepository interface {
	Create(ctx context.Context, merchant *entities.Merchant) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Merchant, error)
	// LockByID takes the merchant's row lock for the rest of the
	// transaction, serializing balance math against the merchant.
	LockByID(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, status entities.MerchantStatus, limit, offset int) ([]*entities.Merchant, int, error)
	Update(ctx context.Context, merchant *entities.Merchant) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MerchantStatus) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context, limit, offset int) ([]*entities.User, int, error)
	Update(ctx context.Context, user *entities.User) error
}
