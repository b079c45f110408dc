package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"qfifat.backend/internal/domain/entities"
	"qfifat.backend/internal/infrastructure/models"
)

// OrderItemRepository implements order line item read operations
type OrderItemRepository struct {
	db *gorm.DB
}

// NewOrderItemRepository creates a new order item repository
func NewOrderItemRepository(db *gorm.DB) *OrderItemRepository {
	return &OrderItemRepository{db: db}
}

// GetByOrderID gets all line items belonging to an order
func (r *OrderItemRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entities.OrderItem, error) {
	var ms []models.OrderItem
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var items []*entities.OrderItem
	for i := range ms {
		items = append(items, orderItemToEntity(&ms[i]))
	}
	return items, nil
}

// GetByMerchantID gets a merchant's sold line items with pagination,
// newest first.
func (r *OrderItemRepository) GetByMerchantID(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]*entities.OrderItem, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("merchant_id = ?", merchantID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.OrderItem
	if err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var items []*entities.OrderItem
	for i := range ms {
		items = append(items, orderItemToEntity(&ms[i]))
	}
	return items, int(total), nil
}

func orderItemToEntity(m *models.OrderItem) *entities.OrderItem {
	return &entities.OrderItem{
		ID:           m.ID,
		OrderID:      m.OrderID,
		ProductID:    m.ProductID,
		MerchantID:   m.MerchantID,
		ProductName:  m.ProductName,
		ProductImage: m.ProductImage,
		UnitPrice:    m.UnitPrice,
		Quantity:     m.Quantity,
		LineTotal:    m.LineTotal,
		CreatedAt:    m.CreatedAt,
	}
}
