package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/infrastructure/models"
)

// OrderRepository implements order data operations
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order together with its line items in one insert
// batch. Callers wrap this in a UnitOfWork when other writes belong to
// the same checkout.
func (r *OrderRepository) Create(ctx context.Context, order *entities.Order) error {
	m := r.fromEntity(order)

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	// Propagate generated IDs back so follow-up writes in the same
	// transaction can reference them.
	order.ID = m.ID
	for i := range m.Items {
		order.Items[i].ID = m.Items[i].ID
		order.Items[i].OrderID = m.ID
	}
	return nil
}

// GetByID gets an order with its items and payment
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	var m models.Order
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Items").Preload("Payment").Preload("Payment.Proofs").
		Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByOrderNumber gets an order by its human-readable number
func (r *OrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*entities.Order, error) {
	var m models.Order
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Items").Preload("Payment").
		Where("order_number = ?", orderNumber).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByCustomerID gets a customer's orders with pagination
func (r *OrderRepository) GetByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entities.Order, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("customer_id = ?", customerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").Preload("Payment").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var orders []*entities.Order
	for i := range ms {
		orders = append(orders, r.toEntity(&ms[i]))
	}
	return orders, int(total), nil
}

// List gets orders with optional status filter
func (r *OrderRepository) List(ctx context.Context, status entities.OrderStatus, limit, offset int) ([]*entities.Order, int, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Order
	find := r.db.WithContext(ctx).Preload("Items").Preload("Payment")
	if status != "" {
		find = find.Where("status = ?", status)
	}
	if err := find.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var orders []*entities.Order
	for i := range ms {
		orders = append(orders, r.toEntity(&ms[i]))
	}
	return orders, int(total), nil
}

// UpdateStatus transitions the order status. The WHERE clause pins the
// current status so a repeated or concurrent transition affects zero
// rows instead of double-applying.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.OrderStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlreadyProcessed
	}
	return nil
}

// SetCurrentState mirrors the newest tracking point onto the order
func (r *OrderRepository) SetCurrentState(ctx context.Context, id uuid.UUID, status entities.OrderStatus, location string) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status,
			"current_location": location,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) fromEntity(order *entities.Order) *models.Order {
	m := &models.Order{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		CustomerID:     order.CustomerID,
		CouponID:       order.CouponID,
		Subtotal:       order.Subtotal,
		Discount:       order.Discount,
		ShippingCost:   order.ShippingCost,
		Total:          order.Total,
		RecipientName:  order.RecipientName,
		RecipientPhone: order.RecipientPhone,
		Address:        order.Address,
		City:           order.City,
		Region:         order.Region,
		Notes:          order.Notes.Ptr(),
		Status:         string(order.Status),
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
	for _, item := range order.Items {
		m.Items = append(m.Items, models.OrderItem{
			ID:           item.ID,
			ProductID:    item.ProductID,
			MerchantID:   item.MerchantID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			LineTotal:    item.LineTotal,
			CreatedAt:    item.CreatedAt,
		})
	}
	return m
}

func (r *OrderRepository) toEntity(m *models.Order) *entities.Order {
	o := &entities.Order{
		ID:              m.ID,
		OrderNumber:     m.OrderNumber,
		CustomerID:      m.CustomerID,
		CouponID:        m.CouponID,
		Subtotal:        m.Subtotal,
		Discount:        m.Discount,
		ShippingCost:    m.ShippingCost,
		Total:           m.Total,
		RecipientName:   m.RecipientName,
		RecipientPhone:  m.RecipientPhone,
		Address:         m.Address,
		City:            m.City,
		Region:          m.Region,
		Notes:           null.StringFromPtr(m.Notes),
		Status:          entities.OrderStatus(m.Status),
		CurrentLocation: null.StringFromPtr(m.CurrentLocation),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, item := range m.Items {
		o.Items = append(o.Items, entities.OrderItem{
			ID:           item.ID,
			OrderID:      item.OrderID,
			ProductID:    item.ProductID,
			MerchantID:   item.MerchantID,
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			LineTotal:    item.LineTotal,
			CreatedAt:    item.CreatedAt,
		})
	}
	if m.Payment != nil {
		o.Payment = paymentToEntity(m.Payment)
	}
	return o
}
