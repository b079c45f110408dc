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

// ProductRepository implements product data operations
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *entities.Product) error {
	m := r.fromEntity(product)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	product.ID = m.ID
	return nil
}

// GetByID gets a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	var m models.Product
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByIDs gets multiple products in one query
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ms []models.Product
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&ms).Error; err != nil {
		return nil, err
	}

	var products []*entities.Product
	for i := range ms {
		products = append(products, r.toEntity(&ms[i]))
	}
	return products, nil
}

// List gets products with pagination
func (r *ProductRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*entities.Product, int, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Product
	find := r.db.WithContext(ctx)
	if activeOnly {
		find = find.Where("is_active = ?", true)
	}
	if err := find.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var products []*entities.Product
	for i := range ms {
		products = append(products, r.toEntity(&ms[i]))
	}
	return products, int(total), nil
}

// GetByMerchantID gets a merchant's products with pagination
func (r *ProductRepository) GetByMerchantID(ctx context.Context, merchantID uuid.UUID, limit, offset int) ([]*entities.Product, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("merchant_id = ?", merchantID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Product
	if err := r.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var products []*entities.Product
	for i := range ms {
		products = append(products, r.toEntity(&ms[i]))
	}
	return products, int(total), nil
}

// Update updates a product
func (r *ProductRepository) Update(ctx context.Context, product *entities.Product) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description.Ptr(),
			"image_url":   product.ImageURL,
			"price":       product.Price,
			"stock":       product.Stock,
			"category":    product.Category.Ptr(),
			"is_active":   product.IsActive,
			"updated_at":  time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a product
func (r *ProductRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DecrementStock subtracts quantity from stock in a single conditional
// update; the stock check lives in the WHERE clause so concurrent
// checkouts cannot oversell.
func (r *ProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND is_active = ? AND stock >= ?", id, true, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrOutOfStock
	}
	return nil
}

// IncrementStock returns quantity to stock after a cancellation
func (r *ProductRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock + ?", quantity),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) fromEntity(product *entities.Product) *models.Product {
	return &models.Product{
		ID:          product.ID,
		MerchantID:  product.MerchantID,
		Name:        product.Name,
		Description: product.Description.Ptr(),
		ImageURL:    product.ImageURL,
		Price:       product.Price,
		Stock:       product.Stock,
		Category:    product.Category.Ptr(),
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func (r *ProductRepository) toEntity(m *models.Product) *entities.Product {
	return &entities.Product{
		ID:          m.ID,
		MerchantID:  m.MerchantID,
		Name:        m.Name,
		Description: null.StringFromPtr(m.Description),
		ImageURL:    m.ImageURL,
		Price:       m.Price,
		Stock:       m.Stock,
		Category:    null.StringFromPtr(m.Category),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
