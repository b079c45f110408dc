package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"qfifat.backend/internal/domain/entities"
	domainerrors "qfifat.backend/internal/domain/errors"
	"qfifat.backend/internal/domain/repositories"
)

// ProductUsecase handles catalog business logic
type ProductUsecase struct {
	productRepo  repositories.ProductRepository
	merchantRepo repositories.MerchantRepository
}

// NewProductUsecase creates a new product usecase
func NewProductUsecase(
	productRepo repositories.ProductRepository,
	merchantRepo repositories.MerchantRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		merchantRepo: merchantRepo,
	}
}

// Create adds a product to an approved merchant's shop
func (u *ProductUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateProductInput) (*entities.Product, error) {
	merchant, err := u.approvedMerchant(ctx, userID)
	if err != nil {
		return nil, err
	}

	product := &entities.Product{
		MerchantID:  merchant.ID,
		Name:        input.Name,
		Description: nullStringFrom(input.Description),
		ImageURL:    input.ImageURL,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    nullStringFrom(input.Category),
		IsActive:    true,
	}

	if err := u.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update updates a product owned by the calling merchant
func (u *ProductUsecase) Update(ctx context.Context, userID, productID uuid.UUID, input *entities.UpdateProductInput) (*entities.Product, error) {
	merchant, err := u.approvedMerchant(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.MerchantID != merchant.ID {
		return nil, domainerrors.ErrForbidden
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = nullStringFrom(*input.Description)
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	if input.Price != nil {
		if *input.Price < 1 {
			return nil, domainerrors.ErrInvalidInput
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, domainerrors.ErrInvalidInput
		}
		product.Stock = *input.Stock
	}
	if input.Category != nil {
		product.Category = nullStringFrom(*input.Category)
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := u.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete soft deletes a product owned by the calling merchant
func (u *ProductUsecase) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	merchant, err := u.approvedMerchant(ctx, userID)
	if err != nil {
		return err
	}

	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.MerchantID != merchant.ID {
		return domainerrors.ErrForbidden
	}

	return u.productRepo.SoftDelete(ctx, productID)
}

// GetByID gets a product by ID
func (u *ProductUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	return u.productRepo.GetByID(ctx, id)
}

// List lists active products for the storefront
func (u *ProductUsecase) List(ctx context.Context, limit, offset int) ([]*entities.Product, int, error) {
	return u.productRepo.List(ctx, true, limit, offset)
}

// ListMine lists the calling merchant's products, active or not
func (u *ProductUsecase) ListMine(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Product, int, error) {
	merchant, err := u.merchantRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return u.productRepo.GetByMerchantID(ctx, merchant.ID, limit, offset)
}

func (u *ProductUsecase) approvedMerchant(ctx context.Context, userID uuid.UUID) (*entities.Merchant, error) {
	merchant, err := u.merchantRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if merchant.Status != entities.MerchantStatusApproved {
		return nil, domainerrors.ErrMerchantNotApproved
	}
	return merchant, nil
}

func nullStringFrom(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
