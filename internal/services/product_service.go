package services

import (
	"errors"
	"fmt"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type CreateProductInput struct {
	Name          string
	Description   string
	ProductNumber string
	Price         float64
	Stock         int
	CategoryID    uint64
	ImageURL      string
	Images        []string
	IsActive      *bool
}

// UpdateProductInput carries partial-patch semantics: nil means leave
// the field alone. IsActive is here so the activate/deactivate toggle
// works as a one-field patch.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	ProductNumber *string
	Price         *float64
	Stock         *int
	CategoryID    *uint64
	ImageURL      *string
	Images        []string
	IsActive      *bool
}

type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(r repository.ProductRepository) *ProductService {
	return &ProductService{repo: r}
}

func (s *ProductService) List(categoryID uint64) ([]domain.Product, error) {
	return s.repo.FindAll(categoryID)
}

func (s *ProductService) Create(in CreateProductInput) (*domain.Product, error) {
	if in.Name == "" || in.ProductNumber == "" || in.CategoryID == 0 || in.ImageURL == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrValidation)
	}

	existing, err := s.repo.FindByNumber(in.ProductNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: product number already exists", ErrConflict)
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	product := &domain.Product{
		Name:          in.Name,
		Description:   in.Description,
		ProductNumber: in.ProductNumber,
		Price:         in.Price,
		Stock:         in.Stock,
		CategoryID:    in.CategoryID,
		ImageURL:      in.ImageURL,
		Images:        in.Images,
		IsActive:      isActive,
	}
	if err := s.repo.Save(product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: product number already exists", ErrConflict)
		}
		return nil, err
	}
	return s.repo.FindByID(product.ID)
}

func (s *ProductService) Update(id uint64, in UpdateProductInput) (*domain.Product, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: product id is required", ErrValidation)
	}

	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.ProductNumber != nil {
		fields["product_number"] = *in.ProductNumber
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
		}
		fields["price"] = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must not be negative", ErrValidation)
		}
		fields["stock"] = *in.Stock
	}
	if in.CategoryID != nil {
		fields["category_id"] = *in.CategoryID
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.Images != nil {
		fields["images"] = in.Images
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	product, err := s.repo.Patch(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: product number already exists", ErrConflict)
		}
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product not found", ErrNotFound)
	}
	return product, nil
}

// Delete is a hard delete with no dependency checks; order items keep
// their own snapshots.
func (s *ProductService) Delete(id uint64) error {
	if id == 0 {
		return fmt.Errorf("%w: product id is required", ErrValidation)
	}
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product not found", ErrNotFound)
		}
		return err
	}
	return nil
}
