package repository

import (
	"storefront-service/internal/domain"
)

type ProductRepository interface {
	Save(product *domain.Product) error
	FindByID(id uint64) (*domain.Product, error)
	FindByNumber(productNumber string) (*domain.Product, error)
	// FindAll returns newest first; categoryID 0 means no filter.
	FindAll(categoryID uint64) ([]domain.Product, error)
	// Patch applies only the supplied columns, so a false isActive or a
	// zero stock still lands.
	Patch(id uint64, fields map[string]any) (*domain.Product, error)
	Delete(id uint64) error
}
