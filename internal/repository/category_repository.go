package repository

import (
	"storefront-service/internal/domain"
)

type CategoryRepository interface {
	Save(category *domain.Category) error
	FindByID(id uint64) (*domain.Category, error)
	// FindByNameOrSlug backs the create-time collision check.
	FindByNameOrSlug(name, slug string) (*domain.Category, error)
	FindAll() ([]domain.CategoryWithCount, error)
	Update(category *domain.Category) error
	Delete(id uint64) error
	CountProducts(categoryID uint64) (int64, error)
}
