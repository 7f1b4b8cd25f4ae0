package repository

import (
	"storefront-service/internal/domain"
)

type SavedCartRepository interface {
	// Save persists the cart and all of its items in one transaction.
	// A cart-code collision surfaces as gorm.ErrDuplicatedKey.
	Save(cart *domain.SavedCart) error
	FindByCode(cartCode string) (*domain.SavedCart, error)
	FindAll() ([]domain.SavedCart, error)
	Delete(id uint64) error
}
