package repository

import (
	"storefront-service/internal/domain"
)

type OrderRepository interface {
	Save(order *domain.Order) error
	FindByID(id uint64) (*domain.Order, error)
	FindAll() ([]domain.Order, error)
	// Patch is restricted to status/paymentStatus by the service layer.
	Patch(id uint64, fields map[string]any) (*domain.Order, error)
}
