package mysql

import (
	"errors"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Save(order *domain.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		log.Printf("order save error: %v", err)
		return err
	}
	return nil
}

func (r *orderRepo) FindByID(id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.Preload("Items.Product").First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindAll() ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Preload("Items.Product").Order("created_at desc").Find(&out).Error
	if err != nil {
		log.Printf("order list error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) Patch(id uint64, fields map[string]any) (*domain.Order, error) {
	result := r.db.Model(&domain.Order{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		log.Printf("order patch error: %v", result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		var n int64
		if err := r.db.Model(&domain.Order{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}
	}
	return r.FindByID(id)
}
