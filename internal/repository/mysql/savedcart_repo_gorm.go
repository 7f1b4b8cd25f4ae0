package mysql

import (
	"errors"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type savedCartRepo struct {
	db *gorm.DB
}

func NewSavedCartRepository(db *gorm.DB) repository.SavedCartRepository {
	return &savedCartRepo{db: db}
}

// Save inserts the cart row and its item rows together; gorm wraps the
// association create in one transaction, so a code collision rolls back
// the whole snapshot.
func (r *savedCartRepo) Save(cart *domain.SavedCart) error {
	if err := r.db.Create(cart).Error; err != nil {
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("saved cart save error: %v", err)
		}
		return err
	}
	return nil
}

func (r *savedCartRepo) FindByCode(cartCode string) (*domain.SavedCart, error) {
	var c domain.SavedCart
	err := r.db.Preload("Items.Product").Where("cart_code = ?", cartCode).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *savedCartRepo) FindAll() ([]domain.SavedCart, error) {
	var out []domain.SavedCart
	err := r.db.Preload("Items.Product").Order("created_at desc").Find(&out).Error
	if err != nil {
		log.Printf("saved cart list error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *savedCartRepo) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&domain.SavedCartItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.SavedCart{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
