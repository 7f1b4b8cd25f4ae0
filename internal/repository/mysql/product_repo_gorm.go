package mysql

import (
	"errors"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Save(product *domain.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		log.Printf("product save error: %v", err)
		return err
	}
	return nil
}

func (r *productRepo) FindByID(id uint64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.Preload("Category").First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByNumber(productNumber string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.Where("product_number = ?", productNumber).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindAll(categoryID uint64) ([]domain.Product, error) {
	q := r.db.Preload("Category").Order("created_at desc")
	if categoryID != 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	var out []domain.Product
	if err := q.Find(&out).Error; err != nil {
		log.Printf("product list error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *productRepo) Patch(id uint64, fields map[string]any) (*domain.Product, error) {
	result := r.db.Model(&domain.Product{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		log.Printf("product patch error: %v", result.Error)
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing row from a no-op patch.
		var n int64
		if err := r.db.Model(&domain.Product{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}
	}
	return r.FindByID(id)
}

func (r *productRepo) Delete(id uint64) error {
	result := r.db.Delete(&domain.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
