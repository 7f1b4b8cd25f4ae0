package mysql

import (
	"errors"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Save(category *domain.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		log.Printf("category save error: %v", err)
		return err
	}
	return nil
}

func (r *categoryRepo) FindByID(id uint64) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) FindByNameOrSlug(name, slug string) (*domain.Category, error) {
	var c domain.Category
	err := r.db.Where("name = ? OR slug = ?", name, slug).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) FindAll() ([]domain.CategoryWithCount, error) {
	var out []domain.CategoryWithCount
	err := r.db.Model(&domain.Category{}).
		Select("categories.*, count(products.id) as products_count").
		Joins("left join products on products.category_id = categories.id").
		Group("categories.id").
		Order("categories.name asc").
		Scan(&out).Error
	if err != nil {
		log.Printf("category list error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) Update(category *domain.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepo) Delete(id uint64) error {
	result := r.db.Delete(&domain.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *categoryRepo) CountProducts(categoryID uint64) (int64, error) {
	var n int64
	err := r.db.Model(&domain.Product{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}
