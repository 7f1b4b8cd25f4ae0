package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name, collapses every run of non-alphanumeric
// characters into a single hyphen and trims leading/trailing hyphens.
// Applying it to an already-valid slug returns the same string.
func Slugify(name string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

type CategoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(r repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: r}
}

func (s *CategoryService) List() ([]domain.CategoryWithCount, error) {
	return s.repo.FindAll()
}

func (s *CategoryService) Create(name, description string) (*domain.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	slug := Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("%w: category name must contain letters or digits", ErrValidation)
	}

	existing, err := s.repo.FindByNameOrSlug(name, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: category name or slug already exists", ErrConflict)
	}

	category := &domain.Category{
		Name:        name,
		Slug:        slug,
		Description: description,
	}
	if err := s.repo.Save(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category name or slug already exists", ErrConflict)
		}
		return nil, err
	}
	return category, nil
}

// Update re-derives the slug only when a new name is supplied.
func (s *CategoryService) Update(id uint64, name, description *string) (*domain.Category, error) {
	if id == 0 {
		return nil, fmt.Errorf("%w: category id is required", ErrValidation)
	}
	category, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category not found", ErrNotFound)
	}

	if name != nil {
		slug := Slugify(*name)
		if slug == "" {
			return nil, fmt.Errorf("%w: category name must contain letters or digits", ErrValidation)
		}
		category.Name = *name
		category.Slug = slug
	}
	if description != nil {
		category.Description = *description
	}

	if err := s.repo.Update(category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: category name or slug already exists", ErrConflict)
		}
		return nil, err
	}
	return category, nil
}

// Delete refuses to remove a category that still owns products; the
// error carries the count so the admin UI can show it.
func (s *CategoryService) Delete(id uint64) error {
	if id == 0 {
		return fmt.Errorf("%w: category id is required", ErrValidation)
	}
	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: cannot delete category, it has %d product(s); move or delete the products first", ErrConflict, count)
	}
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: category not found", ErrNotFound)
		}
		return err
	}
	return nil
}
