package services

import (
	"errors"
	"testing"

	"storefront-service/internal/domain"
	"storefront-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spec scenario", "Electronics & Gadgets!!", "electronics-gadgets"},
		{"plain word", "Rings", "rings"},
		{"spaces collapse", "Hair   Accessories", "hair-accessories"},
		{"leading and trailing junk", "  --Sale Items-- ", "sale-items"},
		{"digits kept", "Top 10 Picks", "top-10-picks"},
		{"nothing usable", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.in)
			assert.Equal(t, tt.want, got)
			// Idempotent: a valid slug maps to itself.
			assert.Equal(t, got, Slugify(got))
		})
	}
}

func TestCategoryService_Create(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		description string
		setupMocks  func(*mocks.MockCategoryRepository)
		wantErr     error
		wantSlug    string
	}{
		{
			name:  "successful create derives slug",
			input: "Electronics & Gadgets!!",
			setupMocks: func(repo *mocks.MockCategoryRepository) {
				repo.On("FindByNameOrSlug", "Electronics & Gadgets!!", "electronics-gadgets").Return(nil, nil)
				repo.On("Save", mock.AnythingOfType("*domain.Category")).Return(nil).Run(func(args mock.Arguments) {
					args.Get(0).(*domain.Category).ID = 1
				})
			},
			wantSlug: "electronics-gadgets",
		},
		{
			name:       "empty name rejected",
			input:      "",
			setupMocks: func(repo *mocks.MockCategoryRepository) {},
			wantErr:    ErrValidation,
		},
		{
			name:       "name with no usable characters rejected",
			input:      "!!!",
			setupMocks: func(repo *mocks.MockCategoryRepository) {},
			wantErr:    ErrValidation,
		},
		{
			name:  "existing name conflicts",
			input: "Rings",
			setupMocks: func(repo *mocks.MockCategoryRepository) {
				repo.On("FindByNameOrSlug", "Rings", "rings").Return(&domain.Category{ID: 2, Name: "Rings"}, nil)
			},
			wantErr: ErrConflict,
		},
		{
			name:  "insert race still conflicts",
			input: "Rings",
			setupMocks: func(repo *mocks.MockCategoryRepository) {
				repo.On("FindByNameOrSlug", "Rings", "rings").Return(nil, nil)
				repo.On("Save", mock.AnythingOfType("*domain.Category")).Return(gorm.ErrDuplicatedKey)
			},
			wantErr: ErrConflict,
		},
		{
			name:  "store failure propagates",
			input: "Rings",
			setupMocks: func(repo *mocks.MockCategoryRepository) {
				repo.On("FindByNameOrSlug", "Rings", "rings").Return(nil, errors.New("connection refused"))
			},
			wantErr: nil, // plain error, asserted below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockCategoryRepository)
			tt.setupMocks(repo)
			svc := NewCategoryService(repo)

			category, err := svc.Create(tt.input, tt.description)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, category)
			case tt.wantSlug != "":
				assert.NoError(t, err)
				assert.Equal(t, tt.wantSlug, category.Slug)
				assert.Equal(t, tt.input, category.Name)
			default:
				assert.Error(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestCategoryService_Update(t *testing.T) {
	strptr := func(s string) *string { return &s }

	t.Run("missing category", func(t *testing.T) {
		repo := new(mocks.MockCategoryRepository)
		repo.On("FindByID", uint64(9)).Return(nil, nil)
		svc := NewCategoryService(repo)

		_, err := svc.Update(9, strptr("New Name"), nil)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("new name re-derives slug", func(t *testing.T) {
		repo := new(mocks.MockCategoryRepository)
		repo.On("FindByID", uint64(1)).Return(&domain.Category{ID: 1, Name: "Rings", Slug: "rings"}, nil)
		repo.On("Update", mock.AnythingOfType("*domain.Category")).Return(nil)
		svc := NewCategoryService(repo)

		category, err := svc.Update(1, strptr("Wedding Rings"), nil)
		assert.NoError(t, err)
		assert.Equal(t, "wedding-rings", category.Slug)
	})

	t.Run("description alone keeps slug", func(t *testing.T) {
		repo := new(mocks.MockCategoryRepository)
		repo.On("FindByID", uint64(1)).Return(&domain.Category{ID: 1, Name: "Rings", Slug: "rings"}, nil)
		repo.On("Update", mock.AnythingOfType("*domain.Category")).Return(nil)
		svc := NewCategoryService(repo)

		category, err := svc.Update(1, nil, strptr("All ring styles"))
		assert.NoError(t, err)
		assert.Equal(t, "rings", category.Slug)
		assert.Equal(t, "All ring styles", category.Description)
	})

	t.Run("rename onto existing slug conflicts", func(t *testing.T) {
		repo := new(mocks.MockCategoryRepository)
		repo.On("FindByID", uint64(1)).Return(&domain.Category{ID: 1, Name: "Rings", Slug: "rings"}, nil)
		repo.On("Update", mock.AnythingOfType("*domain.Category")).Return(gorm.ErrDuplicatedKey)
		svc := NewCategoryService(repo)

		_, err := svc.Update(1, strptr("Necklaces"), nil)
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("blocked while products exist", func(t *testing.T) {
		repo := new(mocks.MockCategoryRepository)
		repo.On("CountProducts", uint64(1)).Return(int64(3), nil)
		svc := NewCategoryService(repo)

		err := svc.Delete(1)
		assert.ErrorIs(t, err, ErrConflict)
		assert.Contains(t, err.Error(), "3 product(s)")
		repo.AssertNotCalled(t, "Delete", mock.Anything)
	})

	t.Run("empty category deletes", func(t *testing.T) {
		repo := new(mocks.MockCategoryRepository)
		repo.On("CountProducts", uint64(1)).Return(int64(0), nil)
		repo.On("Delete", uint64(1)).Return(nil)
		svc := NewCategoryService(repo)

		assert.NoError(t, svc.Delete(1))
		repo.AssertExpectations(t)
	})

	t.Run("missing category reported", func(t *testing.T) {
		repo := new(mocks.MockCategoryRepository)
		repo.On("CountProducts", uint64(42)).Return(int64(0), nil)
		repo.On("Delete", uint64(42)).Return(gorm.ErrRecordNotFound)
		svc := NewCategoryService(repo)

		err := svc.Delete(42)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
