package ports

import (
	"context"

	"github.com/faridcreations/booking-api/internal/core/domain"
)

// CreateCategoryInput carries an admin catalog submission. Image is required.
type CreateCategoryInput struct {
	Image          *UploadInput
	Title          string
	Description    string
	Duration       string
	AddsOn         []AddOnInput
	AvailableDates []string
}

// UpdateCategoryInput is a partial catalog update. A nil Image keeps the
// current one.
type UpdateCategoryInput struct {
	Image          *UploadInput
	Title          *string
	Description    *string
	Duration       *string
	AddsOn         *[]AddOnInput
	AvailableDates *[]string
}

// CategoryService defines appointment catalog use cases.
type CategoryService interface {
	CreateCategory(ctx context.Context, in CreateCategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, in UpdateCategoryInput) (*domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListCategoriesFromDate(ctx context.Context, date string) ([]*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
