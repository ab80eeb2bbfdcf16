package ports

import (
	"context"
	"time"

	"github.com/faridcreations/booking-api/internal/core/domain"
)

// CategoryFields is a partial catalog update; nil leaves a field untouched.
type CategoryFields struct {
	Image          *string
	Title          *string
	Description    *string
	Duration       *string
	AddsOn         *[]domain.AddOn
	AvailableDates *[]time.Time
}

// CategoryRepository persists the appointment catalog.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindByTitle(ctx context.Context, title string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	// ListAvailableFrom returns categories with at least one available date
	// on or after day.
	ListAvailableFrom(ctx context.Context, day time.Time) ([]*domain.Category, error)
	Update(ctx context.Context, id string, fields CategoryFields) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
