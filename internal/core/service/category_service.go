package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

// CategoryService manages the appointment catalog. Authorization is enforced
// by the transport layer before any of these methods run.
type CategoryService struct {
	repo              ports.CategoryRepository
	uploader          ports.Uploader
	emptyListNotFound bool
	logger            zerolog.Logger
	now               func() time.Time
}

func NewCategoryService(repo ports.CategoryRepository, uploader ports.Uploader, emptyListNotFound bool, logger zerolog.Logger) *CategoryService {
	return &CategoryService{
		repo:              repo,
		uploader:          uploader,
		emptyListNotFound: emptyListNotFound,
		logger:            logger,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// CreateCategory validates every field before uploading the image, so a
// rejected submission leaves neither an upload nor a catalog entry behind.
func (s *CategoryService) CreateCategory(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error) {
	if in.Image == nil {
		return nil, domain.ErrImageRequired
	}
	title, desc, dur := in.Title, in.Description, in.Duration
	if err := requireCategoryText(&title, &desc, &dur); err != nil {
		return nil, err
	}
	addOns, err := toAddOns(in.AddsOn)
	if err != nil {
		return nil, err
	}
	dates, err := normalizeDates(in.AvailableDates)
	if err != nil {
		return nil, err
	}

	url, err := s.uploader.Upload(ctx, *in.Image)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", in.Image.Filename).Msg("category image upload failed")
		return nil, fmt.Errorf("upload category image: %w", err)
	}

	now := s.now()
	c := &domain.Category{
		Image:          url,
		Title:          strings.TrimSpace(title),
		Description:    in.Description,
		Duration:       in.Duration,
		AddsOn:         addOns,
		AvailableDates: dates,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("title", c.Title).Msg("failed to create category")
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.Info().Str("category_id", c.ID).Str("title", c.Title).Int("dates", len(dates)).Msg("category created")
	return c, nil
}

// UpdateCategory applies a partial update, replacing the image only when a
// new one is supplied.
func (s *CategoryService) UpdateCategory(ctx context.Context, id string, in ports.UpdateCategoryInput) (*domain.Category, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := requireCategoryText(in.Title, in.Description, in.Duration); err != nil {
		return nil, err
	}

	fields := ports.CategoryFields{
		Title:       trimmed(in.Title),
		Description: in.Description,
		Duration:    in.Duration,
	}
	if in.AddsOn != nil {
		addOns, err := toAddOns(*in.AddsOn)
		if err != nil {
			return nil, err
		}
		fields.AddsOn = &addOns
	}
	if in.AvailableDates != nil {
		dates, err := normalizeDates(*in.AvailableDates)
		if err != nil {
			return nil, err
		}
		fields.AvailableDates = &dates
	}

	if in.Image != nil {
		url, err := s.uploader.Upload(ctx, *in.Image)
		if err != nil {
			s.logger.Error().Err(err).Str("category_id", id).Msg("category image upload failed")
			return nil, fmt.Errorf("upload category image: %w", err)
		}
		fields.Image = &url
	}

	c, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("category_id", id).Msg("category updated")
	return c, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.emptyPolicy(categories)
}

// ListCategoriesFromDate returns categories still bookable on or after date,
// not only those offering exactly that date.
func (s *CategoryService) ListCategoriesFromDate(ctx context.Context, date string) ([]*domain.Category, error) {
	day, err := domain.NormalizeDate(date)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.ListAvailableFrom(ctx, day)
	if err != nil {
		return nil, err
	}
	return s.emptyPolicy(categories)
}

// DeleteCategory removes a catalog entry. Bookings referencing it are kept.
func (s *CategoryService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

func (s *CategoryService) emptyPolicy(categories []*domain.Category) ([]*domain.Category, error) {
	if len(categories) == 0 {
		if s.emptyListNotFound {
			return nil, domain.ErrNoResults
		}
		return []*domain.Category{}, nil
	}
	return categories, nil
}

// requireCategoryText rejects a blank title, description or duration. A nil
// pointer means the field is not being set.
func requireCategoryText(title, description, duration *string) error {
	for _, f := range []struct {
		name string
		v    *string
	}{{"title", title}, {"description", description}, {"duration", duration}} {
		if f.v != nil && strings.TrimSpace(*f.v) == "" {
			return fmt.Errorf("%w: %s", domain.ErrMissingCategoryField, f.name)
		}
	}
	return nil
}

func normalizeDates(in []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(in))
	for i, raw := range in {
		day, err := domain.NormalizeDate(raw)
		if err != nil {
			return nil, fmt.Errorf("availableDate[%d]: %w", i, err)
		}
		out = append(out, day)
	}
	return out, nil
}
