package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

// BookingOptions configures the booking coordinator.
type BookingOptions struct {
	// KeyShape picks the natural key. Defaults to domain.KeyByCategory.
	KeyShape domain.KeyShape
	// Catalog, when set, makes CreateBooking require that the booked date is
	// one of the category's available dates. Only used with KeyByCategory.
	Catalog ports.CategoryRepository
	// EmptyListNotFound makes ListBookings return domain.ErrNoResults instead
	// of an empty slice.
	EmptyListNotFound bool
}

// BookingService coordinates the booking ledger: date normalization, natural
// key checks, persistence and the confirmation mail.
type BookingService struct {
	repo     ports.BookingRepository
	notifier ports.Notifier
	opts     BookingOptions
	logger   zerolog.Logger
	now      func() time.Time
}

func NewBookingService(repo ports.BookingRepository, notifier ports.Notifier, opts BookingOptions, logger zerolog.Logger) *BookingService {
	if opts.KeyShape == "" {
		opts.KeyShape = domain.KeyByCategory
	}
	return &BookingService{
		repo:     repo,
		notifier: notifier,
		opts:     opts,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// KeyShape returns the configured natural key shape.
func (s *BookingService) KeyShape() domain.KeyShape {
	return s.opts.KeyShape
}

// CreateBooking validates and stores a booking, then sends the confirmation.
// A conflicting booking fails with domain.ErrDuplicateBooking before any
// write or mail. A failed mail does not undo the write: the booking is
// returned alongside an error wrapping domain.ErrNotificationFailure.
func (s *BookingService) CreateBooking(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
	day, err := domain.NormalizeDate(in.DateBooked)
	if err != nil {
		return nil, err
	}

	addOns, err := toAddOns(in.AddsOn)
	if err != nil {
		return nil, err
	}

	now := s.now()
	b := &domain.Booking{
		Category:    strings.TrimSpace(in.Category),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Description: in.Description,
		Duration:    in.Duration,
		AddsOn:      addOns,
		DateBooked:  day,
		Email:       domain.NormalizeEmail(in.Email),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.opts.KeyShape.Validate(b); err != nil {
		return nil, err
	}

	if err := s.checkSlot(ctx, b); err != nil {
		return nil, err
	}

	key := s.opts.KeyShape.KeyOf(b)
	if _, err := s.repo.FindByKey(ctx, key); err == nil {
		return nil, domain.ErrDuplicateBooking
	} else if !errors.Is(err, domain.ErrBookingNotFound) {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// The unique index settles races the lookup above cannot see.
	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, domain.ErrDuplicateBooking) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("email", b.Email).Msg("failed to create booking")
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info().
		Str("booking_id", b.ID).
		Str("key_shape", string(s.opts.KeyShape)).
		Str("subject", key.Subject).
		Str("date", domain.FormatDate(b.DateBooked)).
		Msg("booking created")

	if err := s.notifier.Send(ctx, b.Email, domain.TemplateBookingConfirmation, confirmationVars(b)); err != nil {
		s.logger.Error().Err(err).Str("booking_id", b.ID).Msg("booking stored but confirmation not sent")
		return b, fmt.Errorf("%w: %v", domain.ErrNotificationFailure, err)
	}

	return b, nil
}

// UpdateBooking applies an admin partial update. The natural key is not
// re-checked here; the store's unique index still rejects a colliding key.
func (s *BookingService) UpdateBooking(ctx context.Context, id string, in ports.UpdateBookingInput) (*domain.Booking, error) {
	fields := ports.BookingFields{
		Category:    trimmed(in.Category),
		PhoneNumber: trimmed(in.PhoneNumber),
		Description: in.Description,
		Duration:    in.Duration,
	}

	subject := fields.Category
	if s.opts.KeyShape == domain.KeyByPhone {
		subject = fields.PhoneNumber
	}
	if subject != nil && *subject == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingKeyField, s.opts.KeyShape.SubjectField())
	}

	if in.DateBooked != nil {
		day, err := domain.NormalizeDate(*in.DateBooked)
		if err != nil {
			return nil, err
		}
		fields.DateBooked = &day
	}
	if in.AddsOn != nil {
		addOns, err := toAddOns(*in.AddsOn)
		if err != nil {
			return nil, err
		}
		fields.AddsOn = &addOns
	}
	if in.Email != nil {
		email := domain.NormalizeEmail(*in.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email", domain.ErrMissingKeyField)
		}
		fields.Email = &email
	}

	if fields.Empty() {
		return s.repo.FindByID(ctx, id)
	}

	b, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("booking_id", id).Msg("booking updated")
	return b, nil
}

// GetBooking looks a booking up by its natural key under the configured
// shape. The date may be given in either accepted form.
func (s *BookingService) GetBooking(ctx context.Context, subject, date, email string) (*domain.Booking, error) {
	day, err := domain.NormalizeDate(date)
	if err != nil {
		return nil, err
	}
	key := domain.NaturalKey{
		Shape:   s.opts.KeyShape,
		Subject: strings.TrimSpace(subject),
		Date:    day,
		Email:   domain.NormalizeEmail(email),
	}
	if key.Subject == "" || key.Email == "" {
		return nil, domain.ErrBookingNotFound
	}
	return s.repo.FindByKey(ctx, key)
}

func (s *BookingService) GetBookingByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookingService) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	bookings, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 && s.opts.EmptyListNotFound {
		return nil, domain.ErrNoResults
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}

// DeleteBooking removes a booking permanently.
func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("booking_id", id).Msg("booking deleted")
	return nil
}

func (s *BookingService) checkSlot(ctx context.Context, b *domain.Booking) error {
	if s.opts.Catalog == nil || s.opts.KeyShape != domain.KeyByCategory {
		return nil
	}
	c, err := s.opts.Catalog.FindByTitle(ctx, b.Category)
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return fmt.Errorf("%w: unknown category %q", domain.ErrSlotUnavailable, b.Category)
		}
		return fmt.Errorf("check slot: %w", err)
	}
	if !c.HasDate(b.DateBooked) {
		return fmt.Errorf("%w: %s on %s", domain.ErrSlotUnavailable, c.Title, domain.FormatDate(b.DateBooked))
	}
	return nil
}

// confirmationVars builds the variables of the booking confirmation template.
func confirmationVars(b *domain.Booking) map[string]string {
	parts := make([]string, 0, len(b.AddsOn))
	for _, a := range b.AddsOn {
		parts = append(parts, a.Title+": "+a.Time)
	}
	return map[string]string{
		"username":    domain.Username(b.Email),
		"category":    b.Category,
		"phoneNumber": b.PhoneNumber,
		"description": b.Description,
		"duration":    b.Duration,
		"addsOn":      strings.Join(parts, ", "),
		"dateBooked":  domain.FormatDate(b.DateBooked),
	}
}

func toAddOns(in []ports.AddOnInput) ([]domain.AddOn, error) {
	out := make([]domain.AddOn, 0, len(in))
	for _, a := range in {
		out = append(out, domain.AddOn{Title: strings.TrimSpace(a.Title), Time: strings.TrimSpace(a.Time)})
	}
	if err := domain.ValidateAddOns(out); err != nil {
		return nil, err
	}
	return out, nil
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
