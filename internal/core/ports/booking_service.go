package ports

import (
	"context"

	"github.com/faridcreations/booking-api/internal/core/domain"
)

// AddOnInput is a raw add-on as submitted by a client or admin.
type AddOnInput struct {
	Title string
	Time  string
}

// CreateBookingInput carries a client booking submission. DateBooked may be
// DD/MM/YYYY or ISO; it is normalized by the service.
type CreateBookingInput struct {
	Category    string
	PhoneNumber string
	Description string
	Duration    string
	AddsOn      []AddOnInput
	DateBooked  string
	Email       string
}

// UpdateBookingInput is an admin partial update; nil fields are left as is.
type UpdateBookingInput struct {
	Category    *string
	PhoneNumber *string
	Description *string
	Duration    *string
	AddsOn      *[]AddOnInput
	DateBooked  *string
	Email       *string
}

// BookingService defines booking ledger use cases.
type BookingService interface {
	// CreateBooking persists then notifies. When only the notification fails
	// it returns the stored booking together with an error wrapping
	// domain.ErrNotificationFailure.
	CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Booking, error)
	UpdateBooking(ctx context.Context, id string, in UpdateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, subject, date, email string) (*domain.Booking, error)
	GetBookingByID(ctx context.Context, id string) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]*domain.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	KeyShape() domain.KeyShape
}
