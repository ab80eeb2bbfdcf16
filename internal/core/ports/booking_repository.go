package ports

import (
	"context"
	"time"

	"github.com/faridcreations/booking-api/internal/core/domain"
)

// BookingFields is a partial update. Nil pointers leave the stored value
// untouched; a non-nil AddsOn replaces the whole snapshot.
type BookingFields struct {
	Category    *string
	PhoneNumber *string
	Description *string
	Duration    *string
	AddsOn      *[]domain.AddOn
	DateBooked  *time.Time
	Email       *string
}

// Empty reports whether no field is set.
func (f BookingFields) Empty() bool {
	return f.Category == nil && f.PhoneNumber == nil && f.Description == nil &&
		f.Duration == nil && f.AddsOn == nil && f.DateBooked == nil && f.Email == nil
}

// BookingRepository persists the booking ledger. Implementations enforce
// natural-key uniqueness at the store level: Create returns
// domain.ErrDuplicateBooking when the key is taken, even under concurrent
// submission.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id string) (*domain.Booking, error)
	FindByKey(ctx context.Context, key domain.NaturalKey) (*domain.Booking, error)
	List(ctx context.Context) ([]*domain.Booking, error)
	// Update applies fields and returns the stored document after the write.
	Update(ctx context.Context, id string, fields BookingFields) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}
