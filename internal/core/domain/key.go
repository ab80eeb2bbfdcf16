package domain

import (
	"fmt"
	"strings"
	"time"
)

// KeyShape selects which booking fields compose the natural key.
type KeyShape string

const (
	// KeyByCategory keys bookings on (category, dateBooked, email).
	KeyByCategory KeyShape = "category"
	// KeyByPhone keys bookings on (phoneNumber, dateBooked, email).
	KeyByPhone KeyShape = "phone"
)

// ParseKeyShape accepts the configured shape name, defaulting to category.
func ParseKeyShape(s string) (KeyShape, error) {
	switch KeyShape(strings.ToLower(strings.TrimSpace(s))) {
	case "", KeyByCategory:
		return KeyByCategory, nil
	case KeyByPhone:
		return KeyByPhone, nil
	default:
		return "", fmt.Errorf("unknown booking key shape %q", s)
	}
}

// NaturalKey is the tuple whose equality defines "the same booking".
type NaturalKey struct {
	Shape   KeyShape
	Subject string
	Date    time.Time
	Email   string
}

// Subject returns the shape-specific first key component of b.
func (k KeyShape) Subject(b *Booking) string {
	if k == KeyByPhone {
		return b.PhoneNumber
	}
	return b.Category
}

// KeyOf derives b's natural key under shape k. The date is expected to be
// normalized already.
func (k KeyShape) KeyOf(b *Booking) NaturalKey {
	return NaturalKey{
		Shape:   k,
		Subject: strings.TrimSpace(k.Subject(b)),
		Date:    TruncateDate(b.DateBooked),
		Email:   NormalizeEmail(b.Email),
	}
}

// Validate rejects a booking whose key components are missing.
func (k KeyShape) Validate(b *Booking) error {
	switch {
	case strings.TrimSpace(k.Subject(b)) == "":
		return fmt.Errorf("%w: %s", ErrMissingKeyField, k.SubjectField())
	case b.DateBooked.IsZero():
		return fmt.Errorf("%w: dateBooked", ErrMissingKeyField)
	case NormalizeEmail(b.Email) == "":
		return fmt.Errorf("%w: email", ErrMissingKeyField)
	}
	return nil
}

// SubjectField names the request field that carries the key subject.
func (k KeyShape) SubjectField() string {
	if k == KeyByPhone {
		return "phoneNumber"
	}
	return "category"
}
