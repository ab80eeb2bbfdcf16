package domain

import (
	"fmt"
	"strings"
	"time"
)

// AddOn is an optional extra service with its own time allotment.
type AddOn struct {
	Title string `json:"title" bson:"title"`
	Time  string `json:"time" bson:"time"`
}

// Validate reports ErrInvalidAddOn when either field is blank.
func (a AddOn) Validate() error {
	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Time) == "" {
		return ErrInvalidAddOn
	}
	return nil
}

// ValidateAddOns checks every entry and names the first offending index.
func ValidateAddOns(addOns []AddOn) error {
	for i, a := range addOns {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("addsOn[%d]: %w", i, err)
		}
	}
	return nil
}

// Booking is a client reservation. Category is a weak reference by title and
// AddsOn is a snapshot taken at booking time, so later catalog edits never
// rewrite past bookings.
type Booking struct {
	ID          string
	Category    string
	PhoneNumber string
	Description string
	Duration    string
	AddsOn      []AddOn
	DateBooked  time.Time
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Username is the local part of the booking email, used to greet the client.
func Username(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// NormalizeEmail trims and lower-cases an address so it compares stably as a
// key component.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
