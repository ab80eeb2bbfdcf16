package domain

import "time"

// Category is an admin-defined bookable service type.
type Category struct {
	ID             string
	Image          string
	Title          string
	Description    string
	Duration       string
	AddsOn         []AddOn
	AvailableDates []time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasDate reports whether day is one of the category's available dates.
func (c *Category) HasDate(day time.Time) bool {
	d := TruncateDate(day)
	for _, a := range c.AvailableDates {
		if TruncateDate(a).Equal(d) {
			return true
		}
	}
	return false
}

// OpenFrom reports whether at least one available date falls on or after day.
func (c *Category) OpenFrom(day time.Time) bool {
	d := TruncateDate(day)
	for _, a := range c.AvailableDates {
		if !TruncateDate(a).Before(d) {
			return true
		}
	}
	return false
}
