package handler

import (
	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

// --- Request → Service input ---

func toAddOnInputs(in []addOnRequest) []ports.AddOnInput {
	out := make([]ports.AddOnInput, 0, len(in))
	for _, a := range in {
		out = append(out, ports.AddOnInput{Title: a.Title, Time: a.Time})
	}
	return out
}

func toCreateBookingInput(req createBookingRequest) ports.CreateBookingInput {
	return ports.CreateBookingInput{
		Category:    req.Category,
		PhoneNumber: req.PhoneNumber,
		Description: req.Description,
		Duration:    req.Duration,
		AddsOn:      toAddOnInputs(req.AddsOn),
		DateBooked:  req.DateBooked,
		Email:       req.Email,
	}
}

func toUpdateBookingInput(req updateBookingRequest) ports.UpdateBookingInput {
	in := ports.UpdateBookingInput{
		Category:    req.Category,
		PhoneNumber: req.PhoneNumber,
		Description: req.Description,
		Duration:    req.Duration,
		DateBooked:  req.DateBooked,
		Email:       req.Email,
	}
	if req.AddsOn != nil {
		addOns := toAddOnInputs(*req.AddsOn)
		in.AddsOn = &addOns
	}
	return in
}

// --- Domain → Response ---

func toAddOnResponses(in []domain.AddOn) []addOnResponse {
	out := make([]addOnResponse, 0, len(in))
	for _, a := range in {
		out = append(out, addOnResponse{Title: a.Title, Time: a.Time})
	}
	return out
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		Category:    b.Category,
		PhoneNumber: b.PhoneNumber,
		Description: b.Description,
		Duration:    b.Duration,
		AddsOn:      toAddOnResponses(b.AddsOn),
		DateBooked:  domain.FormatDate(b.DateBooked),
		Email:       b.Email,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookingList(in []*domain.Booking) bookingListResponse {
	out := make([]bookingResponse, 0, len(in))
	for _, b := range in {
		out = append(out, toBookingResponse(b))
	}
	return bookingListResponse{Bookings: out, Count: len(out)}
}

func toCategoryResponse(c *domain.Category) categoryResponse {
	dates := make([]string, 0, len(c.AvailableDates))
	for _, d := range c.AvailableDates {
		dates = append(dates, domain.FormatDate(d))
	}
	return categoryResponse{
		ID:             c.ID,
		Image:          c.Image,
		Title:          c.Title,
		Description:    c.Description,
		Duration:       c.Duration,
		AddsOn:         toAddOnResponses(c.AddsOn),
		AvailableDates: dates,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toCategoryList(in []*domain.Category) categoryListResponse {
	out := make([]categoryResponse, 0, len(in))
	for _, c := range in {
		out = append(out, toCategoryResponse(c))
	}
	return categoryListResponse{Appointments: out, Count: len(out)}
}
