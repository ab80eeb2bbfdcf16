package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Shared ---

// addOnRequest is checked by the services, which report the offending index.
type addOnRequest struct {
	Title string `json:"title"`
	Time  string `json:"time"`
}

type addOnResponse struct {
	Title string `json:"title"`
	Time  string `json:"time"`
}

// --- Bookings ---

type createBookingRequest struct {
	Category    string         `json:"category"`
	PhoneNumber string         `json:"phoneNumber"`
	Description string         `json:"description"`
	Duration    string         `json:"duration"`
	AddsOn      []addOnRequest `json:"addsOn"`
	DateBooked  string         `json:"dateBooked"`
	Email       string         `json:"email"       validate:"omitempty,email"`
}

type updateBookingRequest struct {
	Category    *string         `json:"category"`
	PhoneNumber *string         `json:"phoneNumber"`
	Description *string         `json:"description"`
	Duration    *string         `json:"duration"`
	AddsOn      *[]addOnRequest `json:"addsOn"`
	DateBooked  *string         `json:"dateBooked"`
	Email       *string         `json:"email"       validate:"omitempty,email"`
}

type bookingResponse struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	PhoneNumber string          `json:"phoneNumber"`
	Description string          `json:"description"`
	Duration    string          `json:"duration"`
	AddsOn      []addOnResponse `json:"addsOn"`
	DateBooked  string          `json:"dateBooked"`
	Email       string          `json:"email"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type createBookingResponse struct {
	Booking bookingResponse `json:"booking"`
	// NotificationError is set when the booking was stored but the
	// confirmation mail could not be sent.
	NotificationError string `json:"notification_error,omitempty"`
}

type bookingListResponse struct {
	Bookings []bookingResponse `json:"bookings"`
	Count    int               `json:"count"`
}

// --- Catalog ---

type categoryResponse struct {
	ID             string          `json:"id"`
	Image          string          `json:"image"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Duration       string          `json:"duration"`
	AddsOn         []addOnResponse `json:"addsOn"`
	AvailableDates []string        `json:"availableDate"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type categoryListResponse struct {
	Appointments []categoryResponse `json:"appointments"`
	Count        int                `json:"count"`
}
