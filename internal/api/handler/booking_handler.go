package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faridcreations/booking-api/internal/api/metrics"
	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

// BookingHandler handles HTTP requests for the booking ledger.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create handles POST /api/v1/booking/create.
//
// A booking that was stored but whose confirmation mail failed is still a
// 201; the failure is reported in notification_error.
//
// @Summary      Book an appointment
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body  body      createBookingRequest  true  "Booking details; dateBooked as DD/MM/YYYY or YYYY-MM-DD"
// @Success      201   {object}  createBookingResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /booking/create [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	b, err := h.service.CreateBooking(c.Request().Context(), toCreateBookingInput(req))
	if err != nil && (b == nil || !errors.Is(err, domain.ErrNotificationFailure)) {
		return err
	}

	shape := string(h.service.KeyShape())
	metrics.BookingsCreatedTotal.WithLabelValues(shape).Inc()

	resp := createBookingResponse{Booking: toBookingResponse(b)}
	if err != nil {
		metrics.NotificationFailuresTotal.WithLabelValues(domain.TemplateBookingConfirmation).Inc()
		resp.NotificationError = "booking saved but the confirmation email could not be sent"
	}
	return c.JSON(http.StatusCreated, resp)
}

// Update handles PUT /api/v1/booking/update/:id.
//
// @Summary      Update a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Booking ID"
// @Param        body  body      updateBookingRequest  true  "Fields to change"
// @Success      200   {object}  bookingResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /booking/update/{id} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	var req updateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	b, err := h.service.UpdateBooking(c.Request().Context(), c.Param("id"), toUpdateBookingInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Get handles GET /api/v1/booking/single/:id.
//
// @Summary      Get a booking by ID
// @Tags         bookings
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  bookingResponse
// @Failure      404  {object}  errorResponse
// @Router       /booking/single/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	b, err := h.service.GetBookingByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Lookup handles GET /api/v1/booking/lookup. The key subject may be sent as
// subject or under its field name (category or phoneNumber).
//
// @Summary      Find a booking by its natural key
// @Tags         bookings
// @Produce      json
// @Param        subject  query     string  false  "Category title or phone number, depending on the key shape"
// @Param        date     query     string  true   "DD/MM/YYYY or YYYY-MM-DD"
// @Param        email    query     string  true   "Client email"
// @Success      200      {object}  bookingResponse
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /booking/lookup [get]
func (h *BookingHandler) Lookup(c echo.Context) error {
	subject := c.QueryParam("subject")
	if subject == "" {
		subject = c.QueryParam(h.service.KeyShape().SubjectField())
	}

	b, err := h.service.GetBooking(c.Request().Context(), subject, c.QueryParam("date"), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// List handles GET /api/v1/booking.
//
// @Summary      List all bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  bookingListResponse
// @Failure      404  {object}  errorResponse
// @Router       /booking [get]
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.service.ListBookings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingList(bookings))
}

// Delete handles DELETE /api/v1/booking/delete/:id.
//
// @Summary      Delete a booking
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /booking/delete/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteBooking(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "booking deleted"})
}
