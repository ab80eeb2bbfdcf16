package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:         "b1",
		Category:   "Hair",
		AddsOn:     []domain.AddOn{{Title: "Wash", Time: "15m"}},
		DateBooked: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		Email:      "ann@example.com",
	}
}

func TestBookingHandler_Create_Success(t *testing.T) {
	e := newEcho()
	stub := &stubBookingService{
		createFn: func(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
			if in.Category != "Hair" || in.DateBooked != "01/05/2024" || len(in.AddsOn) != 1 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return sampleBooking(), nil
		},
	}
	handler := NewBookingHandler(stub)

	body := `{"category":"Hair","dateBooked":"01/05/2024","email":"ann@example.com","addsOn":[{"title":"Wash","time":"15m"}]}`
	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/booking/create", strings.NewReader(body))
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp createBookingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Booking.DateBooked != "2024-05-01" {
		t.Fatalf("expected ISO date, got %q", resp.Booking.DateBooked)
	}
	if resp.NotificationError != "" {
		t.Fatalf("unexpected notification error %q", resp.NotificationError)
	}
}

func TestBookingHandler_Create_NotificationFailureStillCreated(t *testing.T) {
	e := newEcho()
	stub := &stubBookingService{
		createFn: func(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
			return sampleBooking(), errors.Join(domain.ErrNotificationFailure, errors.New("mail down"))
		},
	}
	handler := NewBookingHandler(stub)

	c, rec := newJSONContext(e, http.MethodPost, "/api/v1/booking/create", strings.NewReader(`{"category":"Hair","dateBooked":"2024-05-01","email":"ann@example.com"}`))
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp createBookingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.NotificationError == "" || resp.Booking.ID != "b1" {
		t.Fatalf("expected stored booking with notification error, got %+v", resp)
	}
}

func TestBookingHandler_Create_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"duplicate", domain.ErrDuplicateBooking},
		{"bad date", domain.ErrInvalidDateFormat},
		{"store", domain.ErrStoreFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			handler := NewBookingHandler(&stubBookingService{
				createFn: func(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
					return nil, tc.err
				},
			})

			c, rec := newJSONContext(e, http.MethodPost, "/api/v1/booking/create", strings.NewReader(`{"category":"Hair","dateBooked":"2024-05-01","email":"ann@example.com"}`))
			if err := handler.Create(c); !errors.Is(err, tc.err) {
				t.Fatalf("expected %v, got %v", tc.err, err)
			}
			if rec.Body.Len() != 0 {
				t.Fatalf("handler must leave rendering to the error handler")
			}
		})
	}
}

func TestBookingHandler_Create_InvalidPayload(t *testing.T) {
	e := newEcho()
	handler := NewBookingHandler(&stubBookingService{
		createFn: func(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
			mustNotCall(t)
			return nil, nil
		},
	})

	c, _ := newJSONContext(e, http.MethodPost, "/api/v1/booking/create", strings.NewReader("{"))
	if code := httpCode(t, handler.Create(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}

	c, _ = newJSONContext(e, http.MethodPost, "/api/v1/booking/create", strings.NewReader(`{"email":"not-an-email"}`))
	if code := httpCode(t, handler.Create(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestBookingHandler_Update_PartialFields(t *testing.T) {
	e := newEcho()
	handler := NewBookingHandler(&stubBookingService{
		updateFn: func(ctx context.Context, id string, in ports.UpdateBookingInput) (*domain.Booking, error) {
			if id != "b1" {
				t.Fatalf("unexpected id %q", id)
			}
			if in.Description == nil || *in.Description != "fringe" {
				t.Fatalf("expected description set, got %+v", in)
			}
			if in.Category != nil || in.AddsOn != nil || in.Email != nil {
				t.Fatalf("omitted fields must stay nil: %+v", in)
			}
			b := sampleBooking()
			b.Description = *in.Description
			return b, nil
		},
	})

	c, rec := newJSONContext(e, http.MethodPut, "/api/v1/booking/update/b1", strings.NewReader(`{"description":"fringe"}`))
	c.SetParamNames("id")
	c.SetParamValues("b1")
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "fringe") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestBookingHandler_Lookup(t *testing.T) {
	t.Run("subject query", func(t *testing.T) {
		e := newEcho()
		handler := NewBookingHandler(&stubBookingService{
			getFn: func(ctx context.Context, subject, date, email string) (*domain.Booking, error) {
				if subject != "Hair" || date != "01/05/2024" || email != "ann@example.com" {
					t.Fatalf("unexpected lookup %q %q %q", subject, date, email)
				}
				return sampleBooking(), nil
			},
		})

		c, rec := newJSONContext(e, http.MethodGet, "/api/v1/booking/lookup?subject=Hair&date=01/05/2024&email=ann@example.com", nil)
		if err := handler.Lookup(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("field name fallback", func(t *testing.T) {
		e := newEcho()
		handler := NewBookingHandler(&stubBookingService{
			shape: domain.KeyByPhone,
			getFn: func(ctx context.Context, subject, date, email string) (*domain.Booking, error) {
				if subject != "5551234" {
					t.Fatalf("expected phone subject, got %q", subject)
				}
				return nil, domain.ErrBookingNotFound
			},
		})

		c, _ := newJSONContext(e, http.MethodGet, "/api/v1/booking/lookup?phoneNumber=5551234&date=2024-05-01&email=ann@example.com", nil)
		if err := handler.Lookup(c); !errors.Is(err, domain.ErrBookingNotFound) {
			t.Fatalf("expected ErrBookingNotFound, got %v", err)
		}
	})
}

func TestBookingHandler_GetListDelete(t *testing.T) {
	e := newEcho()
	var deleted string
	handler := NewBookingHandler(&stubBookingService{
		getIDFn: func(ctx context.Context, id string) (*domain.Booking, error) {
			return sampleBooking(), nil
		},
		listFn: func(ctx context.Context) ([]*domain.Booking, error) {
			return []*domain.Booking{sampleBooking(), sampleBooking()}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	})

	c, rec := newJSONContext(e, http.MethodGet, "/api/v1/booking/single/b1", nil)
	c.SetParamNames("id")
	c.SetParamValues("b1")
	if err := handler.Get(c); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("get: %v %d", err, rec.Code)
	}

	c, rec = newJSONContext(e, http.MethodGet, "/api/v1/booking", nil)
	if err := handler.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	var list bookingListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if list.Count != 2 || len(list.Bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %+v", list)
	}

	c, rec = newJSONContext(e, http.MethodDelete, "/api/v1/booking/delete/b1", nil)
	c.SetParamNames("id")
	c.SetParamValues("b1")
	if err := handler.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != "b1" || rec.Code != http.StatusOK {
		t.Fatalf("expected b1 deleted, got %q %d", deleted, rec.Code)
	}
}
