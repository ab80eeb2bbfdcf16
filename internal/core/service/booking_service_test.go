package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

func strPtr(s string) *string { return &s }

func validCreateInput() ports.CreateBookingInput {
	return ports.CreateBookingInput{
		Category:    "Hair",
		PhoneNumber: "+15550001111",
		Description: "trim and wash",
		Duration:    "1h",
		AddsOn:      []ports.AddOnInput{{Title: "Wash", Time: "15m"}},
		DateBooked:  "01/05/2024",
		Email:       "Ann@Example.com",
	}
}

func newBookingSvc(repo *stubBookingRepo, n *stubNotifier, opts BookingOptions) *BookingService {
	if opts.KeyShape == "" {
		opts.KeyShape = repo.shape
	}
	return NewBookingService(repo, n, opts, discardLogger)
}

func TestCreateBooking_StoresNormalizedAndNotifies(t *testing.T) {
	repo := newStubBookingRepo(domain.KeyByCategory)
	n := &stubNotifier{}
	svc := newBookingSvc(repo, n, BookingOptions{})

	b, err := svc.CreateBooking(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID == "" {
		t.Error("expected an ID to be assigned")
	}
	want := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	if !b.DateBooked.Equal(want) {
		t.Errorf("DateBooked = %v, want %v", b.DateBooked, want)
	}
	if b.Email != "ann@example.com" {
		t.Errorf("Email = %q, want lowercased", b.Email)
	}
	if len(n.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(n.sent))
	}
	mail := n.sent[0]
	if mail.to != "ann@example.com" || mail.template != domain.TemplateBookingConfirmation {
		t.Errorf("unexpected mail: %+v", mail)
	}
	checks := map[string]string{
		"username":   "ann",
		"category":   "Hair",
		"addsOn":     "Wash: 15m",
		"dateBooked": "2024-05-01",
	}
	for k, v := range checks {
		if mail.vars[k] != v {
			t.Errorf("vars[%q] = %q, want %q", k, mail.vars[k], v)
		}
	}
}

func TestCreateBooking_DuplicateAcrossDateShapes(t *testing.T) {
	repo := newStubBookingRepo(domain.KeyByCategory)
	n := &stubNotifier{}
	svc := newBookingSvc(repo, n, BookingOptions{})

	if _, err := svc.CreateBooking(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}

	in := validCreateInput()
	in.DateBooked = "2024-05-01"
	in.Email = "ann@example.com"
	_, err := svc.CreateBooking(context.Background(), in)
	if !errors.Is(err, domain.ErrDuplicateBooking) {
		t.Fatalf("expected ErrDuplicateBooking, got %v", err)
	}
	if repo.creates != 1 {
		t.Errorf("expected 1 stored booking, got %d", repo.creates)
	}
	if n.count() != 1 {
		t.Errorf("duplicate must not notify, got %d mails", n.count())
	}
}

func TestCreateBooking_DistinctKeysSucceed(t *testing.T) {
	repo := newStubBookingRepo(domain.KeyByCategory)
	svc := newBookingSvc(repo, &stubNotifier{}, BookingOptions{})

	base := validCreateInput()
	variants := []func(*ports.CreateBookingInput){
		func(in *ports.CreateBookingInput) {},
		func(in *ports.CreateBookingInput) { in.Category = "Nails" },
		func(in *ports.CreateBookingInput) { in.DateBooked = "02/05/2024" },
		func(in *ports.CreateBookingInput) { in.Email = "bob@example.com" },
	}
	for i, mutate := range variants {
		in := base
		mutate(&in)
		if _, err := svc.CreateBooking(context.Background(), in); err != nil {
			t.Fatalf("variant %d: unexpected error: %v", i, err)
		}
	}
	if repo.creates != len(variants) {
		t.Errorf("expected %d bookings, got %d", len(variants), repo.creates)
	}
}

func TestCreateBooking_PhoneShape(t *testing.T) {
	repo := newStubBookingRepo(domain.KeyByPhone)
	svc := newBookingSvc(repo, &stubNotifier{}, BookingOptions{KeyShape: domain.KeyByPhone})

	if _, err := svc.CreateBooking(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same phone, date and email under a different category still collides.
	in := validCreateInput()
	in.Category = "Nails"
	if _, err := svc.CreateBooking(context.Background(), in); !errors.Is(err, domain.ErrDuplicateBooking) {
		t.Fatalf("expected ErrDuplicateBooking, got %v", err)
	}

	in = validCreateInput()
	in.PhoneNumber = ""
	if _, err := svc.CreateBooking(context.Background(), in); !errors.Is(err, domain.ErrMissingKeyField) {
		t.Fatalf("expected ErrMissingKeyField, got %v", err)
	}
}

func TestCreateBooking_ValidationFailuresDoNotWrite(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*ports.CreateBookingInput)
		wantErr error
	}{
		{"bad date", func(in *ports.CreateBookingInput) { in.DateBooked = "31/02/2024" }, domain.ErrInvalidDateFormat},
		{"bad add-on", func(in *ports.CreateBookingInput) { in.AddsOn = []ports.AddOnInput{{Title: "", Time: "5m"}} }, domain.ErrInvalidAddOn},
		{"missing category", func(in *ports.CreateBookingInput) { in.Category = "  " }, domain.ErrMissingKeyField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubBookingRepo(domain.KeyByCategory)
			n := &stubNotifier{}
			svc := newBookingSvc(repo, n, BookingOptions{})

			in := validCreateInput()
			tc.mutate(&in)
			_, err := svc.CreateBooking(context.Background(), in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if repo.creates != 0 || n.count() != 0 {
				t.Errorf("expected no writes or mails, got %d/%d", repo.creates, n.count())
			}
		})
	}
}

func TestCreateBooking_NotificationFailureKeepsRecord(t *testing.T) {
	repo := newStubBookingRepo(domain.KeyByCategory)
	n := &stubNotifier{err: errBoom}
	svc := newBookingSvc(repo, n, BookingOptions{})

	b, err := svc.CreateBooking(context.Background(), validCreateInput())
	if !errors.Is(err, domain.ErrNotificationFailure) {
		t.Fatalf("expected ErrNotificationFailure, got %v", err)
	}
	if b == nil || b.ID == "" {
		t.Fatal("expected the stored booking to be returned")
	}
	if _, err := repo.FindByID(context.Background(), b.ID); err != nil {
		t.Errorf("booking should remain stored: %v", err)
	}
}

func TestCreateBooking_StoreFailure(t *testing.T) {
	repo := newStubBookingRepo(domain.KeyByCategory)
	repo.createErr = domain.ErrStoreFailure
	n := &stubNotifier{}
	svc := newBookingSvc(repo, n, BookingOptions{})

	_, err := svc.CreateBooking(context.Background(), validCreateInput())
	if !errors.Is(err, domain.ErrStoreFailure) {
		t.Fatalf("expected ErrStoreFailure, got %v", err)
	}
	if n.count() != 0 {
		t.Error("no mail should be sent when the write fails")
	}
}

func TestCreateBooking_LookupFailure(t *testing.T) {
	repo := newStubBookingRepo(domain.KeyByCategory)
	repo.findErr = domain.ErrStoreFailure
	svc := newBookingSvc(repo, &stubNotifier{}, BookingOptions{})

	_, err := svc.CreateBooking(context.Background(), validCreateInput())
	if !errors.Is(err, domain.ErrStoreFailure) {
		t.Fatalf("expected ErrStoreFailure, got %v", err)
	}
	if repo.creates != 0 {
		t.Error("nothing should be written when the lookup fails")
	}
}

func TestCreateBooking_ConcurrentSameKey(t *testing.T) {
	repo := newStubBookingRepo(domain.KeyByCategory)
	repo.skipLookup = true
	n := &stubNotifier{}
	svc := newBookingSvc(repo, n, BookingOptions{})

	const workers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		dups int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateBooking(context.Background(), validCreateInput())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrDuplicateBooking):
				dups++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 || dups != workers-1 {
		t.Errorf("expected 1 success and %d duplicates, got %d/%d", workers-1, ok, dups)
	}
	if n.count() != 1 {
		t.Errorf("expected exactly 1 notification, got %d", n.count())
	}
}

func TestCreateBooking_SlotEnforcement(t *testing.T) {
	catalog := newStubCategoryRepo()
	catalog.seed(&domain.Category{
		Title:          "Hair",
		AvailableDates: []time.Time{time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)},
	})

	repo := newStubBookingRepo(domain.KeyByCategory)
	svc := newBookingSvc(repo, &stubNotifier{}, BookingOptions{Catalog: catalog})

	if _, err := svc.CreateBooking(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("available date should book: %v", err)
	}

	in := validCreateInput()
	in.DateBooked = "02/05/2024"
	if _, err := svc.CreateBooking(context.Background(), in); !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Errorf("expected ErrSlotUnavailable, got %v", err)
	}

	in = validCreateInput()
	in.Category = "Unknown"
	if _, err := svc.CreateBooking(context.Background(), in); !errors.Is(err, domain.ErrSlotUnavailable) {
		t.Errorf("expected ErrSlotUnavailable for unknown category, got %v", err)
	}
}

func TestGetBooking_AcceptsBothDateForms(t *testing.T) {
	repo := newStubBookingRepo(domain.KeyByCategory)
	svc := newBookingSvc(repo, &stubNotifier{}, BookingOptions{})

	created, err := svc.CreateBooking(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, date := range []string{"01/05/2024", "1/5/2024", "2024-05-01"} {
		got, err := svc.GetBooking(context.Background(), "Hair", date, "ANN@example.com")
		if err != nil {
			t.Fatalf("GetBooking(%q): %v", date, err)
		}
		if got.ID != created.ID {
			t.Errorf("GetBooking(%q) returned %s, want %s", date, got.ID, created.ID)
		}
	}

	if _, err := svc.GetBooking(context.Background(), "Hair", "not-a-date", "ann@example.com"); !errors.Is(err, domain.ErrInvalidDateFormat) {
		t.Errorf("expected ErrInvalidDateFormat, got %v", err)
	}
	if _, err := svc.GetBooking(context.Background(), "", "2024-05-01", "ann@example.com"); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound for empty subject, got %v", err)
	}
}

func TestUpdateBooking(t *testing.T) {
	repo := newStubBookingRepo(domain.KeyByCategory)
	svc := newBookingSvc(repo, &stubNotifier{}, BookingOptions{})

	created, err := svc.CreateBooking(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("renormalizes date", func(t *testing.T) {
		got, err := svc.UpdateBooking(context.Background(), created.ID, ports.UpdateBookingInput{
			DateBooked:  strPtr("03/05/2024"),
			Description: strPtr("colour"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)
		if !got.DateBooked.Equal(want) || got.Description != "colour" {
			t.Errorf("unexpected update result: %+v", got)
		}
		if got.Category != "Hair" {
			t.Errorf("untouched field changed: %q", got.Category)
		}
	})

	t.Run("empty update returns current", func(t *testing.T) {
		got, err := svc.UpdateBooking(context.Background(), created.ID, ports.UpdateBookingInput{})
		if err != nil || got.ID != created.ID {
			t.Fatalf("expected current booking, got %v / %v", got, err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.UpdateBooking(context.Background(), "missing", ports.UpdateBookingInput{Description: strPtr("x")})
		if !errors.Is(err, domain.ErrBookingNotFound) {
			t.Errorf("expected ErrBookingNotFound, got %v", err)
		}
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := svc.UpdateBooking(context.Background(), created.ID, ports.UpdateBookingInput{DateBooked: strPtr("2024/05/03")})
		if !errors.Is(err, domain.ErrInvalidDateFormat) {
			t.Errorf("expected ErrInvalidDateFormat, got %v", err)
		}
	})

	t.Run("blank key field", func(t *testing.T) {
		_, err := svc.UpdateBooking(context.Background(), created.ID, ports.UpdateBookingInput{Category: strPtr(" ")})
		if !errors.Is(err, domain.ErrMissingKeyField) || !strings.HasSuffix(err.Error(), ": category") {
			t.Errorf("expected ErrMissingKeyField naming category, got %v", err)
		}
	})

	t.Run("blank phone under phone key", func(t *testing.T) {
		phoneSvc := newBookingSvc(newStubBookingRepo(domain.KeyByPhone), &stubNotifier{}, BookingOptions{})
		_, err := phoneSvc.UpdateBooking(context.Background(), "any", ports.UpdateBookingInput{PhoneNumber: strPtr("")})
		if !errors.Is(err, domain.ErrMissingKeyField) || !strings.HasSuffix(err.Error(), ": phoneNumber") {
			t.Errorf("expected ErrMissingKeyField naming phoneNumber, got %v", err)
		}
	})

	t.Run("colliding key rejected by store", func(t *testing.T) {
		other := validCreateInput()
		other.Email = "bob@example.com"
		if _, err := svc.CreateBooking(context.Background(), other); err != nil {
			t.Fatalf("create other: %v", err)
		}
		_, err := svc.UpdateBooking(context.Background(), created.ID, ports.UpdateBookingInput{
			Email:      strPtr("bob@example.com"),
			DateBooked: strPtr("2024-05-01"),
		})
		if !errors.Is(err, domain.ErrDuplicateBooking) {
			t.Errorf("expected ErrDuplicateBooking, got %v", err)
		}
	})
}

func TestDeleteBooking(t *testing.T) {
	repo := newStubBookingRepo(domain.KeyByCategory)
	svc := newBookingSvc(repo, &stubNotifier{}, BookingOptions{})

	created, err := svc.CreateBooking(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteBooking(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteBooking(context.Background(), created.ID); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("second delete: expected ErrBookingNotFound, got %v", err)
	}
	if _, err := svc.GetBookingByID(context.Background(), created.ID); !errors.Is(err, domain.ErrBookingNotFound) {
		t.Errorf("get after delete: expected ErrBookingNotFound, got %v", err)
	}
	if _, err := svc.CreateBooking(context.Background(), validCreateInput()); err != nil {
		t.Errorf("key should be free again after delete: %v", err)
	}
}

func TestListBookings_EmptyPolicy(t *testing.T) {
	repo := newStubBookingRepo(domain.KeyByCategory)

	strict := newBookingSvc(repo, &stubNotifier{}, BookingOptions{EmptyListNotFound: true})
	if _, err := strict.ListBookings(context.Background()); !errors.Is(err, domain.ErrNoResults) {
		t.Errorf("expected ErrNoResults, got %v", err)
	}

	lenient := newBookingSvc(repo, &stubNotifier{}, BookingOptions{})
	got, err := lenient.ListBookings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}

	if _, err := lenient.CreateBooking(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err = strict.ListBookings(context.Background())
	if err != nil || len(got) != 1 {
		t.Errorf("expected 1 booking, got %d / %v", len(got), err)
	}
}
