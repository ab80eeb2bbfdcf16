package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Booking repository: in-memory, with a unique index on the natural key.
// ---------------------------------------------------------------------------

type stubBookingRepo struct {
	mu        sync.Mutex
	shape     domain.KeyShape
	byID      map[string]*domain.Booking
	seq       int
	createErr error
	findErr   error
	creates   int
	// skipLookup makes FindByKey always miss, so only the unique index
	// can reject a duplicate (simulates the check-then-insert race).
	skipLookup bool
}

func newStubBookingRepo(shape domain.KeyShape) *stubBookingRepo {
	return &stubBookingRepo{shape: shape, byID: make(map[string]*domain.Booking)}
}

func cloneBooking(b *domain.Booking) *domain.Booking {
	c := *b
	c.AddsOn = append([]domain.AddOn(nil), b.AddsOn...)
	return &c
}

func (r *stubBookingRepo) keyTaken(key domain.NaturalKey, exceptID string) bool {
	for id, b := range r.byID {
		if id != exceptID && r.shape.KeyOf(b) == key {
			return true
		}
	}
	return false
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if r.keyTaken(r.shape.KeyOf(b), "") {
		return domain.ErrDuplicateBooking
	}
	r.seq++
	r.creates++
	b.ID = fmt.Sprintf("b%d", r.seq)
	r.byID[b.ID] = cloneBooking(b)
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

func (r *stubBookingRepo) FindByKey(_ context.Context, key domain.NaturalKey) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	if r.skipLookup {
		return nil, domain.ErrBookingNotFound
	}
	for _, b := range r.byID {
		if r.shape.KeyOf(b) == key {
			return cloneBooking(b), nil
		}
	}
	return nil, domain.ErrBookingNotFound
}

func (r *stubBookingRepo) List(_ context.Context) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Booking
	for _, b := range r.byID {
		out = append(out, cloneBooking(b))
	}
	return out, nil
}

func (r *stubBookingRepo) Update(_ context.Context, id string, f ports.BookingFields) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	next := cloneBooking(stored)
	if f.Category != nil {
		next.Category = *f.Category
	}
	if f.PhoneNumber != nil {
		next.PhoneNumber = *f.PhoneNumber
	}
	if f.Description != nil {
		next.Description = *f.Description
	}
	if f.Duration != nil {
		next.Duration = *f.Duration
	}
	if f.AddsOn != nil {
		next.AddsOn = *f.AddsOn
	}
	if f.DateBooked != nil {
		next.DateBooked = *f.DateBooked
	}
	if f.Email != nil {
		next.Email = *f.Email
	}
	if r.keyTaken(r.shape.KeyOf(next), id) {
		return nil, domain.ErrDuplicateBooking
	}
	r.byID[id] = next
	return cloneBooking(next), nil
}

func (r *stubBookingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Notifier
// ---------------------------------------------------------------------------

type sentMail struct {
	to       string
	template string
	vars     map[string]string
}

type stubNotifier struct {
	mu   sync.Mutex
	err  error
	sent []sentMail
}

func (n *stubNotifier) Send(_ context.Context, to, template string, vars map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMail{to: to, template: template, vars: vars})
	return nil
}

func (n *stubNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

// ---------------------------------------------------------------------------
// Category repository
// ---------------------------------------------------------------------------

type stubCategoryRepo struct {
	byID      map[string]*domain.Category
	seq       int
	createErr error
	creates   int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{byID: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) seed(c *domain.Category) *domain.Category {
	r.seq++
	c.ID = fmt.Sprintf("c%d", r.seq)
	r.byID[c.ID] = c
	return c
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.creates++
	clone := *c
	r.seed(&clone)
	c.ID = clone.ID
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) FindByTitle(_ context.Context, title string) (*domain.Category, error) {
	for _, c := range r.byID {
		if c.Title == title {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) List(_ context.Context) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.byID {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

// ListAvailableFrom mirrors the Mongo {availableDate: {$gte: day}} query.
func (r *stubCategoryRepo) ListAvailableFrom(_ context.Context, day time.Time) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.byID {
		if c.OpenFrom(day) {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, id string, f ports.CategoryFields) (*domain.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	if f.Image != nil {
		c.Image = *f.Image
	}
	if f.Title != nil {
		c.Title = *f.Title
	}
	if f.Description != nil {
		c.Description = *f.Description
	}
	if f.Duration != nil {
		c.Duration = *f.Duration
	}
	if f.AddsOn != nil {
		c.AddsOn = *f.AddsOn
	}
	if f.AvailableDates != nil {
		c.AvailableDates = *f.AvailableDates
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Uploader
// ---------------------------------------------------------------------------

type stubUploader struct {
	err     error
	uploads []string
}

func (u *stubUploader) Upload(_ context.Context, in ports.UploadInput) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	if in.Body != nil {
		_, _ = io.Copy(io.Discard, in.Body)
	}
	u.uploads = append(u.uploads, in.Filename)
	return "https://cdn.example.com/" + in.Filename, nil
}

var errBoom = errors.New("boom")
