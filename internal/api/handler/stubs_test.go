package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newJSONContext(e *echo.Echo, method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func mustNotCall(t *testing.T) {
	t.Helper()
	t.Fatalf("should not be called")
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

type stubAuthService struct {
	signupFn        func(ctx context.Context, email, password string) (*domain.User, error)
	loginFn         func(ctx context.Context, email, password string) (string, *domain.User, error)
	adminLoginFn    func(ctx context.Context, email, password string) (string, error)
	profileFn       func(ctx context.Context, userID string) (*domain.User, error)
	listUsersFn     func(ctx context.Context) ([]*domain.User, error)
	deleteUserFn    func(ctx context.Context, id string) error
	requestResetFn  func(ctx context.Context, email string) error
	resetPasswordFn func(ctx context.Context, token, password string) error
}

func (s *stubAuthService) Signup(ctx context.Context, email, password string) (*domain.User, error) {
	return s.signupFn(ctx, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) AdminLogin(ctx context.Context, email, password string) (string, error) {
	return s.adminLoginFn(ctx, email, password)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubAuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listUsersFn(ctx)
}

func (s *stubAuthService) DeleteUser(ctx context.Context, id string) error {
	return s.deleteUserFn(ctx, id)
}

func (s *stubAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return s.requestResetFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, password string) error {
	return s.resetPasswordFn(ctx, token, password)
}

// ---------------------------------------------------------------------------
// Bookings
// ---------------------------------------------------------------------------

type stubBookingService struct {
	shape    domain.KeyShape
	createFn func(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateBookingInput) (*domain.Booking, error)
	getFn    func(ctx context.Context, subject, date, email string) (*domain.Booking, error)
	getIDFn  func(ctx context.Context, id string) (*domain.Booking, error)
	listFn   func(ctx context.Context) ([]*domain.Booking, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubBookingService) CreateBooking(ctx context.Context, in ports.CreateBookingInput) (*domain.Booking, error) {
	return s.createFn(ctx, in)
}

func (s *stubBookingService) UpdateBooking(ctx context.Context, id string, in ports.UpdateBookingInput) (*domain.Booking, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubBookingService) GetBooking(ctx context.Context, subject, date, email string) (*domain.Booking, error) {
	return s.getFn(ctx, subject, date, email)
}

func (s *stubBookingService) GetBookingByID(ctx context.Context, id string) (*domain.Booking, error) {
	return s.getIDFn(ctx, id)
}

func (s *stubBookingService) ListBookings(ctx context.Context) ([]*domain.Booking, error) {
	return s.listFn(ctx)
}

func (s *stubBookingService) DeleteBooking(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubBookingService) KeyShape() domain.KeyShape {
	if s.shape == "" {
		return domain.KeyByCategory
	}
	return s.shape
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

type stubCategoryService struct {
	createFn   func(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error)
	updateFn   func(ctx context.Context, id string, in ports.UpdateCategoryInput) (*domain.Category, error)
	getFn      func(ctx context.Context, id string) (*domain.Category, error)
	listFn     func(ctx context.Context) ([]*domain.Category, error)
	listFromFn func(ctx context.Context, date string) ([]*domain.Category, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubCategoryService) CreateCategory(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error) {
	return s.createFn(ctx, in)
}

func (s *stubCategoryService) UpdateCategory(ctx context.Context, id string, in ports.UpdateCategoryInput) (*domain.Category, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubCategoryService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return s.getFn(ctx, id)
}

func (s *stubCategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.listFn(ctx)
}

func (s *stubCategoryService) ListCategoriesFromDate(ctx context.Context, date string) ([]*domain.Category, error) {
	return s.listFromFn(ctx, date)
}

func (s *stubCategoryService) DeleteCategory(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

// ---------------------------------------------------------------------------
// Newsletter
// ---------------------------------------------------------------------------

type stubSubscriptionService struct {
	subscribeFn func(ctx context.Context, email string) error
}

func (s *stubSubscriptionService) Subscribe(ctx context.Context, email string) error {
	return s.subscribeFn(ctx, email)
}
