package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/faridcreations/booking-api/docs"
	"github.com/faridcreations/booking-api/internal/api/handler"
	"github.com/faridcreations/booking-api/internal/api/middleware"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Logger    zerolog.Logger
	JWTSecret string

	Auth          ports.AuthService
	Bookings      ports.BookingService
	Categories    ports.CategoryService
	Subscriptions ports.SubscriptionService
	Health        *handler.HealthHandler

	// RateLimiter guards the unauthenticated write routes. Nil disables it.
	RateLimiter   *middleware.RateLimiter
	MaxImageBytes int64

	// Registerer and Gatherer default to the prometheus globals, where the
	// promauto metrics live.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	registerer, gatherer := d.Registerer, d.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "booking",
		Registerer: registerer,
	}))

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	if d.Health != nil {
		e.GET("/health", d.Health.Liveness)        // liveness  – is the process alive?
		e.GET("/health/ready", d.Health.Readiness) // readiness – are dependencies up?
	}

	var limited echo.MiddlewareFunc = func(h echo.HandlerFunc) echo.HandlerFunc { return h }
	if d.RateLimiter != nil {
		limited = middleware.RateLimit(d.RateLimiter)
	}
	auth := middleware.Auth(d.JWTSecret)
	admin := []echo.MiddlewareFunc{auth, middleware.AdminOnly()}

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth)
	a := v1.Group("/auth")
	a.POST("/signup", limited(authHandler.Signup))
	a.POST("/login", limited(authHandler.Login))
	a.POST("/admin/login", limited(authHandler.AdminLogin))
	a.POST("/password-reset", limited(authHandler.RequestPasswordReset))
	a.POST("/reset/:token", limited(authHandler.ResetPassword))
	a.GET("/user/profile", authHandler.Profile, auth)
	a.GET("/users", authHandler.ListUsers, admin...)
	a.DELETE("/delete/:id", authHandler.DeleteUser, admin...)

	// --- Newsletter ---
	subHandler := handler.NewSubscriptionHandler(d.Subscriptions)
	v1.POST("/subscription/subscribe", limited(subHandler.Subscribe))

	// --- Catalog ---
	catHandler := handler.NewCategoryHandler(d.Categories, d.MaxImageBytes)
	cat := v1.Group("/appointment")
	cat.GET("", catHandler.List)
	cat.GET("/single/:id", catHandler.Get)
	cat.GET("/:date", catHandler.ListFromDate)
	cat.POST("/create", catHandler.Create, admin...)
	cat.PUT("/update/:id", catHandler.Update, admin...)
	cat.DELETE("/delete/:id", catHandler.Delete, admin...)

	// --- Bookings ---
	bookingHandler := handler.NewBookingHandler(d.Bookings)
	b := v1.Group("/booking")
	b.POST("/create", bookingHandler.Create)
	b.GET("/single/:id", bookingHandler.Get)
	b.GET("/lookup", bookingHandler.Lookup)
	b.GET("", bookingHandler.List, admin...)
	b.PUT("/update/:id", bookingHandler.Update, admin...)
	b.DELETE("/delete/:id", bookingHandler.Delete, admin...)

	return e
}
