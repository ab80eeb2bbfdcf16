// @title                       Booking API
// @version                     1.0
// @description                 Appointment catalog, booking ledger and client accounts.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/rs/zerolog"

	"github.com/faridcreations/booking-api/internal/api"
	"github.com/faridcreations/booking-api/internal/api/handler"
	"github.com/faridcreations/booking-api/internal/api/middleware"
	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
	"github.com/faridcreations/booking-api/internal/core/service"
	mongodb "github.com/faridcreations/booking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/faridcreations/booking-api/internal/infrastructure/db/redis"
	"github.com/faridcreations/booking-api/internal/infrastructure/notify"
	"github.com/faridcreations/booking-api/internal/infrastructure/storage"
	"github.com/faridcreations/booking-api/internal/pkg/config"
	"github.com/faridcreations/booking-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "booking-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	shape, err := domain.ParseKeyShape(cfg.Booking.KeyShape)
	if err != nil {
		return err
	}

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	bookingRepo := mongodb.NewBookingRepository(db, shape)
	categoryRepo := mongodb.NewCategoryRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	for _, idx := range []interface{ EnsureIndexes(context.Context) error }{bookingRepo, categoryRepo, userRepo} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			return err
		}
	}

	// Redis only backs newsletter dedup; without it every subscribe is welcomed.
	var (
		dedup       ports.SubscriptionDedup
		redisPinger handler.RedisPinger
	)
	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	switch {
	case errors.Is(err, redisdb.ErrNotConfigured):
		log.Info().Msg("REDIS_ADDR not set, newsletter dedup disabled")
	case err != nil:
		log.Warn().Err(err).Msg("redis unavailable, newsletter dedup disabled")
	default:
		defer rdb.Close()
		dedup = redisdb.NewSubscriptionDedup(rdb, cfg.Redis.DedupTTL)
		redisPinger = rdb
	}

	// --- AWS ---
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return err
	}
	var s3Client storage.S3API
	if cfg.Upload.Bucket != "" {
		s3Client = s3.NewFromConfig(awsCfg)
	} else {
		log.Warn().Msg("UPLOAD_BUCKET not set, catalog image uploads disabled")
	}
	uploader := storage.NewS3Uploader(s3Client, cfg.Upload.Bucket, cfg.AWS.Region, cfg.Upload.PublicBaseURL, logger.Component("storage"))

	// --- Mail ---
	mailLog := logger.Component("mail")
	var sender notify.EmailSender
	switch strings.ToLower(cfg.Mail.Driver) {
	case "ses":
		sender = notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.Mail.FromEmail,
			FromName:  cfg.Mail.FromName,
		}, mailLog)
	case "sendgrid":
		sender = notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.Mail.SendGridAPIKey,
			FromEmail: cfg.Mail.FromEmail,
			FromName:  cfg.Mail.FromName,
		}, mailLog)
	default:
		sender = notify.NewLogSender(mailLog)
	}
	mailer, err := notify.NewMailer(sender, mailLog)
	if err != nil {
		return err
	}

	// --- Services ---
	bookingOpts := service.BookingOptions{
		KeyShape:          shape,
		EmptyListNotFound: cfg.Booking.EmptyListNotFound,
	}
	if cfg.Booking.EnforceSlots {
		bookingOpts.Catalog = categoryRepo
	}
	bookings := service.NewBookingService(bookingRepo, mailer, bookingOpts, logger.Component("booking"))
	categories := service.NewCategoryService(categoryRepo, uploader, cfg.Booking.EmptyListNotFound, logger.Component("catalog"))
	subscriptions := service.NewSubscriptionService(mailer, dedup, logger.Component("subscription"))
	auth := service.NewAuthService(userRepo, mailer, service.AuthConfig{
		JWTSecret:         cfg.Auth.JWTSecret,
		TokenTTL:          cfg.Auth.TokenTTL,
		AdminEmail:        cfg.Auth.AdminEmail,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
		ResetURLBase:      cfg.Auth.ResetURLBase,
	}, logger.Component("auth"))

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	go limiter.Run(ctx)

	e := api.NewRouter(api.Deps{
		Logger:        logger.Component("http"),
		JWTSecret:     cfg.Auth.JWTSecret,
		Auth:          auth,
		Bookings:      bookings,
		Categories:    categories,
		Subscriptions: subscriptions,
		Health:        handler.NewHealthHandler(mongoClient, redisPinger),
		RateLimiter:   limiter,
		MaxImageBytes: cfg.Upload.MaxBytes,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("key_shape", string(shape)).Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
