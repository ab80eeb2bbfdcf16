package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

const resetTokenTTL = time.Hour

// AuthConfig holds token and predefined-admin settings.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	// AdminEmail and AdminPasswordHash (bcrypt) identify the environment
	// configured admin that exists outside the users collection.
	AdminEmail        string
	AdminPasswordHash string
	// ResetURLBase is prefixed to the reset token in the reset mail.
	ResetURLBase string
}

// AuthService implements accounts, login and password reset.
type AuthService struct {
	repo     ports.UserRepository
	notifier ports.Notifier
	cfg      AuthConfig
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(repo ports.UserRepository, notifier ports.Notifier, cfg AuthConfig, logger zerolog.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:     repo,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Signup(ctx context.Context, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", created.ID).Msg("user signed up")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// AdminLogin authenticates the predefined admin. Any mismatch, including an
// unconfigured admin, is reported as invalid credentials.
func (s *AuthService) AdminLogin(_ context.Context, email, password string) (string, error) {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPasswordHash == "" {
		return "", domain.ErrInvalidCredentials
	}
	if !strings.EqualFold(strings.TrimSpace(email), s.cfg.AdminEmail) {
		return "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.generateToken(domain.AdminSubject, s.cfg.AdminEmail, true)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	if userID == domain.AdminSubject {
		return &domain.User{ID: domain.AdminSubject, Email: s.cfg.AdminEmail, IsAdmin: true}, nil
	}
	return s.repo.FindByID(ctx, userID)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// RequestPasswordReset stores a one-hour reset token and mails the link.
// Unknown addresses succeed silently so the endpoint cannot be used to probe
// for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug().Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token := uuid.NewString()
	if err := s.repo.SetResetToken(ctx, user.ID, token, s.now().Add(resetTokenTTL)); err != nil {
		return err
	}

	vars := map[string]string{
		"username":  domain.Username(user.Email),
		"resetLink": strings.TrimRight(s.cfg.ResetURLBase, "/") + "/" + token,
	}
	if err := s.notifier.Send(ctx, user.Email, domain.TemplatePasswordReset, vars); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("password reset mail failed")
		return errors.Join(domain.ErrNotificationFailure, err)
	}
	return nil
}

// ResetPassword swaps the password of the user holding an unexpired token.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return domain.ErrInvalidResetToken
	}
	user, err := s.repo.FindByResetToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidResetToken
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

func (s *AuthService) generateToken(subject, email string, isAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"sub":      subject,
		"email":    email,
		"is_admin": isAdmin,
		"exp":      s.now().Add(s.cfg.TokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.JWTSecret))
}
