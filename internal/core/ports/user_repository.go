package ports

import (
	"context"
	"time"

	"github.com/faridcreations/booking-api/internal/core/domain"
)

// UserRepository defines account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByResetToken only matches tokens whose expiry is after now.
	FindByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	// UpdatePassword stores a new hash and clears any pending reset token.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}
