package ports

import "context"

// SubscriptionService handles newsletter sign-ups.
type SubscriptionService interface {
	Subscribe(ctx context.Context, email string) error
}
