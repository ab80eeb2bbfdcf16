package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/faridcreations/booking-api/internal/core/domain"
	"github.com/faridcreations/booking-api/internal/core/ports"
)

type subscriptionService struct {
	notifier ports.Notifier
	dedup    ports.SubscriptionDedup
	log      zerolog.Logger
}

// NewSubscriptionService returns a SubscriptionService. dedup may be nil, in
// which case every subscription triggers a welcome mail.
func NewSubscriptionService(notifier ports.Notifier, dedup ports.SubscriptionDedup, log zerolog.Logger) ports.SubscriptionService {
	return &subscriptionService{notifier: notifier, dedup: dedup, log: log}
}

// Subscribe sends the newsletter welcome mail once per dedup window.
func (s *subscriptionService) Subscribe(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return domain.ErrEmailRequired
	}

	if s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("subscription dedup check failed, sending anyway")
		} else if isDup {
			s.log.Debug().Msg("repeat subscription, welcome mail skipped")
			return nil
		}
	}

	vars := map[string]string{"username": domain.Username(email)}
	if err := s.notifier.Send(ctx, email, domain.TemplateNewsletterWelcome, vars); err != nil {
		s.log.Error().Err(err).Msg("newsletter welcome mail failed")
		return errors.Join(domain.ErrNotificationFailure, err)
	}

	if s.dedup != nil {
		if err := s.dedup.Mark(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("failed to set subscription dedup key")
		}
	}
	return nil
}
