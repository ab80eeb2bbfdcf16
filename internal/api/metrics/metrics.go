// Package metrics defines the custom Prometheus metrics of the booking API.
// All metrics register with the default registry through promauto, which
// the /metrics endpoint exposes alongside echoprometheus' HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsCreatedTotal counts stored bookings.
// Label:
//   - key_shape: "category" or "phone"
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings stored, by natural key shape.",
	},
	[]string{"key_shape"},
)

// BookingConflictsTotal counts creates and updates rejected by the natural key.
var BookingConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_conflicts_total",
		Help:      "Total number of booking writes rejected as duplicates.",
	},
)

// NotificationFailuresTotal counts mails that could not be sent.
// Label:
//   - template: booking_confirmation, newsletter_welcome or password_reset
var NotificationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification mails that failed, by template.",
	},
	[]string{"template"},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogMutationsTotal counts admin catalog writes.
// Label:
//   - op: "create", "update" or "delete"
var CatalogMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_mutations_total",
		Help:      "Total number of appointment category writes, by operation.",
	},
	[]string{"op"},
)

// ── Newsletter metrics ────────────────────────────────────────────────────────

// SubscriptionsTotal counts subscribe requests that completed without error.
var SubscriptionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "newsletter_subscriptions_total",
		Help:      "Total number of successful newsletter subscribe requests.",
	},
)

// RateLimitedTotal counts requests rejected by the rate limiter.
// Label:
//   - route: the matched route path
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter.",
	},
	[]string{"route"},
)
