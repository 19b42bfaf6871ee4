package substore

import (
	"context"
	"time"

	"github.com/igetback/shuttle-api/internal/domain"
)

// MatchQuery selects subscriptions interested in a departure slot on a route.
// Matching is exact on all four fields; the quarter-hour offset is deliberately
// not part of the match so a subscriber hears about any trip within the hour.
type MatchQuery struct {
	College  string
	Airport  string
	TripDate time.Time
	TripHour int
}

// Store provides access to persisted subscriptions, partitioned by direction
// like trips.
type Store interface {
	Create(ctx context.Context, sub domain.Subscription, dir domain.Direction) error

	// MatchRecipients returns the distinct emails of subscribers matching q.
	MatchRecipients(ctx context.Context, q MatchQuery, dir domain.Direction) ([]string, error)
}
