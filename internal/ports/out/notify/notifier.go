package notify

import (
	"context"
	"time"
)

// TripNotification describes a created trip to interested subscribers.
type TripNotification struct {
	Recipients []string

	Origin      string
	Destination string

	TripDate        time.Time
	TripHour        int
	TripQuarterHour int

	// ContactEmail is the trip owner's address, included so subscribers can
	// reach out directly.
	ContactEmail string
}

// Notifier delivers subscriber notifications. Callers treat delivery as
// fire-and-forget: a returned error is logged, never propagated to the
// operation that triggered the notification.
type Notifier interface {
	SubscriberNotification(ctx context.Context, n TripNotification) error
}
