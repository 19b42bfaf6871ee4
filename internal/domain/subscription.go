package domain

import "time"

// Subscription is a standing interest in future trips matching a route and
// departure slot. Subscribers are notified by email when a matching trip is
// created.
type Subscription struct {
	Email string

	College string
	Airport string

	TripDate        time.Time
	TripHour        int
	TripQuarterHour int
}
