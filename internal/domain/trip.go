package domain

import "time"

// Trip is the domain representation of a shuttle trip. MemberEmails holds the
// users who joined; it never contains OwnerEmail.
//
// Invariant: len(MemberEmails) <= MaxOtherMembers.
type Trip struct {
	ID TripID

	OwnerEmail      string
	MaxOtherMembers int
	MemberEmails    []string

	// TripDate has date-only semantics at the edges; TripHour is 0-23 and
	// TripQuarterHour is the minute offset within the hour (0, 15, 30 or 45).
	TripDate        time.Time
	TripHour        int
	TripQuarterHour int

	TripName string
	College  string
	Airport  string

	CreatedAt time.Time
}

// Origin is the human-readable place the trip leaves from.
func (t Trip) Origin(dir Direction) string {
	if dir == DirectionFromCampus {
		return t.College
	}
	return t.Airport
}

// Destination is the human-readable place the trip arrives at.
func (t Trip) Destination(dir Direction) string {
	if dir == DirectionFromCampus {
		return t.Airport
	}
	return t.College
}
