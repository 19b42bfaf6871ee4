package domain

// TripID is an internal identifier for a trip record. It is assigned by the
// trip store at creation time and is opaque to callers.
type TripID string

// Direction selects one of the two independent trip partitions. Trips leaving
// campus and trips leaving the airport are identical in shape but are never
// cross-queried.
type Direction string

const (
	DirectionFromCampus  Direction = "fromCampus"
	DirectionFromAirport Direction = "fromAirport"
)

// ParseDirection maps a request path segment to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirectionFromCampus:
		return DirectionFromCampus, true
	case DirectionFromAirport:
		return DirectionFromAirport, true
	default:
		return "", false
	}
}
