package domain

// User is the domain representation of an account holder. The four lists hold
// references to trips the user owns or has joined, one pair per direction.
//
// Invariant: every id in an owned list references a trip whose owner is this
// user; every id in a member list references a trip whose member list contains
// this user's email. These lists are append-only in this core: trip deletion
// does not prune them (see the userstore port).
type User struct {
	Email string

	OwnedTripsFromCampus  []TripID
	OwnedTripsFromAirport []TripID

	MemberTripsFromCampus  []TripID
	MemberTripsFromAirport []TripID
}
