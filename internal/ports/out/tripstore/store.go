package tripstore

import (
	"context"
	"time"

	"github.com/igetback/shuttle-api/internal/domain"
	"github.com/igetback/shuttle-api/internal/ports/out/dbresult"
)

// Trip is the persistence shape used by the trip store. It is not an HTTP DTO.
type Trip struct {
	ID domain.TripID

	OwnerEmail      string
	MaxOtherMembers int
	MemberEmails    []string

	TripDate        time.Time
	TripHour        int
	TripQuarterHour int

	TripName string
	College  string
	Airport  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateQuery carries the validated fields for a new trip. The store assigns
// the identity and starts the member list empty.
type CreateQuery struct {
	OwnerEmail      string
	MaxOtherMembers int

	TripDate        time.Time
	TripHour        int
	TripQuarterHour int

	TripName string
	College  string
	Airport  string

	// CreatedAt is stamped by the caller so tests can pin time.
	CreatedAt time.Time
}

// SearchQuery matches trips by exact equality on all four fields.
type SearchQuery struct {
	TripDate time.Time
	TripHour int
	College  string
	Airport  string
}

// Store provides access to persisted trips. Every operation addresses exactly
// one direction partition; the partitions share no state.
//
// Operations return dbresult.Result so callers can discriminate business
// failures (NOT_FOUND, TRIP_FULL) from persistence faults (DB_ERROR) by code.
type Store interface {
	// Create inserts a new trip with an empty member list and returns the
	// created record with its assigned identity. Fails only with DB_ERROR.
	Create(ctx context.Context, q CreateQuery, dir domain.Direction) dbresult.Result[Trip]

	GetByID(ctx context.Context, id domain.TripID, dir domain.Direction) dbresult.Result[Trip]

	// AddMember atomically appends email to the trip's member list if and only
	// if the list currently holds fewer than MaxOtherMembers entries. The
	// capacity check and the append are one conditional update: concurrent
	// joins on the same trip serialize and the invariant never breaks.
	//
	// Returns Left(NOT_FOUND) if the trip does not exist, Left(TRIP_FULL) if
	// the capacity check fails, Right(true) if the append was applied.
	// Right(false) is a defensive marker for a conditional update that neither
	// applied nor classified; implementations honoring the contract above
	// never produce it.
	AddMember(ctx context.Context, id domain.TripID, email string, dir domain.Direction) dbresult.Result[bool]

	// Delete removes the trip only if requesterEmail equals the trip's owner.
	// Right(false) means not found or not the owner; Left is reserved for
	// persistence faults.
	Delete(ctx context.Context, id domain.TripID, requesterEmail string, dir domain.Direction) dbresult.Result[bool]

	// Search returns all trips in the partition matching q. No pagination.
	Search(ctx context.Context, q SearchQuery, dir domain.Direction) dbresult.Result[[]Trip]
}
