package userstore

import (
	"context"
	"errors"

	"github.com/igetback/shuttle-api/internal/domain"
)

// ErrNotFound indicates the requested user does not exist.
var ErrNotFound = errors.New("user not found")

// Store provides access to per-user trip membership lists.
//
// The append operations have upsert semantics: a user row is created on first
// append. Lists are append-only from this core's point of view: trip deletion
// deliberately does not cascade here, so a list may reference a trip that no
// longer exists.
type Store interface {
	// AppendOwnedTrip records that the user created the trip in the given
	// direction partition.
	AppendOwnedTrip(ctx context.Context, email string, id domain.TripID, dir domain.Direction) error

	// AppendMemberTrip records that the user joined the trip in the given
	// direction partition.
	AppendMemberTrip(ctx context.Context, email string, id domain.TripID, dir domain.Direction) error

	// Get returns the user's lists. Returns ErrNotFound for a user no append
	// has ever touched.
	Get(ctx context.Context, email string) (domain.User, error)
}
