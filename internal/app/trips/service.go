package trips

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/igetback/shuttle-api/internal/domain"
	"github.com/igetback/shuttle-api/internal/ports/out/clock"
	"github.com/igetback/shuttle-api/internal/ports/out/dbresult"
	"github.com/igetback/shuttle-api/internal/ports/out/notify"
	"github.com/igetback/shuttle-api/internal/ports/out/refdata"
	"github.com/igetback/shuttle-api/internal/ports/out/substore"
	"github.com/igetback/shuttle-api/internal/ports/out/tripstore"
	"github.com/igetback/shuttle-api/internal/ports/out/userstore"
)

const notifyTimeout = 30 * time.Second

// Service coordinates trip creation, joining, deletion and search. It is the
// only component that writes across the trip store and the user store. When
// the second of the two writes fails the first is not rolled back; the
// inconsistency is logged under the "reconcile" key and the operation is
// reported as failed.
type Service struct {
	trips    tripstore.Store
	users    userstore.Store
	subs     substore.Store
	ref      refdata.Provider
	notifier notify.Notifier
	clk      clock.Clock
	log      *zap.Logger

	// launch runs the subscriber-notification work; overridable so tests can
	// run it inline.
	launch func(fn func())
}

func NewService(
	trips tripstore.Store,
	users userstore.Store,
	subs substore.Store,
	ref refdata.Provider,
	notifier notify.Notifier,
	clk clock.Clock,
	log *zap.Logger,
) *Service {
	return &Service{
		trips:    trips,
		users:    users,
		subs:     subs,
		ref:      ref,
		notifier: notifier,
		clk:      clk,
		log:      log,
		launch:   func(fn func()) { go fn() },
	}
}

// SetNotifyLaunchForTest overrides how notification work is scheduled.
// It should not be used in production code.
func (s *Service) SetNotifyLaunchForTest(fn func(func())) {
	if fn != nil {
		s.launch = fn
	}
}

// CreateTrip validates the input, inserts the trip, then appends the new trip
// id to the owner's owned list for the direction. A trip-store failure aborts
// before any user write; a user-store failure after the trip committed leaves
// an orphaned trip, which is logged and reported as an overall failure.
func (s *Service) CreateTrip(ctx context.Context, ownerEmail string, dir domain.Direction, in CreateTripInput) (domain.Trip, error) {
	q, err := validateCreateTrip(in, s.ref)
	if err != nil {
		return domain.Trip{}, err
	}
	q.OwnerEmail = domain.NormalizeEmail(ownerEmail)
	q.CreatedAt = s.clk.Now()

	created, err := asEither(s.trips.Create(ctx, q, dir))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("create trip: %w", err)
	}

	if err := s.users.AppendOwnedTrip(ctx, q.OwnerEmail, created.ID, dir); err != nil {
		s.log.Error("reconcile: trip created but owner list append failed",
			zap.String("tripId", string(created.ID)),
			zap.String("direction", string(dir)),
			zap.String("email", q.OwnerEmail),
			zap.Error(err),
		)
		return domain.Trip{}, fmt.Errorf("append owned trip: %w", err)
	}

	t := toDomainTrip(created)
	s.launch(func() { s.notifySubscribers(dir, t) })
	return t, nil
}

// JoinTrip atomically appends the user to the trip's member list, then appends
// the trip id to the user's member list. NOT_FOUND and TRIP_FULL short-circuit
// with their specific codes and never touch the user store.
func (s *Service) JoinTrip(ctx context.Context, userEmail string, dir domain.Direction, id domain.TripID) error {
	email := domain.NormalizeEmail(userEmail)

	res := s.trips.AddMember(ctx, id, email, dir)
	appended, err := dbresult.CaseOfE(res,
		func(se dbresult.StoreError) (bool, error) {
			switch se.Code {
			case dbresult.CodeNotFound:
				return false, &Error{Status: 404, Code: "TRIP_NOT_FOUND", Message: "unknown trip"}
			case dbresult.CodeTripFull:
				return false, &Error{Status: 409, Code: "TRIP_FULL", Message: "trip full"}
			default:
				return false, fmt.Errorf("add member: %s", se)
			}
		},
		func(ok bool) (bool, error) { return ok, nil },
	)
	if err != nil {
		return err
	}
	if !appended {
		// Reachable only if the store breaks the conditional-update contract.
		s.log.Error("conditional append neither applied nor classified",
			zap.String("tripId", string(id)),
			zap.String("direction", string(dir)),
		)
		return fmt.Errorf("add member: unexpected store result")
	}

	if err := s.users.AppendMemberTrip(ctx, email, id, dir); err != nil {
		s.log.Error("reconcile: member joined trip but member list append failed",
			zap.String("tripId", string(id)),
			zap.String("direction", string(dir)),
			zap.String("email", email),
			zap.Error(err),
		)
		return fmt.Errorf("append member trip: %w", err)
	}
	return nil
}

// DeleteTrip removes the trip if the requester owns it. It does not touch the
// user store: owner and member lists keep their reference to the deleted trip.
func (s *Service) DeleteTrip(ctx context.Context, requesterEmail string, dir domain.Direction, id domain.TripID) error {
	deleted, err := asEither(s.trips.Delete(ctx, id, domain.NormalizeEmail(requesterEmail), dir))
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	if !deleted {
		return &Error{Status: 404, Code: "TRIP_NOT_FOUND", Message: "unknown trip"}
	}
	return nil
}

// SearchTrips returns trips matching the query, excluding those owned by the
// requester. Search fails open: a store failure degrades to an empty result.
func (s *Service) SearchTrips(ctx context.Context, requesterEmail string, dir domain.Direction, in SearchInput) ([]domain.Trip, error) {
	q, err := validateSearch(in)
	if err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(requesterEmail)

	return dbresult.CaseOfE(s.trips.Search(ctx, q, dir),
		func(se dbresult.StoreError) ([]domain.Trip, error) {
			s.log.Debug("search failed, returning empty result",
				zap.String("direction", string(dir)),
				zap.String("code", string(se.Code)),
			)
			return []domain.Trip{}, nil
		},
		func(ts []tripstore.Trip) ([]domain.Trip, error) {
			out := make([]domain.Trip, 0, len(ts))
			for _, t := range ts {
				if t.OwnerEmail == email {
					continue
				}
				out = append(out, toDomainTrip(t))
			}
			return out, nil
		},
	)
}

// GetUser returns the requester's membership lists. A user no write has ever
// touched resolves to an empty profile rather than an error.
func (s *Service) GetUser(ctx context.Context, email string) (domain.User, error) {
	normalized := domain.NormalizeEmail(email)
	u, err := s.users.Get(ctx, normalized)
	if errors.Is(err, userstore.ErrNotFound) {
		return domain.User{Email: normalized}, nil
	}
	return u, err
}

func (s *Service) notifySubscribers(dir domain.Direction, t domain.Trip) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	recipients, err := s.subs.MatchRecipients(ctx, substore.MatchQuery{
		College:  t.College,
		Airport:  t.Airport,
		TripDate: t.TripDate,
		TripHour: t.TripHour,
	}, dir)
	if err != nil {
		s.log.Error("failed to look up subscribers", zap.String("tripId", string(t.ID)), zap.Error(err))
		return
	}
	if len(recipients) == 0 {
		s.log.Debug("no recipients for notifications", zap.String("tripId", string(t.ID)))
		return
	}

	err = s.notifier.SubscriberNotification(ctx, notify.TripNotification{
		Recipients:      recipients,
		Origin:          t.Origin(dir),
		Destination:     t.Destination(dir),
		TripDate:        t.TripDate,
		TripHour:        t.TripHour,
		TripQuarterHour: t.TripQuarterHour,
		ContactEmail:    t.OwnerEmail,
	})
	if err != nil {
		s.log.Error("failed to notify subscribers", zap.String("tripId", string(t.ID)), zap.Error(err))
	}
}

// asEither collapses a store Result into the (value, error) form used inside
// the coordinator for operations whose left side is always infrastructural.
func asEither[T any](r dbresult.Result[T]) (T, error) {
	return dbresult.CaseOfE(r,
		func(se dbresult.StoreError) (T, error) {
			var zero T
			return zero, se
		},
		func(v T) (T, error) { return v, nil },
	)
}

func toDomainTrip(t tripstore.Trip) domain.Trip {
	return domain.Trip{
		ID:              t.ID,
		OwnerEmail:      t.OwnerEmail,
		MaxOtherMembers: t.MaxOtherMembers,
		MemberEmails:    append([]string(nil), t.MemberEmails...),
		TripDate:        t.TripDate,
		TripHour:        t.TripHour,
		TripQuarterHour: t.TripQuarterHour,
		TripName:        t.TripName,
		College:         t.College,
		Airport:         t.Airport,
		CreatedAt:       t.CreatedAt,
	}
}
