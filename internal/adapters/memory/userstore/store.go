package userstore

import (
	"context"
	"sync"

	"github.com/igetback/shuttle-api/internal/domain"
	"github.com/igetback/shuttle-api/internal/ports/out/userstore"
)

// Store is an in-memory implementation of userstore.Store.
// It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	byMail map[string]domain.User
}

func NewStore() *Store {
	return &Store{byMail: make(map[string]domain.User)}
}

func (s *Store) AppendOwnedTrip(ctx context.Context, email string, id domain.TripID, dir domain.Direction) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.byMail[email]
	u.Email = email
	if dir == domain.DirectionFromCampus {
		u.OwnedTripsFromCampus = append(u.OwnedTripsFromCampus, id)
	} else {
		u.OwnedTripsFromAirport = append(u.OwnedTripsFromAirport, id)
	}
	s.byMail[email] = u
	return nil
}

func (s *Store) AppendMemberTrip(ctx context.Context, email string, id domain.TripID, dir domain.Direction) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.byMail[email]
	u.Email = email
	if dir == domain.DirectionFromCampus {
		u.MemberTripsFromCampus = append(u.MemberTripsFromCampus, id)
	} else {
		u.MemberTripsFromAirport = append(u.MemberTripsFromAirport, id)
	}
	s.byMail[email] = u
	return nil
}

func (s *Store) Get(ctx context.Context, email string) (domain.User, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byMail[email]
	if !ok {
		return domain.User{}, userstore.ErrNotFound
	}
	return cloneUser(u), nil
}

func cloneUser(u domain.User) domain.User {
	cp := u
	cp.OwnedTripsFromCampus = append([]domain.TripID(nil), u.OwnedTripsFromCampus...)
	cp.OwnedTripsFromAirport = append([]domain.TripID(nil), u.OwnedTripsFromAirport...)
	cp.MemberTripsFromCampus = append([]domain.TripID(nil), u.MemberTripsFromCampus...)
	cp.MemberTripsFromAirport = append([]domain.TripID(nil), u.MemberTripsFromAirport...)
	return cp
}
