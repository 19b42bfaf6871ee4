package tripstore

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/igetback/shuttle-api/internal/domain"
	"github.com/igetback/shuttle-api/internal/ports/out/dbresult"
	"github.com/igetback/shuttle-api/internal/ports/out/tripstore"
)

// Store is an in-memory implementation of tripstore.Store.
// It is safe for concurrent use: the conditional append in AddMember runs
// entirely under the store lock, which gives the per-trip mutual exclusion the
// capacity invariant requires.
type Store struct {
	mu sync.RWMutex
	// One independent map per direction partition.
	byID map[domain.Direction]map[domain.TripID]tripstore.Trip

	newID func() domain.TripID
}

func NewStore() *Store {
	return &Store{
		byID: map[domain.Direction]map[domain.TripID]tripstore.Trip{
			domain.DirectionFromCampus:  {},
			domain.DirectionFromAirport: {},
		},
		newID: func() domain.TripID {
			return domain.TripID(uuid.NewString())
		},
	}
}

// SetNewIDForTest overrides trip ID generation for deterministic tests.
// It should not be used in production code.
func (s *Store) SetNewIDForTest(fn func() domain.TripID) {
	if fn != nil {
		s.newID = fn
	}
}

func (s *Store) Create(ctx context.Context, q tripstore.CreateQuery, dir domain.Direction) dbresult.Result[tripstore.Trip] {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	part, ok := s.byID[dir]
	if !ok {
		return dbresult.Left[tripstore.Trip](dbresult.DBErrorf("unknown direction %q", dir))
	}

	t := tripstore.Trip{
		ID:              s.newID(),
		OwnerEmail:      q.OwnerEmail,
		MaxOtherMembers: q.MaxOtherMembers,
		MemberEmails:    []string{},
		TripDate:        q.TripDate,
		TripHour:        q.TripHour,
		TripQuarterHour: q.TripQuarterHour,
		TripName:        q.TripName,
		College:         q.College,
		Airport:         q.Airport,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.CreatedAt,
	}
	part[t.ID] = cloneTrip(t)
	return dbresult.Right(t)
}

func (s *Store) GetByID(ctx context.Context, id domain.TripID, dir domain.Direction) dbresult.Result[tripstore.Trip] {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byID[dir][id]
	if !ok {
		return dbresult.Left[tripstore.Trip](dbresult.StoreError{Code: dbresult.CodeNotFound})
	}
	return dbresult.Right(cloneTrip(t))
}

func (s *Store) AddMember(ctx context.Context, id domain.TripID, email string, dir domain.Direction) dbresult.Result[bool] {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[dir][id]
	if !ok {
		return dbresult.Left[bool](dbresult.StoreError{Code: dbresult.CodeNotFound})
	}
	if len(t.MemberEmails) >= t.MaxOtherMembers {
		return dbresult.Left[bool](dbresult.StoreError{Code: dbresult.CodeTripFull})
	}
	t.MemberEmails = append(t.MemberEmails, email)
	s.byID[dir][id] = t
	return dbresult.Right(true)
}

func (s *Store) Delete(ctx context.Context, id domain.TripID, requesterEmail string, dir domain.Direction) dbresult.Result[bool] {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[dir][id]
	if !ok || t.OwnerEmail != requesterEmail {
		return dbresult.Right(false)
	}
	delete(s.byID[dir], id)
	return dbresult.Right(true)
}

func (s *Store) Search(ctx context.Context, q tripstore.SearchQuery, dir domain.Direction) dbresult.Result[[]tripstore.Trip] {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]tripstore.Trip, 0)
	for _, t := range s.byID[dir] {
		if t.TripDate.Equal(q.TripDate) &&
			t.TripHour == q.TripHour &&
			t.College == q.College &&
			t.Airport == q.Airport {
			out = append(out, cloneTrip(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return dbresult.Right(out)
}

func cloneTrip(t tripstore.Trip) tripstore.Trip {
	cp := t
	cp.MemberEmails = append([]string(nil), t.MemberEmails...)
	return cp
}
