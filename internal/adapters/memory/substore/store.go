package substore

import (
	"context"
	"sort"
	"sync"

	"github.com/igetback/shuttle-api/internal/domain"
	"github.com/igetback/shuttle-api/internal/ports/out/substore"
)

// Store is an in-memory implementation of substore.Store.
// It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	subs map[domain.Direction][]domain.Subscription
}

func NewStore() *Store {
	return &Store{
		subs: map[domain.Direction][]domain.Subscription{
			domain.DirectionFromCampus:  {},
			domain.DirectionFromAirport: {},
		},
	}
}

func (s *Store) Create(ctx context.Context, sub domain.Subscription, dir domain.Direction) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[dir] = append(s.subs[dir], sub)
	return nil
}

func (s *Store) MatchRecipients(ctx context.Context, q substore.MatchQuery, dir domain.Direction) ([]string, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, sub := range s.subs[dir] {
		if sub.College != q.College || sub.Airport != q.Airport {
			continue
		}
		if !sub.TripDate.Equal(q.TripDate) || sub.TripHour != q.TripHour {
			continue
		}
		if _, dup := seen[sub.Email]; dup {
			continue
		}
		seen[sub.Email] = struct{}{}
		out = append(out, sub.Email)
	}
	sort.Strings(out)
	return out, nil
}
