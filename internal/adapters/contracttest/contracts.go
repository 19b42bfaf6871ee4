// Package contracttest holds behavioral suites every store implementation
// must pass. The memory and postgres adapters run the same suites, so the
// service-level tests can rely on identical semantics from either backend.
package contracttest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/igetback/shuttle-api/internal/domain"
	"github.com/igetback/shuttle-api/internal/ports/out/dbresult"
	"github.com/igetback/shuttle-api/internal/ports/out/substore"
	"github.com/igetback/shuttle-api/internal/ports/out/tripstore"
	"github.com/igetback/shuttle-api/internal/ports/out/userstore"
)

type CleanupFunc = func()

type TripStoreFactory func(t *testing.T) (tripstore.Store, CleanupFunc)
type UserStoreFactory func(t *testing.T) (userstore.Store, CleanupFunc)
type SubStoreFactory func(t *testing.T) (substore.Store, CleanupFunc)

func mustRight[T any](t *testing.T, r dbresult.Result[T], what string) T {
	t.Helper()
	return dbresult.CaseOf(r,
		func(se dbresult.StoreError) T {
			t.Fatalf("%s: unexpected store error: %v", what, se)
			var zero T
			return zero
		},
		func(v T) T { return v },
	)
}

func leftCode[T any](t *testing.T, r dbresult.Result[T], what string) dbresult.Code {
	t.Helper()
	return dbresult.CaseOf(r,
		func(se dbresult.StoreError) dbresult.Code { return se.Code },
		func(T) dbresult.Code {
			t.Fatalf("%s: expected store error, got value", what)
			return ""
		},
	)
}

func RunTripStore(t *testing.T, newStore TripStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	created := mustRight(t, store.Create(ctx, tripstore.CreateQuery{
		OwnerEmail:      "owner@college.edu",
		MaxOtherMembers: 2,
		TripDate:        date,
		TripHour:        9,
		TripQuarterHour: 15,
		TripName:        "Morning run",
		College:         "Amherst College",
		Airport:         "BDL",
		CreatedAt:       time.Unix(3000, 0).UTC(),
	}, domain.DirectionFromCampus), "Create")
	if created.ID == "" {
		t.Fatalf("expected assigned id, got empty")
	}
	if len(created.MemberEmails) != 0 {
		t.Fatalf("expected empty member list, got %v", created.MemberEmails)
	}

	got := mustRight(t, store.GetByID(ctx, created.ID, domain.DirectionFromCampus), "GetByID")
	if got.OwnerEmail != "owner@college.edu" || got.MaxOtherMembers != 2 {
		t.Fatalf("unexpected trip: %+v", got)
	}

	// Partitions share nothing: the id does not resolve in the other one.
	if code := leftCode(t, store.GetByID(ctx, created.ID, domain.DirectionFromAirport), "GetByID other partition"); code != dbresult.CodeNotFound {
		t.Fatalf("expected NOT_FOUND in other partition, got %s", code)
	}

	// Unknown id.
	if code := leftCode(t, store.AddMember(ctx, domain.TripID("00000000-0000-0000-0000-000000000000"), "x@college.edu", domain.DirectionFromCampus), "AddMember unknown"); code != dbresult.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}

	// Fill to capacity, then one over.
	for _, email := range []string{"a@college.edu", "b@college.edu"} {
		if ok := mustRight(t, store.AddMember(ctx, created.ID, email, domain.DirectionFromCampus), "AddMember"); !ok {
			t.Fatalf("expected append to apply for %s", email)
		}
	}
	if code := leftCode(t, store.AddMember(ctx, created.ID, "c@college.edu", domain.DirectionFromCampus), "AddMember full"); code != dbresult.CodeTripFull {
		t.Fatalf("expected TRIP_FULL, got %s", code)
	}
	got = mustRight(t, store.GetByID(ctx, created.ID, domain.DirectionFromCampus), "GetByID after joins")
	if len(got.MemberEmails) != 2 {
		t.Fatalf("expected exactly 2 members, got %v", got.MemberEmails)
	}

	// Concurrent joins on a fresh trip: exactly MaxOtherMembers must win.
	race := mustRight(t, store.Create(ctx, tripstore.CreateQuery{
		OwnerEmail:      "racer@college.edu",
		MaxOtherMembers: 3,
		TripDate:        date,
		TripHour:        17,
		TripQuarterHour: 0,
		TripName:        "Contested",
		College:         "Amherst College",
		Airport:         "BDL",
		CreatedAt:       time.Unix(3000, 0).UTC(),
	}, domain.DirectionFromCampus), "Create race trip")

	const joiners = 8
	var wg sync.WaitGroup
	results := make([]dbresult.Result[bool], joiners)
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := string(rune('a'+i)) + "-race@college.edu"
			results[i] = store.AddMember(ctx, race.ID, email, domain.DirectionFromCampus)
		}(i)
	}
	wg.Wait()

	wins, fulls := 0, 0
	for _, r := range results {
		dbresult.CaseOf(r,
			func(se dbresult.StoreError) struct{} {
				if se.Code == dbresult.CodeTripFull {
					fulls++
				} else {
					t.Errorf("unexpected error code %s", se.Code)
				}
				return struct{}{}
			},
			func(ok bool) struct{} {
				if ok {
					wins++
				}
				return struct{}{}
			},
		)
	}
	if wins != 3 || fulls != joiners-3 {
		t.Fatalf("expected 3 wins and %d fulls, got wins=%d fulls=%d", joiners-3, wins, fulls)
	}
	raceFinal := mustRight(t, store.GetByID(ctx, race.ID, domain.DirectionFromCampus), "GetByID race")
	if len(raceFinal.MemberEmails) != 3 {
		t.Fatalf("capacity invariant broken: %v", raceFinal.MemberEmails)
	}

	// Search matches on exact date, hour, college and airport.
	found := mustRight(t, store.Search(ctx, tripstore.SearchQuery{
		TripDate: date,
		TripHour: 9,
		College:  "Amherst College",
		Airport:  "BDL",
	}, domain.DirectionFromCampus), "Search")
	if len(found) != 1 || found[0].ID != created.ID {
		t.Fatalf("unexpected search result: %#v", found)
	}
	none := mustRight(t, store.Search(ctx, tripstore.SearchQuery{
		TripDate: date,
		TripHour: 10,
		College:  "Amherst College",
		Airport:  "BDL",
	}, domain.DirectionFromCampus), "Search wrong hour")
	if len(none) != 0 {
		t.Fatalf("expected no results, got %#v", none)
	}

	// Delete is owner-only.
	if deleted := mustRight(t, store.Delete(ctx, created.ID, "stranger@college.edu", domain.DirectionFromCampus), "Delete stranger"); deleted {
		t.Fatalf("non-owner delete must not apply")
	}
	if deleted := mustRight(t, store.Delete(ctx, created.ID, "owner@college.edu", domain.DirectionFromCampus), "Delete owner"); !deleted {
		t.Fatalf("owner delete must apply")
	}
	if code := leftCode(t, store.GetByID(ctx, created.ID, domain.DirectionFromCampus), "GetByID after delete"); code != dbresult.CodeNotFound {
		t.Fatalf("expected NOT_FOUND after delete, got %s", code)
	}
	if deleted := mustRight(t, store.Delete(ctx, created.ID, "owner@college.edu", domain.DirectionFromCampus), "Delete again"); deleted {
		t.Fatalf("repeat delete must report false")
	}
}

func RunUserStore(t *testing.T, newStore UserStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	if _, err := store.Get(ctx, "nobody@college.edu"); err != userstore.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	t1 := domain.TripID(uuid.NewString())
	t2 := domain.TripID(uuid.NewString())
	t3 := domain.TripID(uuid.NewString())
	t4 := domain.TripID(uuid.NewString())

	// First append upserts the row.
	if err := store.AppendOwnedTrip(ctx, "alice@college.edu", t1, domain.DirectionFromCampus); err != nil {
		t.Fatalf("AppendOwnedTrip: %v", err)
	}
	if err := store.AppendOwnedTrip(ctx, "alice@college.edu", t2, domain.DirectionFromAirport); err != nil {
		t.Fatalf("AppendOwnedTrip airport: %v", err)
	}
	if err := store.AppendMemberTrip(ctx, "alice@college.edu", t3, domain.DirectionFromCampus); err != nil {
		t.Fatalf("AppendMemberTrip: %v", err)
	}

	u, err := store.Get(ctx, "alice@college.edu")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(u.OwnedTripsFromCampus) != 1 || u.OwnedTripsFromCampus[0] != t1 {
		t.Fatalf("unexpected owned campus list: %v", u.OwnedTripsFromCampus)
	}
	if len(u.OwnedTripsFromAirport) != 1 || u.OwnedTripsFromAirport[0] != t2 {
		t.Fatalf("unexpected owned airport list: %v", u.OwnedTripsFromAirport)
	}
	if len(u.MemberTripsFromCampus) != 1 || u.MemberTripsFromCampus[0] != t3 {
		t.Fatalf("unexpected member campus list: %v", u.MemberTripsFromCampus)
	}
	if len(u.MemberTripsFromAirport) != 0 {
		t.Fatalf("unexpected member airport list: %v", u.MemberTripsFromAirport)
	}

	// Appends accumulate in order.
	if err := store.AppendOwnedTrip(ctx, "alice@college.edu", t4, domain.DirectionFromCampus); err != nil {
		t.Fatalf("AppendOwnedTrip second: %v", err)
	}
	u, err = store.Get(ctx, "alice@college.edu")
	if err != nil {
		t.Fatalf("Get after second append: %v", err)
	}
	if len(u.OwnedTripsFromCampus) != 2 || u.OwnedTripsFromCampus[1] != t4 {
		t.Fatalf("unexpected owned campus list: %v", u.OwnedTripsFromCampus)
	}
}

func RunSubscriptionStore(t *testing.T, newStore SubStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	date := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	subs := []domain.Subscription{
		{Email: "a@college.edu", College: "Amherst College", Airport: "BDL", TripDate: date, TripHour: 9, TripQuarterHour: 0},
		{Email: "b@college.edu", College: "Amherst College", Airport: "BDL", TripDate: date, TripHour: 9, TripQuarterHour: 30},
		{Email: "a@college.edu", College: "Amherst College", Airport: "BDL", TripDate: date, TripHour: 9, TripQuarterHour: 45},
		{Email: "c@college.edu", College: "Amherst College", Airport: "BDL", TripDate: date, TripHour: 10, TripQuarterHour: 0},
		{Email: "d@college.edu", College: "Amherst College", Airport: "JFK", TripDate: date, TripHour: 9, TripQuarterHour: 0},
	}
	for i, sub := range subs {
		if err := store.Create(ctx, sub, domain.DirectionFromCampus); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}
	// Other partition must not leak into campus matches.
	if err := store.Create(ctx, domain.Subscription{
		Email: "e@college.edu", College: "Amherst College", Airport: "BDL", TripDate: date, TripHour: 9,
	}, domain.DirectionFromAirport); err != nil {
		t.Fatalf("Create airport partition: %v", err)
	}

	got, err := store.MatchRecipients(ctx, substore.MatchQuery{
		College:  "Amherst College",
		Airport:  "BDL",
		TripDate: date,
		TripHour: 9,
	}, domain.DirectionFromCampus)
	if err != nil {
		t.Fatalf("MatchRecipients: %v", err)
	}
	// Distinct emails regardless of quarter-hour; hour and airport filter out
	// the rest.
	if len(got) != 2 || got[0] != "a@college.edu" || got[1] != "b@college.edu" {
		t.Fatalf("unexpected recipients: %v", got)
	}

	empty, err := store.MatchRecipients(ctx, substore.MatchQuery{
		College:  "Dartmouth College",
		Airport:  "BDL",
		TripDate: date,
		TripHour: 9,
	}, domain.DirectionFromCampus)
	if err != nil {
		t.Fatalf("MatchRecipients empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no recipients, got %v", empty)
	}
}
