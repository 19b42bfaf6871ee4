package subscriptions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	memsubstore "github.com/igetback/shuttle-api/internal/adapters/memory/substore"
	"github.com/igetback/shuttle-api/internal/app/subscriptions"
	"github.com/igetback/shuttle-api/internal/app/trips"
	"github.com/igetback/shuttle-api/internal/domain"
	"github.com/igetback/shuttle-api/internal/ports/out/refdata"
	"github.com/igetback/shuttle-api/internal/ports/out/substore"
)

type staticRef struct {
	airports refdata.Set
	colleges refdata.Set
}

func (r staticRef) AirportCodes() refdata.Set { return r.airports }
func (r staticRef) Colleges() refdata.Set     { return r.colleges }

func newService(store substore.Store) *subscriptions.Service {
	ref := staticRef{
		airports: refdata.NewSet([]string{"BDL", "JFK"}),
		colleges: refdata.NewSet([]string{"Amherst College"}),
	}
	return subscriptions.NewService(store, ref, zap.NewNop())
}

func TestService_Subscribe_PersistsAndReturnsMatchable(t *testing.T) {
	t.Parallel()
	store := memsubstore.NewStore()
	svc := newService(store)

	sub, err := svc.Subscribe(context.Background(), " Rider@College.EDU ", domain.DirectionFromCampus, subscriptions.SubscribeInput{
		College:         "Amherst College",
		Airport:         "BDL",
		TripDate:        "2026-06-01",
		TripHour:        7,
		TripQuarterHour: 45,
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if sub.Email != "rider@college.edu" {
		t.Fatalf("email=%q", sub.Email)
	}
	if !sub.TripDate.Equal(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date=%v", sub.TripDate)
	}

	got, err := store.MatchRecipients(context.Background(), substore.MatchQuery{
		College:  "Amherst College",
		Airport:  "BDL",
		TripDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		TripHour: 7,
	}, domain.DirectionFromCampus)
	if err != nil {
		t.Fatalf("MatchRecipients: %v", err)
	}
	if len(got) != 1 || got[0] != "rider@college.edu" {
		t.Fatalf("recipients=%v", got)
	}
}

func TestService_Subscribe_Invalid(t *testing.T) {
	t.Parallel()
	svc := newService(memsubstore.NewStore())

	_, err := svc.Subscribe(context.Background(), "rider@college.edu", domain.DirectionFromCampus, subscriptions.SubscribeInput{
		College:  "",
		Airport:  "BDL",
		TripDate: "bad",
		TripHour: 25,
	})
	var ae *trips.Error
	if !errors.As(err, &ae) || ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("err=%v", err)
	}
	for _, field := range []string{"college", "tripDate", "tripHour"} {
		if _, ok := ae.Details[field]; !ok {
			t.Errorf("details missing %s: %v", field, ae.Details)
		}
	}
}

func TestService_Subscribe_UnknownReference(t *testing.T) {
	t.Parallel()
	svc := newService(memsubstore.NewStore())

	_, err := svc.Subscribe(context.Background(), "rider@college.edu", domain.DirectionFromCampus, subscriptions.SubscribeInput{
		College:  "Amherst College",
		Airport:  "ZZZ",
		TripDate: "2026-06-01",
		TripHour: 7,
	})
	var ae *trips.Error
	if !errors.As(err, &ae) || ae.Code != "REFERENCE_NOT_FOUND" {
		t.Fatalf("err=%v", err)
	}
}
