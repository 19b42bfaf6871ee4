package subscriptions

import (
	"context"
	"fmt"
	"html"
	"time"

	"go.uber.org/zap"

	"github.com/igetback/shuttle-api/internal/app/trips"
	"github.com/igetback/shuttle-api/internal/domain"
	"github.com/igetback/shuttle-api/internal/ports/out/refdata"
	"github.com/igetback/shuttle-api/internal/ports/out/substore"
)

const dateLayout = "2006-01-02"

// SubscribeInput is the raw subscription request.
type SubscribeInput struct {
	College string
	Airport string

	TripDate        string
	TripHour        int
	TripQuarterHour int
}

// Service records standing interest in future trips. Subscriptions are
// validated against the same reference sets as trips so a typo'd airport never
// produces a silent dead subscription.
type Service struct {
	subs substore.Store
	ref  refdata.Provider
	log  *zap.Logger
}

func NewService(subs substore.Store, ref refdata.Provider, log *zap.Logger) *Service {
	return &Service{subs: subs, ref: ref, log: log}
}

func (s *Service) Subscribe(ctx context.Context, email string, dir domain.Direction, in SubscribeInput) (domain.Subscription, error) {
	sub := domain.Subscription{
		Email:           domain.NormalizeEmail(email),
		College:         html.EscapeString(in.College),
		Airport:         html.EscapeString(in.Airport),
		TripHour:        in.TripHour,
		TripQuarterHour: in.TripQuarterHour,
	}

	details := map[string]any{}
	if in.TripHour < 0 || in.TripHour > 23 {
		details["tripHour"] = "must be in [0,23]"
	}
	if in.TripQuarterHour < 0 || in.TripQuarterHour > 45 {
		details["tripQuarterHour"] = "must be in [0,45]"
	}
	if sub.College == "" {
		details["college"] = "must be non-empty"
	}
	if sub.Airport == "" {
		details["airport"] = "must be non-empty"
	}
	d, err := time.Parse(dateLayout, in.TripDate)
	if err != nil {
		details["tripDate"] = "must be a valid " + dateLayout + " date"
	} else {
		sub.TripDate = d.UTC()
	}
	if len(details) > 0 {
		return domain.Subscription{}, &trips.Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid subscription fields", Details: details}
	}

	if !s.ref.AirportCodes().Has(sub.Airport) {
		return domain.Subscription{}, &trips.Error{Status: 422, Code: "REFERENCE_NOT_FOUND", Message: "unknown airport", Details: map[string]any{"airport": sub.Airport}}
	}
	if !s.ref.Colleges().Has(sub.College) {
		return domain.Subscription{}, &trips.Error{Status: 422, Code: "REFERENCE_NOT_FOUND", Message: "unknown college", Details: map[string]any{"college": sub.College}}
	}

	if err := s.subs.Create(ctx, sub, dir); err != nil {
		return domain.Subscription{}, fmt.Errorf("create subscription: %w", err)
	}
	s.log.Debug("subscription created",
		zap.String("email", sub.Email),
		zap.String("direction", string(dir)),
	)
	return sub, nil
}
