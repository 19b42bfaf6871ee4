package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/igetback/shuttle-api/internal/app/subscriptions"
	"github.com/igetback/shuttle-api/internal/app/trips"
	"github.com/igetback/shuttle-api/internal/domain"
)

// Server holds the app services the HTTP handlers delegate to.
type Server struct {
	trips *trips.Service
	subs  *subscriptions.Service
	log   *zap.Logger
}

func NewServer(tripsSvc *trips.Service, subsSvc *subscriptions.Service, log *zap.Logger) *Server {
	return &Server{trips: tripsSvc, subs: subsSvc, log: log}
}

// JSON shapes. Field names follow the original client contract.

type createTripRequest struct {
	MaxOtherMembers int    `json:"maxOtherMembers"`
	TripDate        string `json:"tripDate"`
	TripHour        int    `json:"tripHour"`
	TripQuarterHour int    `json:"tripQuarterHour"`
	TripName        string `json:"tripName"`
	College         string `json:"college"`
	Airport         string `json:"airport"`
}

type joinTripRequest struct {
	TripID string `json:"tripId"`
}

type searchTripsRequest struct {
	TripDate string `json:"tripDate"`
	TripHour int    `json:"tripHour"`
	College  string `json:"college"`
	Airport  string `json:"airport"`
}

type subscribeRequest struct {
	TripDate        string `json:"tripDate"`
	TripHour        int    `json:"tripHour"`
	TripQuarterHour int    `json:"tripQuarterHour"`
	College         string `json:"college"`
	Airport         string `json:"airport"`
}

type tripResponse struct {
	ID               string   `json:"id"`
	OwnerEmail       string   `json:"ownerEmail"`
	MaxOtherMembers  int      `json:"maxOtherMembers"`
	TripMemberEmails []string `json:"tripMemberEmails"`
	TripDate         string   `json:"tripDate"`
	TripHour         int      `json:"tripHour"`
	TripQuarterHour  int      `json:"tripQuarterHour"`
	TripName         string   `json:"tripName"`
	College          string   `json:"college"`
	Airport          string   `json:"airport"`
}

type userResponse struct {
	Email                  string   `json:"email"`
	OwnedTripsFromCampus   []string `json:"ownedTripsFromCampus"`
	OwnedTripsFromAirport  []string `json:"ownedTripsFromAirport"`
	MemberTripsFromCampus  []string `json:"memberTripsFromCampus"`
	MemberTripsFromAirport []string `json:"memberTripsFromAirport"`
}

func toTripResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:               string(t.ID),
		OwnerEmail:       t.OwnerEmail,
		MaxOtherMembers:  t.MaxOtherMembers,
		TripMemberEmails: t.MemberEmails,
		TripDate:         t.TripDate.Format("2006-01-02"),
		TripHour:         t.TripHour,
		TripQuarterHour:  t.TripQuarterHour,
		TripName:         t.TripName,
		College:          t.College,
		Airport:          t.Airport,
	}
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	email, dir, ok := s.authAndDirection(w, r)
	if !ok {
		return
	}
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "malformed JSON body", nil)
		return
	}

	created, err := s.trips.CreateTrip(r.Context(), email, dir, trips.CreateTripInput{
		MaxOtherMembers: req.MaxOtherMembers,
		TripDate:        req.TripDate,
		TripHour:        req.TripHour,
		TripQuarterHour: req.TripQuarterHour,
		TripName:        req.TripName,
		College:         req.College,
		Airport:         req.Airport,
	})
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTripResponse(created))
}

func (s *Server) handleJoinTrip(w http.ResponseWriter, r *http.Request) {
	email, dir, ok := s.authAndDirection(w, r)
	if !ok {
		return
	}
	var req joinTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TripID == "" {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "missing tripId", nil)
		return
	}

	if err := s.trips.JoinTrip(r.Context(), email, dir, domain.TripID(req.TripID)); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"joined": true})
}

func (s *Server) handleSearchTrips(w http.ResponseWriter, r *http.Request) {
	email, dir, ok := s.authAndDirection(w, r)
	if !ok {
		return
	}
	var req searchTripsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "malformed JSON body", nil)
		return
	}

	results, err := s.trips.SearchTrips(r.Context(), email, dir, trips.SearchInput{
		TripDate: req.TripDate,
		TripHour: req.TripHour,
		College:  req.College,
		Airport:  req.Airport,
	})
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	out := make([]tripResponse, 0, len(results))
	for _, t := range results {
		out = append(out, toTripResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	email, dir, ok := s.authAndDirection(w, r)
	if !ok {
		return
	}
	tripID := chi.URLParam(r, "tripID")
	if tripID == "" {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "missing trip id", nil)
		return
	}

	if err := s.trips.DeleteTrip(r.Context(), email, dir, domain.TripID(tripID)); err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	email, dir, ok := s.authAndDirection(w, r)
	if !ok {
		return
	}
	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "malformed JSON body", nil)
		return
	}

	sub, err := s.subs.Subscribe(r.Context(), email, dir, subscriptions.SubscribeInput{
		TripDate:        req.TripDate,
		TripHour:        req.TripHour,
		TripQuarterHour: req.TripQuarterHour,
		College:         req.College,
		Airport:         req.Airport,
	})
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"email":    sub.Email,
		"college":  sub.College,
		"airport":  sub.Airport,
		"tripDate": sub.TripDate.Format("2006-01-02"),
	})
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	email, ok := EmailFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil)
		return
	}
	u, err := s.trips.GetUser(r.Context(), email)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{
		Email:                  u.Email,
		OwnedTripsFromCampus:   toStrings(u.OwnedTripsFromCampus),
		OwnedTripsFromAirport:  toStrings(u.OwnedTripsFromAirport),
		MemberTripsFromCampus:  toStrings(u.MemberTripsFromCampus),
		MemberTripsFromAirport: toStrings(u.MemberTripsFromAirport),
	})
}

func toStrings(ids []domain.TripID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	return out
}

// authAndDirection extracts the authenticated email and the direction path
// segment, writing the error response itself when either is missing.
func (s *Server) authAndDirection(w http.ResponseWriter, r *http.Request) (string, domain.Direction, bool) {
	email, ok := EmailFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing identity", nil)
		return "", "", false
	}
	dir, ok := domain.ParseDirection(chi.URLParam(r, "direction"))
	if !ok {
		writeError(w, r, http.StatusBadRequest, "BAD_REQUEST", "direction must be fromCampus or fromAirport", nil)
		return "", "", false
	}
	return email, dir, true
}
