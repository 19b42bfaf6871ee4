package trips

import (
	"html"
	"time"

	"github.com/igetback/shuttle-api/internal/ports/out/refdata"
	"github.com/igetback/shuttle-api/internal/ports/out/tripstore"
)

const dateLayout = "2006-01-02"

// validateCreateTrip is the validation gate for trip creation. It populates a
// create query field by field from the raw input, escapes the free-text fields,
// runs semantic validation, then cross-checks airport and college against the
// reference sets. It performs no writes.
//
// Syntactic violations produce a VALIDATION_ERROR carrying every offending
// field; an unknown airport or college produces the distinct
// REFERENCE_NOT_FOUND error. The reference check only runs once syntactic
// validation has passed.
func validateCreateTrip(in CreateTripInput, ref refdata.Provider) (tripstore.CreateQuery, error) {
	q := tripstore.CreateQuery{
		MaxOtherMembers: in.MaxOtherMembers,
		TripHour:        in.TripHour,
		TripQuarterHour: in.TripQuarterHour,
		TripName:        html.EscapeString(in.TripName),
		College:         html.EscapeString(in.College),
		Airport:         html.EscapeString(in.Airport),
	}

	details := map[string]any{}
	if in.MaxOtherMembers < 0 {
		details["maxOtherMembers"] = "must be a non-negative integer"
	}
	if in.TripHour < 0 || in.TripHour > 23 {
		details["tripHour"] = "must be in [0,23]"
	}
	if in.TripQuarterHour < 0 || in.TripQuarterHour > 45 {
		details["tripQuarterHour"] = "must be in [0,45]"
	}
	if q.TripName == "" {
		details["tripName"] = "must be non-empty"
	}
	if q.College == "" {
		details["college"] = "must be non-empty"
	}
	if q.Airport == "" {
		details["airport"] = "must be non-empty"
	}
	d, err := time.Parse(dateLayout, in.TripDate)
	if err != nil {
		details["tripDate"] = "must be a valid " + dateLayout + " date"
	} else {
		q.TripDate = d.UTC()
	}
	if len(details) > 0 {
		return tripstore.CreateQuery{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid trip fields", Details: details}
	}

	if !ref.AirportCodes().Has(q.Airport) {
		return tripstore.CreateQuery{}, &Error{Status: 422, Code: "REFERENCE_NOT_FOUND", Message: "unknown airport", Details: map[string]any{"airport": q.Airport}}
	}
	if !ref.Colleges().Has(q.College) {
		return tripstore.CreateQuery{}, &Error{Status: 422, Code: "REFERENCE_NOT_FOUND", Message: "unknown college", Details: map[string]any{"college": q.College}}
	}

	return q, nil
}

// validateSearch checks a search query the same way trip creation is checked:
// every field must be present and in range before the store is consulted.
// Unknown-but-well-formed college/airport values are not cross-checked against
// reference data; they simply match nothing.
func validateSearch(in SearchInput) (tripstore.SearchQuery, error) {
	q := tripstore.SearchQuery{
		TripHour: in.TripHour,
		College:  in.College,
		Airport:  in.Airport,
	}

	details := map[string]any{}
	if in.TripHour < 0 || in.TripHour > 23 {
		details["tripHour"] = "must be in [0,23]"
	}
	if in.College == "" {
		details["college"] = "must be non-empty"
	}
	if in.Airport == "" {
		details["airport"] = "must be non-empty"
	}
	d, err := time.Parse(dateLayout, in.TripDate)
	if err != nil {
		details["tripDate"] = "must be a valid " + dateLayout + " date"
	} else {
		q.TripDate = d.UTC()
	}
	if len(details) > 0 {
		return tripstore.SearchQuery{}, &Error{Status: 422, Code: "VALIDATION_ERROR", Message: "invalid search fields", Details: details}
	}
	return q, nil
}
