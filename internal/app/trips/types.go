package trips

// CreateTripInput is the raw field mapping destined to become a trip. Fields
// arrive as decoded but unvalidated request values; the validation gate checks
// ranges, escapes the free-text fields and cross-checks reference data before
// any store write.
type CreateTripInput struct {
	MaxOtherMembers int

	// TripDate is a calendar date in 2006-01-02 form.
	TripDate        string
	TripHour        int
	TripQuarterHour int

	TripName string
	College  string
	Airport  string
}

// SearchInput selects trips by exact match on a departure slot and route.
type SearchInput struct {
	TripDate string
	TripHour int
	College  string
	Airport  string
}
