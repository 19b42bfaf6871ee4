package refdata

// Set is a read-only membership set of reference values. Instances are loaded
// once at process start and shared by all concurrent validations without
// locking.
type Set map[string]struct{}

// Has reports whether v is a known reference value.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// NewSet builds a Set from a list of values.
func NewSet(values []string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Provider exposes the static reference data trips are validated against.
type Provider interface {
	AirportCodes() Set
	Colleges() Set
}
