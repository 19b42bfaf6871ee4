package trips

// Error is an application-layer error that can be mapped to an HTTP response.
// Business failures always carry an enumerated Code; infrastructure faults are
// returned as plain errors and surface as opaque server errors.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}
