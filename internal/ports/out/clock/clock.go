package clock

import "time"

// Clock provides time to the application. An interface so tests can pin
// timestamps deterministically.
type Clock interface {
	Now() time.Time
}
