package session

import "time"

// Clock abstracts time for validity checks so expiry boundaries can be
// tested deterministically.
type Clock interface {
	// Now returns the current local time.
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

func (fn ClockFunc) Now() time.Time {
	return fn()
}

// SystemTime is the wall-clock Clock used outside of tests.
var SystemTime Clock = ClockFunc(time.Now)
