package payments

import "time"

// Clock abstracts timing so processing delays can be controlled in tests
type Clock interface {
	Now() time.Time
	// After returns a channel that fires once d has elapsed
	After(d time.Duration) <-chan time.Time
}

type realClock struct{}

func (realClock) Now() time.Time                         { return time.Now() }
func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// NewRealClock returns a Clock backed by the system clock
func NewRealClock() Clock {
	return realClock{}
}
