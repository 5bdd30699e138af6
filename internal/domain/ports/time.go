package ports

import "time"

// TimeProvider is the clock shared by the deck service, the generator's
// retry backoff, the HTTP rate limiter and the activity monitor. Tests swap
// in a manual clock to step through windows and delays.
type TimeProvider interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// RealTimeProvider reads the wall clock
type RealTimeProvider struct{}

// NewRealTimeProvider returns the wall clock
func NewRealTimeProvider() TimeProvider {
	return &RealTimeProvider{}
}

func (tp *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// After fires once d has elapsed; backoff waits select on it alongside ctx.Done
func (tp *RealTimeProvider) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
