package clock

import "time"

// Clock abstracts wall-clock reads so policies that depend on elapsed time
// (cache TTLs, purchase recency) stay testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System returns the real wall clock in UTC.
func System() Clock {
	return systemClock{}
}
