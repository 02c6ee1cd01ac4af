package clock

import "time"

// Clock is the time source used by rooms and questions
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in UTC
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current UTC time
func (c *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Func adapts c to a plain function, for types that take a now func
func Func(c Clock) func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}
