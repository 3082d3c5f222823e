package kernel

import "time"

// Clock supplies the current instant. Use cases read it once per request so every
// status derived in that request shares the same "now".
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ClockFunc adapts a function to Clock. Tests use it to pin "now".
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
