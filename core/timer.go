package core

import "time"

// Clock is the timing half of the GPIO collaborator.
type Clock interface {
	// SleepMicros blocks the caller for at least us microseconds
	SleepMicros(us uint32)

	// Millis returns a monotonic millisecond counter
	Millis() uint64
}

// SystemClock implements Clock on top of the runtime's monotonic clock.
type SystemClock struct {
	boot time.Time
}

// NewSystemClock creates a clock whose Millis counts from now
func NewSystemClock() *SystemClock {
	return &SystemClock{boot: time.Now()}
}

// Millis returns milliseconds since the clock was created
func (c *SystemClock) Millis() uint64 {
	return uint64(time.Since(c.boot) / time.Millisecond)
}

// SleepMicros delays for us microseconds.
// Short delays use the platform delay (see timer_go.go / timer_tinygo.go).
func (c *SystemClock) SleepMicros(us uint32) {
	if us == 0 {
		return
	}
	delayMicros(us)
}

// SleepMillis is a convenience wrapper used by the polling throttle
func SleepMillis(c Clock, ms uint64) {
	for ms > 0 {
		chunk := ms
		if chunk > 1000 {
			chunk = 1000
		}
		c.SleepMicros(uint32(chunk * 1000))
		ms -= chunk
	}
}
