//go:build !tinygo

package core

import "time"

// spinThreshold is the longest delay handled by busy-waiting. The Linux
// scheduler rounds short sleeps up to tens of microseconds, which would
// stretch every clock phase of the pad bus.
const spinThreshold = 200 * time.Microsecond

// delayMicros waits for us microseconds (regular Go implementation)
func delayMicros(us uint32) {
	d := time.Duration(us) * time.Microsecond
	if d > spinThreshold {
		time.Sleep(d)
		return
	}
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		// Busy wait
	}
}
