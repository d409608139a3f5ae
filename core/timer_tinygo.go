//go:build tinygo

package core

import "time"

// delayMicros waits for us microseconds.
// TinyGo's scheduler sleeps with microsecond resolution on the RP2040 timer.
func delayMicros(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}
