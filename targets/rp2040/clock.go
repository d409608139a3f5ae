//go:build rp2040

package main

import (
	"runtime/volatile"
	"time"
	"unsafe"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x24 // Raw timer high word
	timerTIMERAWL = timerBase + 0x28 // Raw timer low word
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// Delays shorter than this spin on the timer instead of going through the scheduler
const spinMicros = 100

// hwClock implements core.Clock on the 1MHz RP2040 timer
type hwClock struct{}

// GetHardwareUptime reads the full 64-bit microsecond counter
func GetHardwareUptime() uint64 {
	// Read high, low, high to detect rollover
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()

		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// Millis returns milliseconds since boot
func (hwClock) Millis() uint64 {
	return GetHardwareUptime() / 1000
}

// SleepMicros busy-waits short bus delays and sleeps longer ones
func (hwClock) SleepMicros(us uint32) {
	if us == 0 {
		return
	}
	if us >= spinMicros {
		time.Sleep(time.Duration(us) * time.Microsecond)
		return
	}
	deadline := timerRAWL.Get() + us
	for int32(timerRAWL.Get()-deadline) < 0 {
	}
}
