// Package core implements a bit-banged PlayStation 2 (DualShock) controller
// driver: the wire transport, the configuration handshake, the polling loop
// with link recovery, and button/stick edge tracking.
package core

import "errors"

var (
	// ErrNoController is returned when nothing answers the begin frame
	// within the watchdog window.
	ErrNoController = errors.New("no controller found, check wiring")

	// ErrUnrecognizedMode is returned when the controller answers but never
	// reports a digital or analog data mode after configuration.
	ErrUnrecognizedMode = errors.New("controller found but not in a recognizable mode")
)

// Pins names the four pad lines.
type Pins struct {
	Data    GPIOPin // DAT, controller to host, needs pull-up
	Command GPIOPin // CMD, host to controller
	Select  GPIOPin // ATT/SEL, active low
	Clock   GPIOPin // CLK
}

// Mode holds the requested controller configuration.
type Mode struct {
	Analog   bool // Analog (0x73) instead of digital (0x41)
	Locked   bool // Ignore the MODE button on the controller
	Pressure bool // Request pressure bytes (0x79)
	Rumble   bool // Map the vibration motors
}

// Timing holds bus and polling delays.
type Timing struct {
	ClockDelay     uint32 // Clock phase delay (µs)
	ByteDelay      uint32 // Inter-byte and select settle delay (µs)
	UpdateInterval uint64 // Minimum time between polls (ms)
	ExpiryInterval uint64 // Time without a valid frame before recovery (ms)
	Watchdog       uint64 // Probe and verification window (ms)
}

// DefaultTiming returns the delays used on a Raspberry Pi 3.
func DefaultTiming() Timing {
	return Timing{
		ClockDelay:     5,
		ByteDelay:      20,
		UpdateInterval: 50,
		ExpiryInterval: 1500,
		Watchdog:       1000,
	}
}

// withDefaults fills each zero field from DefaultTiming and keeps Watchdog
// below ExpiryInterval, so verification polls never take the stale path.
func (t Timing) withDefaults() Timing {
	def := DefaultTiming()
	if t.ClockDelay == 0 {
		t.ClockDelay = def.ClockDelay
	}
	if t.ByteDelay == 0 {
		t.ByteDelay = def.ByteDelay
	}
	if t.UpdateInterval == 0 {
		t.UpdateInterval = def.UpdateInterval
	}
	if t.ExpiryInterval == 0 {
		t.ExpiryInterval = def.ExpiryInterval
	}
	if t.Watchdog == 0 {
		t.Watchdog = def.Watchdog
	}
	if t.Watchdog >= t.ExpiryInterval {
		t.Watchdog = t.ExpiryInterval - 1
	}
	return t
}

// PadConfig configures NewPad. Zero Timing fields take the DefaultTiming value.
type PadConfig struct {
	Pins   Pins
	Mode   Mode
	Timing Timing
}

// Stats counts link activity since the pad was created.
type Stats struct {
	Polls       uint32 // Update calls that ran an exchange
	Frames      uint32 // Valid data frames
	Noise       uint32 // Frames discarded for a bad header
	Stale       uint32 // Expiry recoveries
	ConfigLeaks uint32 // Configuration-mode replies while polling
	Reconfigs   uint32 // Configuration sub-protocol runs (handshake included)
}

// Pad is one controller session. It owns its pins and response frame and is
// not safe for concurrent use.
type Pad struct {
	bus    bitBang
	pins   Pins
	clock  Clock
	timing Timing

	requested Mode // Written by ChangeMode
	mode      Mode // Committed by Reconfig

	state      linkState
	kind       ControllerType
	watchdog   uint64
	lastUpdate uint64

	frame Frame
	input inputState
	stats Stats
}

// NewPad configures the pins and performs the full handshake. It blocks until
// the controller reports a data mode or a watchdog expires.
func NewPad(gpio GPIODriver, clock Clock, cfg PadConfig) (*Pad, error) {
	cfg.Timing = cfg.Timing.withDefaults()

	p := &Pad{
		bus: bitBang{
			gpio:      gpio,
			clock:     clock,
			pins:      cfg.Pins,
			clkDelay:  cfg.Timing.ClockDelay,
			byteDelay: cfg.Timing.ByteDelay,
		},
		pins:      cfg.Pins,
		clock:     clock,
		timing:    cfg.Timing,
		requested: cfg.Mode,
		mode:      cfg.Mode,
		kind:      TypeUnknown,
		input:     newInputState(),
	}

	if err := p.bus.configure(); err != nil {
		return nil, err
	}

	if err := p.runHandshake(); err != nil {
		return nil, err
	}
	return p, nil
}

// ChangeMode records a new configuration. It has no effect on the
// controller until Reconfig runs.
func (p *Pad) ChangeMode(m Mode) {
	p.requested = m
}

// Reconfig commits the requested mode and runs the configuration
// sub-protocol (enter, set mode, optional rumble/pressure, exit).
func (p *Pad) Reconfig() {
	p.mode = p.requested

	var failure error
	p.run(stateConfigEnter, false, &failure)
}

// Mode returns the committed configuration
func (p *Pad) Mode() Mode {
	return p.mode
}

// RequestedMode returns the configuration waiting for Reconfig
func (p *Pad) RequestedMode() Mode {
	return p.requested
}

// Type returns the controller model read during the handshake
func (p *Pad) Type() ControllerType {
	return p.kind
}

// Stats returns link counters
func (p *Pad) Stats() Stats {
	return p.stats
}

// Frame returns a copy of the last response frame
func (p *Pad) Frame() Frame {
	return p.frame
}

// IsAnalog reports whether the last frame was an analog reply
func (p *Pad) IsAnalog() bool {
	return p.frame.Mode()&0xF0 == 0x70
}

// IsDigital reports whether the last frame was a digital reply
func (p *Pad) IsDigital() bool {
	return p.frame.Mode() == ModeDigital
}

// Close deselects the controller. Pin directions are left as they are.
func (p *Pad) Close() error {
	return p.bus.gpio.SetPin(p.pins.Select, true)
}
