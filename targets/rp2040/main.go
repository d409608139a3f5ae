//go:build rp2040

package main

import (
	"machine"
	"time"

	"ps2pad/core"
	"ps2pad/protocol"
)

// Pad wiring on the board
var padPins = core.Pins{
	Data:    core.GPIOPin(machine.GPIO2),
	Command: core.GPIOPin(machine.GPIO3),
	Select:  core.GPIOPin(machine.GPIO4),
	Clock:   core.GPIOPin(machine.GPIO5),
}

var (
	// Buffers for communication
	inputBuffer  *protocol.FifoBuffer
	outputBuffer *protocol.ScratchOutput
	encoder      *protocol.Encoder
	decoder      *protocol.Decoder

	// Mode request received from the host, applied between polls
	pendingMode    protocol.ModeRequest
	hasPendingMode bool

	// Debug counters
	reportsSent uint32
	msgerrors   uint32

	// USB connection state tracking
	usbWasDisconnected       bool
	consecutiveWriteFailures uint32
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	InitUSB()

	inputBuffer = protocol.NewFifoBuffer(256)
	outputBuffer = protocol.NewScratchOutput()
	encoder = protocol.NewEncoder(outputBuffer)
	decoder = protocol.NewDecoder(handleMessage)

	go usbReaderLoop()

	display, err := newStatusDisplay()
	if err != nil {
		display = nil
	}

	gpio := NewRPGPIODriver()
	core.SetGPIODriver(gpio)
	clock := hwClock{}

	pad := connectPad(clock)

	pending := false
	for {
		func() {
			defer func() {
				if r := recover(); r != nil {
					msgerrors++
					inputBuffer.Reset()
					outputBuffer.Reset()
				}
			}()

			processInput()

			if hasPendingMode {
				hasPendingMode = false
				pad.ChangeMode(core.Mode{
					Analog:   pendingMode.Analog,
					Locked:   pendingMode.Locked,
					Pressure: pendingMode.Pressure,
					Rumble:   pendingMode.Rumble,
				})
				pad.Reconfig()
			}

			before := pad.Stats()
			pad.Update()
			after := pad.Stats()
			mode := pad.Frame().Mode()

			sendNotices(after.Stale-before.Stale, core.EvtStale, mode)
			sendNotices(after.ConfigLeaks-before.ConfigLeaks, core.EvtConfigLeak, mode)
			sendNotices(after.Noise-before.Noise, core.EvtNoise, mode)

			changed := pad.Changed()
			if changed || pending {
				pending = changed
				report := protocol.Report{
					Buttons: uint16(pad.Down()),
					LStick:  uint16(pad.LStick()),
					RStick:  uint16(pad.RStick()),
					Mode:    mode,
				}
				if encoder.Encode(protocol.MsgPadState, report.EncodeArgs) == nil {
					reportsSent++
				}
				if display != nil {
					_ = display.Show(pad.Down(), pad.LStick(), pad.RStick(), pad.IsAnalog())
				}
			}

			writeUSB()
		}()
	}
}

// connectPad retries the handshake until a controller answers
func connectPad(clock core.Clock) *core.Pad {
	cfg := core.PadConfig{
		Pins:   padPins,
		Mode:   core.Mode{Analog: true},
		Timing: core.DefaultTiming(),
	}
	for {
		pad, err := core.NewPad(core.MustGPIO(), clock, cfg)
		if err == nil {
			sendNotices(1, core.EvtModeConfirmed, pad.Frame().Mode())
			writeUSB()
			return pad
		}
		sendNotices(1, core.EvtFailed, 0)
		writeUSB()
		time.Sleep(time.Second)
	}
}

func sendNotices(n uint32, event uint8, mode byte) {
	notice := protocol.LinkNotice{Event: event, Mode: mode}
	for ; n > 0; n-- {
		if encoder.Encode(protocol.MsgPadLink, notice.EncodeArgs) != nil {
			msgerrors++
		}
	}
}

// handleMessage accepts set_mode; anything else from the host is an error
func handleMessage(id uint16, args *[]byte) error {
	if id != protocol.MsgSetMode {
		return protocol.ErrUnexpectedMessage
	}
	req, err := protocol.DecodeModeRequest(args)
	if err != nil {
		return err
	}
	pendingMode = req
	hasPendingMode = true
	return nil
}

// processInput decodes whatever complete frames the reader has queued
func processInput() {
	if inputBuffer.Available() == 0 {
		return
	}
	decoder.Feed(inputBuffer)
}

// usbReaderLoop runs in a goroutine to continuously read USB data
func usbReaderLoop() {
	defer func() {
		if r := recover(); r != nil {
			msgerrors++
			time.Sleep(100 * time.Millisecond)
			go usbReaderLoop()
		}
	}()

	for {
		if USBAvailable() > 0 {
			data, err := USBRead()
			if err != nil {
				msgerrors++
				time.Sleep(1 * time.Millisecond)
				continue
			}

			// Fresh connection after a disconnect
			if usbWasDisconnected {
				usbWasDisconnected = false
				inputBuffer.Reset()
				outputBuffer.Reset()
				decoder.Reset()
				consecutiveWriteFailures = 0
			}

			if inputBuffer.Write([]byte{data}) == 0 {
				msgerrors++
				time.Sleep(10 * time.Millisecond)
			}
		}
		time.Sleep(100 * time.Microsecond)
	}
}

// writeUSB drains the output buffer to USB
func writeUSB() {
	result := outputBuffer.Result()
	if len(result) == 0 {
		return
	}

	written := 0
	for written < len(result) {
		n, err := USBWriteBytes(result[written:])
		if err != nil || n == 0 {
			// Likely disconnect
			consecutiveWriteFailures++
			if consecutiveWriteFailures > 10 {
				usbWasDisconnected = true
				consecutiveWriteFailures = 0
				// Don't keep stale reports around
				outputBuffer.Reset()
				inputBuffer.Reset()
			}
			return
		}
		written += n
	}

	consecutiveWriteFailures = 0
	outputBuffer.Reset()
}
