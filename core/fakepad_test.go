package core

import "testing"

// Test pin numbers (BCM numbering of the default wiring)
const (
	pinDAT GPIOPin = 9
	pinCMD GPIOPin = 10
	pinSEL GPIOPin = 8
	pinCLK GPIOPin = 11
)

var testPins = Pins{Data: pinDAT, Command: pinCMD, Select: pinSEL, Clock: pinCLK}

// fakePad emulates a DualShock 2 at the bit level. It implements both
// GPIODriver and Clock: the clock is virtual and only moves when the driver
// sleeps, so watchdogs and throttling are deterministic.
type fakePad struct {
	t *testing.T

	// Pin state as driven by the host
	levels     map[GPIOPin]bool
	outputs    map[GPIOPin]bool
	pullups    map[GPIOPin]bool
	dataOut    bool
	micros     uint64
	selected   bool
	bitIndex   uint
	cmdByte    byte
	txByte     byte
	frameCmd   []byte
	frameReply []byte

	// Controller model
	present     bool
	kind        byte
	configMode  bool
	analog      bool
	locked      bool
	pressure    bool
	rumble      bool
	noPressure  bool // Refuses 0x4F
	stuckConfig bool // Never leaves configuration mode
	noiseFrames int  // Corrupt the header of the next n frames

	buttons   uint16 // Wire encoding, 0 = pressed
	rx, ry    byte
	lx, ly    byte
	pressures [pressureLen]byte

	// Frames seen, command bytes as sent
	frames [][]byte
	lens   []int
}

func newFakePad(t *testing.T) *fakePad {
	return &fakePad{
		t:       t,
		levels:  make(map[GPIOPin]bool),
		outputs: make(map[GPIOPin]bool),
		pullups: make(map[GPIOPin]bool),
		dataOut: true,
		present: true,
		kind:    byte(TypeDualShock),
		buttons: 0xFFFF,
		rx:      0x80, ry: 0x80,
		lx: 0x80, ly: 0x7F,
	}
}

// GPIODriver

func (f *fakePad) ConfigureOutput(pin GPIOPin) error {
	f.outputs[pin] = true
	return nil
}

func (f *fakePad) ConfigureInputPullUp(pin GPIOPin) error {
	f.pullups[pin] = true
	return nil
}

func (f *fakePad) SetPin(pin GPIOPin, value bool) error {
	prev, seen := f.levels[pin]
	f.levels[pin] = value
	if !f.outputs[pin] {
		f.t.Errorf("pin %d driven before it was configured as output", pin)
	}

	switch pin {
	case pinSEL:
		if !value && (prev || !seen) {
			f.beginFrame()
		} else if value && seen && !prev {
			f.endFrame()
		}
	case pinCLK:
		if !f.selected || !seen || prev == value {
			return nil
		}
		if !value {
			// Falling edge: present the next response bit
			f.dataOut = f.txByte&(1<<f.bitIndex) != 0
		} else {
			// Rising edge: latch the command bit
			if f.levels[pinCMD] {
				f.cmdByte |= 1 << f.bitIndex
			}
			f.bitIndex++
			if f.bitIndex == 8 {
				f.byteDone()
			}
		}
	}
	return nil
}

func (f *fakePad) GetPin(pin GPIOPin) (bool, error) {
	if pin != pinDAT {
		return f.levels[pin], nil
	}
	if !f.pullups[pin] {
		f.t.Errorf("data pin read without pull-up")
	}
	if !f.selected || !f.present {
		return true, nil
	}
	return f.dataOut, nil
}

// Clock

func (f *fakePad) SleepMicros(us uint32) {
	f.micros += uint64(us)
}

func (f *fakePad) Millis() uint64 {
	return f.micros / 1000
}

func (f *fakePad) advance(ms uint64) {
	f.micros += ms * 1000
}

// Controller model

func (f *fakePad) beginFrame() {
	f.selected = true
	f.bitIndex = 0
	f.cmdByte = 0
	f.frameCmd = nil
	f.frameReply = nil
	f.txByte = f.replyByte(0)
}

func (f *fakePad) byteDone() {
	f.frameCmd = append(f.frameCmd, f.cmdByte)
	f.frameReply = append(f.frameReply, f.txByte)
	f.bitIndex = 0
	f.cmdByte = 0
	f.txByte = f.replyByte(len(f.frameCmd))
}

func (f *fakePad) endFrame() {
	f.selected = false
	if f.bitIndex != 0 {
		f.t.Errorf("select released mid-byte (bit %d)", f.bitIndex)
	}
	f.frames = append(f.frames, f.frameCmd)
	f.lens = append(f.lens, len(f.frameCmd))
	if f.noiseFrames > 0 {
		f.noiseFrames--
	}
	if f.present {
		f.apply(f.frameCmd)
	}
}

func (f *fakePad) modeByte() byte {
	if f.configMode {
		return 0xF3
	}
	switch {
	case f.analog && f.pressure:
		return ModeAnalogFull
	case f.analog:
		return ModeAnalog
	default:
		return ModeDigital
	}
}

// replyByte returns the byte shifted out while command byte i is shifted in.
// Only command bytes 0..i-1 are known at that point.
func (f *fakePad) replyByte(i int) byte {
	if f.noiseFrames > 0 {
		return 0x00
	}
	switch i {
	case 0:
		return headerByte
	case 1:
		return f.modeByte()
	case 2:
		return dataMarker
	}

	cmd := f.frameCmd[1]
	if f.configMode {
		if cmd == cmdTypeRead && i == 3 {
			return f.kind
		}
		return 0x00
	}
	if cmd != cmdPoll {
		return 0xFF
	}

	switch i {
	case 3:
		return byte(f.buttons)
	case 4:
		return byte(f.buttons >> 8)
	}
	if !f.analog {
		return 0xFF
	}
	switch i {
	case 5:
		return f.rx
	case 6:
		return f.ry
	case 7:
		return f.lx
	case 8:
		return f.ly
	}
	if f.pressure && i-9 < pressureLen {
		return f.pressures[i-9]
	}
	return 0xFF
}

func (f *fakePad) apply(cmd []byte) {
	if len(cmd) < 5 || cmd[0] != cmdAddress {
		return
	}
	switch cmd[1] {
	case cmdConfig:
		if cmd[3] == 0x01 {
			f.configMode = true
		} else if !f.stuckConfig {
			f.configMode = false
		}
	case cmdSetMode:
		if f.configMode {
			f.analog = cmd[3] == 0x01
			f.locked = cmd[4] == 0x03
			f.pressure = false
		}
	case cmdPressure:
		if f.configMode && !f.noPressure {
			f.pressure = true
		}
	case cmdRumble:
		if f.configMode {
			f.rumble = true
		}
	}
}

// countCommand returns how many frames carried command byte c
func (f *fakePad) countCommand(c byte) int {
	n := 0
	for _, fr := range f.frames {
		if len(fr) > 1 && fr[1] == c {
			n++
		}
	}
	return n
}

// resetLog forgets previously seen frames
func (f *fakePad) resetLog() {
	f.frames = nil
	f.lens = nil
}

func (f *fakePad) lastLen() int {
	if len(f.lens) == 0 {
		return 0
	}
	return f.lens[len(f.lens)-1]
}

// press sets the wire bits for b to pressed
func (f *fakePad) press(b ButtonMask) {
	f.buttons &^= uint16(b)
}

// release sets the wire bits for b to released
func (f *fakePad) release(b ButtonMask) {
	f.buttons |= uint16(b)
}

// newTestPad runs the handshake against f and fails the test on error
func newTestPad(t *testing.T, f *fakePad, mode Mode) *Pad {
	t.Helper()
	p, err := NewPad(f, f, PadConfig{Pins: testPins, Mode: mode})
	if err != nil {
		t.Fatalf("NewPad failed: %v", err)
	}
	return p
}

// captureLog redirects the message sink for the duration of the test
func captureLog(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	t.Cleanup(func() { SetDebugWriter(nil) })
	return &lines
}
