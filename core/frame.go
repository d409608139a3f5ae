package core

// Response frame layout
const (
	FrameCapacity = 21 // Header (3) + buttons (2) + sticks (4) + pressures (12)

	headerByte  = 0xFF
	dataMarker  = 0x5A
	pressureLen = 12
)

// Controller mode as reported in response byte 1
const (
	ModeDigital      byte = 0x41
	ModeAnalog       byte = 0x73
	ModeAnalogFull   byte = 0x79 // Analog plus 12 pressure bytes
	modeConfigNibble byte = 0xF0
)

// Frame is the response buffer of one exchange. It is reset before every
// exchange, so bytes past Len() always read as zero.
type Frame struct {
	buf [FrameCapacity]byte
	n   int
}

// Len returns the number of bytes captured by the last exchange
func (f Frame) Len() int {
	return f.n
}

// At returns byte i of the frame, or 0 outside the captured range
func (f Frame) At(i int) byte {
	if i < 0 || i >= f.n {
		return 0
	}
	return f.buf[i]
}

// Bytes returns a copy of the captured bytes
func (f Frame) Bytes() []byte {
	out := make([]byte, f.n)
	copy(out, f.buf[:f.n])
	return out
}

// Mode returns response byte 1
func (f Frame) Mode() byte {
	return f.At(1)
}

// Reset zeroes the whole buffer and invalidates it
func (f *Frame) Reset() {
	f.buf = [FrameCapacity]byte{}
	f.n = 0
}

func (f *Frame) put(b byte) {
	if f.n < FrameCapacity {
		f.buf[f.n] = b
		f.n++
	}
}

// sendCommand runs one exchange whose reply is not needed
func (p *Pad) sendCommand(cmd []byte) {
	p.bus.attention()
	for _, b := range cmd {
		p.bus.transferByte(b)
	}
	p.bus.release()
}

// getData runs one exchange and captures the reply into p.frame.
// A 0x79 reply carries 12 pressure bytes after the base frame, which must be
// clocked out or the next exchange starts mid-frame.
func (p *Pad) getData(cmd []byte) {
	p.frame.Reset()

	p.bus.write(p.pins.Command, true)
	p.bus.write(p.pins.Clock, true)
	p.bus.attention()

	for _, b := range cmd {
		p.frame.put(p.bus.transferByte(b))
	}

	if p.frame.Mode() == ModeAnalogFull {
		for i := 0; i < pressureLen; i++ {
			p.frame.put(p.bus.transferByte(0x00))
		}
	}

	p.bus.release()

	if debugEnabled {
		DebugPrintln("[PAD] rx " + hexBytes(p.frame.At(0), p.frame.At(1), p.frame.At(2)) +
			" len=" + itoa(p.frame.Len()))
	}
}
