package core

// ButtonMask is a set of buttons. A set bit means the button is held; the
// inverted wire encoding is undone when a frame is latched.
type ButtonMask uint16

// Button bits, in wire order (response byte 3 is the low byte)
const (
	ButtonSelect   ButtonMask = 0x0001
	ButtonL3       ButtonMask = 0x0002
	ButtonR3       ButtonMask = 0x0004
	// ButtonStart has no pressure byte, but its value equals AxisLY, so
	// ReadAnalog(uint16(ButtonStart)) returns the left stick Y byte, not 0.
	ButtonStart    ButtonMask = 0x0008
	ButtonUp       ButtonMask = 0x0010
	ButtonRight    ButtonMask = 0x0020
	ButtonDown     ButtonMask = 0x0040
	ButtonLeft     ButtonMask = 0x0080
	ButtonL2       ButtonMask = 0x0100
	ButtonR2       ButtonMask = 0x0200
	ButtonL1       ButtonMask = 0x0400
	ButtonR1       ButtonMask = 0x0800
	ButtonTriangle ButtonMask = 0x1000
	ButtonCircle   ButtonMask = 0x2000
	ButtonCross    ButtonMask = 0x4000
	ButtonSquare   ButtonMask = 0x8000

	// Groups
	ArrowButtons    = ButtonUp | ButtonRight | ButtonDown | ButtonLeft
	ShoulderButtons = ButtonL1 | ButtonL2 | ButtonL3 | ButtonR1 | ButtonR2 | ButtonR3
	CommandButtons  = ButtonTriangle | ButtonCircle | ButtonCross | ButtonSquare | ButtonSelect | ButtonStart

	AllButtons ButtonMask = 0xFFFF
)

var buttonNames = [16]string{
	"SELECT", "L3", "R3", "START",
	"UP", "RIGHT", "DOWN", "LEFT",
	"L2", "R2", "L1", "R1",
	"TRIANGLE", "CIRCLE", "CROSS", "SQUARE",
}

// String lists the held buttons separated by '+', or "-" when none are.
func (m ButtonMask) String() string {
	if m == 0 {
		return "-"
	}
	s := ""
	for i := 0; i < 16; i++ {
		if m&(1<<i) == 0 {
			continue
		}
		if s != "" {
			s += "+"
		}
		s += buttonNames[i]
	}
	return s
}

// Has reports whether every button in b is in the set
func (m ButtonMask) Has(b ButtonMask) bool {
	return b != 0 && m&b == b
}

// Any reports whether at least one button in b is in the set
func (m ButtonMask) Any(b ButtonMask) bool {
	return m&b != 0
}

// Analog axis identifiers for ReadAnalog. Each is the response byte index
// that carries the axis.
const (
	AxisRX uint16 = 5
	AxisRY uint16 = 6
	AxisLX uint16 = 7
	AxisLY uint16 = 8

	axisLimit = 9
)

// Stick packs two axis bytes: X in the high byte, Y in the low byte.
// Centred is 0x80 on both axes; the wire reports a resting left stick as
// 0x807F on most pads.
type Stick uint16

// StickRest is the left stick value of an untouched DualShock
const StickRest Stick = 0x807F

func packStick(x, y byte) Stick {
	return Stick(uint16(x)<<8 | uint16(y))
}

// X returns the horizontal axis (0 = left, 0xFF = right)
func (s Stick) X() byte {
	return byte(s >> 8)
}

// Y returns the vertical axis (0 = up, 0xFF = down)
func (s Stick) Y() byte {
	return byte(s)
}

// pressureSlot maps a button to the response byte holding its pressure value
// in 0x79 mode. Buttons without a pressure sensor map to 0.
func pressureSlot(b ButtonMask) int {
	switch b {
	case ButtonRight:
		return 9
	case ButtonLeft:
		return 10
	case ButtonUp:
		return 11
	case ButtonDown:
		return 12
	case ButtonTriangle:
		return 13
	case ButtonCircle:
		return 14
	case ButtonCross:
		return 15
	case ButtonSquare:
		return 16
	case ButtonL1:
		return 17
	case ButtonR1:
		return 18
	case ButtonL2:
		return 19
	case ButtonR2:
		return 20
	default:
		return 0
	}
}
