package core

// inputState is the current and previous latched frame contents
type inputState struct {
	buttons, lastButtons ButtonMask
	lstick, lastLStick   Stick
	rstick, lastRStick   Stick
}

func newInputState() inputState {
	return inputState{
		lstick:     StickRest,
		lastLStick: StickRest,
		rstick:     0x8080,
		lastRStick: 0x8080,
	}
}

// latch promotes current to previous and unpacks a valid data frame
func (s *inputState) latch(f *Frame) {
	s.lastButtons = s.buttons
	s.lastLStick = s.lstick
	s.lastRStick = s.rstick

	wire := uint16(f.At(4))<<8 | uint16(f.At(3))
	s.buttons = ButtonMask(^wire)
	s.rstick = packStick(f.At(5), f.At(6))
	s.lstick = packStick(f.At(7), f.At(8))
}

// ButtonChanged reports whether any button changed on the last frame
func (p *Pad) ButtonChanged() bool {
	return p.input.buttons != p.input.lastButtons
}

// StickChanged reports whether the left stick moved on the last frame
func (p *Pad) StickChanged() bool {
	return p.input.lstick != p.input.lastLStick
}

// RightStickChanged reports whether the right stick moved on the last frame
func (p *Pad) RightStickChanged() bool {
	return p.input.rstick != p.input.lastRStick
}

// Changed reports a button or left stick change
func (p *Pad) Changed() bool {
	return p.ButtonChanged() || p.StickChanged()
}

// IsPressing reports whether any button in b is held
func (p *Pad) IsPressing(b ButtonMask) bool {
	return p.input.buttons&b != 0
}

// Pressed reports whether a button in b went down on the last frame
func (p *Pad) Pressed(b ButtonMask) bool {
	return p.PressedMask()&b != 0
}

// Released reports whether a button in b went up on the last frame
func (p *Pad) Released(b ButtonMask) bool {
	return p.ReleasedMask()&b != 0
}

// Down returns the held buttons
func (p *Pad) Down() ButtonMask {
	return p.input.buttons
}

// PressedMask returns the buttons that went down on the last frame
func (p *Pad) PressedMask() ButtonMask {
	return (p.input.buttons ^ p.input.lastButtons) & p.input.buttons
}

// ReleasedMask returns the buttons that went up on the last frame
func (p *Pad) ReleasedMask() ButtonMask {
	return (p.input.buttons ^ p.input.lastButtons) & p.input.lastButtons
}

func (p *Pad) ArrowPressing() bool {
	return p.IsPressing(ArrowButtons)
}

func (p *Pad) ShoulderPressing() bool {
	return p.IsPressing(ShoulderButtons)
}

func (p *Pad) CommandPressing() bool {
	return p.IsPressing(CommandButtons)
}

// StickTouched reports whether the left stick is away from rest
func (p *Pad) StickTouched() bool {
	return p.input.lstick != StickRest
}

// LStick returns the left stick
func (p *Pad) LStick() Stick {
	return p.input.lstick
}

// RStick returns the right stick
func (p *Pad) RStick() Stick {
	return p.input.rstick
}

// ReadAnalog returns a raw analog byte from the last frame. id is an axis
// (AxisRX..AxisLY) or a single button with a pressure sensor. Other ids read
// as 0; START shares its value with AxisLY and reads the stick.
func (p *Pad) ReadAnalog(id uint16) byte {
	if id >= AxisRX && id < axisLimit {
		return p.frame.At(int(id))
	}
	if slot := pressureSlot(ButtonMask(id)); slot != 0 {
		return p.frame.At(slot)
	}
	return 0
}

// RawButtons returns the current buttons in wire encoding (0 = pressed)
func (p *Pad) RawButtons() uint16 {
	return uint16(^p.input.buttons)
}

// RawLastButtons returns the previous buttons in wire encoding
func (p *Pad) RawLastButtons() uint16 {
	return uint16(^p.input.lastButtons)
}

// RawLStick returns the current left stick as packed on the wire
func (p *Pad) RawLStick() uint16 {
	return uint16(p.input.lstick)
}

// RawLastLStick returns the previous left stick
func (p *Pad) RawLastLStick() uint16 {
	return uint16(p.input.lastLStick)
}
