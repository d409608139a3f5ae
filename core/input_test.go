package core

import "testing"

// latchFrame feeds a synthetic data frame to the tracker
func latchFrame(p *Pad, data ...byte) {
	p.frame.Reset()
	for _, b := range data {
		p.frame.put(b)
	}
	p.input.latch(&p.frame)
}

func TestIsPressingSingleBit(t *testing.T) {
	p := &Pad{input: newInputState()}
	latchFrame(p, 0xFF, 0x41, 0x5A, 0xFE, 0xFF)

	if !p.IsPressing(ButtonSelect) {
		t.Error("SELECT should be pressed")
	}
	for i := 1; i < 16; i++ {
		b := ButtonMask(1 << i)
		if p.IsPressing(b) {
			t.Errorf("%v should not be pressed", b)
		}
	}
	if p.Down() != ButtonSelect {
		t.Errorf("expected SELECT only, got %v", p.Down())
	}
	if p.RawButtons() != 0xFFFE {
		t.Errorf("raw buttons: expected 0xFFFE, got %#04x", p.RawButtons())
	}
}

func TestEdges(t *testing.T) {
	p := &Pad{input: newInputState()}
	idle := []byte{0xFF, 0x73, 0x5A, 0xFF, 0xFF, 0x80, 0x80, 0x80, 0x7F}
	cross := []byte{0xFF, 0x73, 0x5A, 0xFF, 0xBF, 0x80, 0x80, 0x80, 0x7F}

	steps := []struct {
		name     string
		frame    []byte
		pressing bool
		pressed  bool
		released bool
		changed  bool
	}{
		{"idle", idle, false, false, false, false},
		{"press", cross, true, true, false, true},
		{"hold", cross, true, false, false, false},
		{"release", idle, false, false, true, true},
		{"idle again", idle, false, false, false, false},
	}

	for _, s := range steps {
		latchFrame(p, s.frame...)
		if got := p.IsPressing(ButtonCross); got != s.pressing {
			t.Errorf("%s: IsPressing=%v, expected %v", s.name, got, s.pressing)
		}
		if got := p.Pressed(ButtonCross); got != s.pressed {
			t.Errorf("%s: Pressed=%v, expected %v", s.name, got, s.pressed)
		}
		if got := p.Released(ButtonCross); got != s.released {
			t.Errorf("%s: Released=%v, expected %v", s.name, got, s.released)
		}
		if got := p.Changed(); got != s.changed {
			t.Errorf("%s: Changed=%v, expected %v", s.name, got, s.changed)
		}
	}
}

func TestEdgesArePerButton(t *testing.T) {
	p := &Pad{input: newInputState()}
	// Hold CIRCLE, then press CROSS while CIRCLE stays down
	latchFrame(p, 0xFF, 0x41, 0x5A, 0xFF, 0xDF)
	latchFrame(p, 0xFF, 0x41, 0x5A, 0xFF, 0x9F)

	if p.Pressed(ButtonCircle) {
		t.Error("held CIRCLE reported as pressed again")
	}
	if !p.Pressed(ButtonCross) {
		t.Error("CROSS press missed")
	}
	if p.PressedMask() != ButtonCross || p.ReleasedMask() != 0 {
		t.Errorf("masks: pressed=%v released=%v", p.PressedMask(), p.ReleasedMask())
	}
}

func TestStickChanged(t *testing.T) {
	p := &Pad{input: newInputState()}
	latchFrame(p, 0xFF, 0x73, 0x5A, 0xFF, 0xFF, 0x80, 0x80, 0x80, 0x7F)
	if p.Changed() || p.StickTouched() {
		t.Error("resting stick reported as moved")
	}

	latchFrame(p, 0xFF, 0x73, 0x5A, 0xFF, 0xFF, 0x80, 0x80, 0x00, 0x7F)
	if !p.StickChanged() || p.ButtonChanged() || !p.Changed() {
		t.Error("left stick move not reported")
	}
	if !p.StickTouched() {
		t.Error("StickTouched false with stick pushed left")
	}
	if p.LStick().X() != 0x00 || p.LStick().Y() != 0x7F {
		t.Errorf("left stick: %#04x", uint16(p.LStick()))
	}
	if p.RawLStick() != 0x007F || p.RawLastLStick() != 0x807F {
		t.Errorf("raw sticks: %#04x %#04x", p.RawLStick(), p.RawLastLStick())
	}

	// Right stick is tracked separately and does not count as a change
	latchFrame(p, 0xFF, 0x73, 0x5A, 0xFF, 0xFF, 0xFF, 0x10, 0x00, 0x7F)
	if p.Changed() {
		t.Error("right stick move counted as left stick change")
	}
	if !p.RightStickChanged() || p.RStick().X() != 0xFF || p.RStick().Y() != 0x10 {
		t.Errorf("right stick: changed=%v value=%#04x", p.RightStickChanged(), uint16(p.RStick()))
	}
}

func TestGroupPredicates(t *testing.T) {
	tests := []struct {
		name                     string
		low, high                byte
		arrow, shoulder, command bool
	}{
		{"none", 0xFF, 0xFF, false, false, false},
		{"up", 0xEF, 0xFF, true, false, false},
		{"l3", 0xFD, 0xFF, false, true, false},
		{"r1", 0xFF, 0xF7, false, true, false},
		{"start", 0xF7, 0xFF, false, false, true},
		{"square", 0xFF, 0x7F, false, false, true},
		{"left and triangle", 0x7F, 0xEF, true, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Pad{input: newInputState()}
			latchFrame(p, 0xFF, 0x41, 0x5A, tt.low, tt.high)
			if p.ArrowPressing() != tt.arrow {
				t.Errorf("ArrowPressing=%v", p.ArrowPressing())
			}
			if p.ShoulderPressing() != tt.shoulder {
				t.Errorf("ShoulderPressing=%v", p.ShoulderPressing())
			}
			if p.CommandPressing() != tt.command {
				t.Errorf("CommandPressing=%v", p.CommandPressing())
			}
		})
	}
}

func TestReadAnalog(t *testing.T) {
	p := &Pad{input: newInputState()}
	data := make([]byte, FrameCapacity)
	data[0], data[1], data[2] = 0xFF, 0x79, 0x5A
	data[3], data[4] = 0xFF, 0xFF
	for i := 5; i < FrameCapacity; i++ {
		data[i] = byte(0xA0 + i)
	}
	latchFrame(p, data...)

	tests := []struct {
		id   uint16
		slot int
	}{
		{AxisRX, 5}, {AxisRY, 6}, {AxisLX, 7}, {AxisLY, 8},
		{uint16(ButtonRight), 9}, {uint16(ButtonLeft), 10},
		{uint16(ButtonUp), 11}, {uint16(ButtonDown), 12},
		{uint16(ButtonTriangle), 13}, {uint16(ButtonCircle), 14},
		{uint16(ButtonCross), 15}, {uint16(ButtonSquare), 16},
		{uint16(ButtonL1), 17}, {uint16(ButtonR1), 18},
		{uint16(ButtonL2), 19}, {uint16(ButtonR2), 20},
	}
	for _, tt := range tests {
		if got := p.ReadAnalog(tt.id); got != byte(0xA0+tt.slot) {
			t.Errorf("id %#x: expected slot %d (%#x), got %#x", tt.id, tt.slot, byte(0xA0+tt.slot), got)
		}
	}

	for _, id := range []uint16{uint16(ButtonSelect), uint16(ButtonL3), uint16(ButtonR3), 0, 0x0003, 0xFFFF} {
		if got := p.ReadAnalog(id); got != 0 {
			t.Errorf("id %#x: expected 0, got %#x", id, got)
		}
	}

	// START aliases AxisLY
	if got := p.ReadAnalog(uint16(ButtonStart)); got != byte(0xA0+8) {
		t.Errorf("START: expected the LY byte %#x, got %#x", byte(0xA0+8), got)
	}
}

func TestReadAnalogShortFrame(t *testing.T) {
	p := &Pad{input: newInputState()}
	latchFrame(p, 0xFF, 0x73, 0x5A, 0xFF, 0xFF, 0x80, 0x80, 0x80, 0x7F)
	if got := p.ReadAnalog(uint16(ButtonCross)); got != 0 {
		t.Errorf("pressure byte past frame end: %#x", got)
	}
}

func TestButtonMaskString(t *testing.T) {
	tests := []struct {
		mask ButtonMask
		want string
	}{
		{0, "-"},
		{ButtonSelect, "SELECT"},
		{ButtonCross | ButtonUp, "UP+CROSS"},
		{ArrowButtons, "UP+RIGHT+DOWN+LEFT"},
	}
	for _, tt := range tests {
		if got := tt.mask.String(); got != tt.want {
			t.Errorf("%#04x: expected %q, got %q", uint16(tt.mask), tt.want, got)
		}
	}
}

func TestButtonGroups(t *testing.T) {
	if ArrowButtons != 0x00F0 {
		t.Errorf("arrow group %#04x", uint16(ArrowButtons))
	}
	if ShoulderButtons != 0x0F06 {
		t.Errorf("shoulder group %#04x", uint16(ShoulderButtons))
	}
	if CommandButtons != 0xF009 {
		t.Errorf("command group %#04x", uint16(CommandButtons))
	}
	if !CommandButtons.Has(ButtonStart) || ArrowButtons.Has(ButtonStart) {
		t.Error("Has")
	}
	if !ArrowButtons.Any(ButtonUp|ButtonCross) || ArrowButtons.Any(ButtonCross) {
		t.Error("Any")
	}
}
