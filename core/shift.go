package core

// bitBang drives the four pad lines by hand. The controller latches CMD and
// presents DAT on the falling clock edge; both are LSB first.
type bitBang struct {
	gpio  GPIODriver
	clock Clock
	pins  Pins

	clkDelay  uint32 // Clock phase delay in microseconds
	byteDelay uint32 // Settle time after each byte and around select
}

// configure sets pin directions and parks the bus in its idle state
func (b *bitBang) configure() error {
	if err := b.gpio.ConfigureInputPullUp(b.pins.Data); err != nil {
		return err
	}
	for _, pin := range []GPIOPin{b.pins.Command, b.pins.Select, b.pins.Clock} {
		if err := b.gpio.ConfigureOutput(pin); err != nil {
			return err
		}
	}

	// CMD high, CLK high, SEL high (controller disabled)
	b.write(b.pins.Command, true)
	b.write(b.pins.Clock, true)
	b.write(b.pins.Select, true)
	return nil
}

// transferByte shifts one command byte out while shifting one response byte in
func (b *bitBang) transferByte(cmd byte) byte {
	var received byte

	for i := uint(0); i < 8; i++ {
		b.write(b.pins.Command, cmd&(1<<i) != 0)

		b.write(b.pins.Clock, false)
		b.clock.SleepMicros(b.clkDelay)

		if b.read(b.pins.Data) {
			received |= 1 << i
		}

		b.write(b.pins.Clock, true)
		b.clock.SleepMicros(b.clkDelay)
	}

	b.write(b.pins.Command, true)
	b.clock.SleepMicros(b.byteDelay)
	return received
}

// attention pulls select low (active-low enable)
func (b *bitBang) attention() {
	b.write(b.pins.Select, false)
	b.clock.SleepMicros(b.byteDelay)
}

// release pulls select high again
func (b *bitBang) release() {
	b.write(b.pins.Select, true)
	b.clock.SleepMicros(b.byteDelay)
}

// write discards driver errors: a dead line shows up as a bad frame header
func (b *bitBang) write(pin GPIOPin, level bool) {
	_ = b.gpio.SetPin(pin, level)
}

func (b *bitBang) read(pin GPIOPin) bool {
	level, _ := b.gpio.GetPin(pin)
	return level
}
