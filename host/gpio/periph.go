// Package gpio drives the pad lines from Linux user space through periph.io.
package gpio

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"ps2pad/core"
)

var (
	ErrUnknownPin    = errors.New("unknown GPIO pin")
	ErrNotConfigured = errors.New("GPIO pin not configured")
)

// PinLookup resolves a pin name such as "GPIO9"
type PinLookup func(name string) gpio.PinIO

// PeriphDriver implements core.GPIODriver with BCM pin numbering
type PeriphDriver struct {
	lookup PinLookup
	pins   map[core.GPIOPin]gpio.PinIO
}

// Open initializes the periph host drivers and returns a driver backed by
// the global pin registry.
func Open() (*PeriphDriver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}
	return NewPeriphDriver(gpioreg.ByName), nil
}

// NewPeriphDriver creates a driver resolving pins through lookup
func NewPeriphDriver(lookup PinLookup) *PeriphDriver {
	return &PeriphDriver{
		lookup: lookup,
		pins:   make(map[core.GPIOPin]gpio.PinIO),
	}
}

func (d *PeriphDriver) resolve(pin core.GPIOPin) (gpio.PinIO, error) {
	if p, ok := d.pins[pin]; ok {
		return p, nil
	}
	p := d.lookup(fmt.Sprintf("GPIO%d", pin))
	if p == nil {
		return nil, fmt.Errorf("GPIO%d: %w", pin, ErrUnknownPin)
	}
	d.pins[pin] = p
	return p, nil
}

// ConfigureOutput drives the pin high
func (d *PeriphDriver) ConfigureOutput(pin core.GPIOPin) error {
	p, err := d.resolve(pin)
	if err != nil {
		return err
	}
	if err := p.Out(gpio.High); err != nil {
		return fmt.Errorf("GPIO%d as output: %w", pin, err)
	}
	return nil
}

// ConfigureInputPullUp makes the pin an input with the internal pull-up
func (d *PeriphDriver) ConfigureInputPullUp(pin core.GPIOPin) error {
	p, err := d.resolve(pin)
	if err != nil {
		return err
	}
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return fmt.Errorf("GPIO%d as input: %w", pin, err)
	}
	return nil
}

// SetPin drives a configured output
func (d *PeriphDriver) SetPin(pin core.GPIOPin, value bool) error {
	p, ok := d.pins[pin]
	if !ok {
		return fmt.Errorf("GPIO%d: %w", pin, ErrNotConfigured)
	}
	return p.Out(gpio.Level(value))
}

// GetPin samples a configured pin
func (d *PeriphDriver) GetPin(pin core.GPIOPin) (bool, error) {
	p, ok := d.pins[pin]
	if !ok {
		return false, fmt.Errorf("GPIO%d: %w", pin, ErrNotConfigured)
	}
	return p.Read() == gpio.High, nil
}

// Close halts every pin the driver touched. Directions are left as they are.
func (d *PeriphDriver) Close() error {
	var errs []error
	for n, p := range d.pins {
		if err := p.Halt(); err != nil {
			errs = append(errs, fmt.Errorf("GPIO%d: %w", n, err))
		}
	}
	d.pins = make(map[core.GPIOPin]gpio.PinIO)
	return errors.Join(errs...)
}
