package core

// GPIOPin is a platform pin number (BCM on a Raspberry Pi, GPn on an RP2040)
type GPIOPin uint32

// GPIODriver is the pin half of the pad's hardware collaborator. Host and
// board targets provide one; tests use a simulated controller.
type GPIODriver interface {
	// ConfigureOutput makes pin an output driven high
	ConfigureOutput(pin GPIOPin) error

	// ConfigureInputPullUp makes pin an input with the pull-up enabled
	ConfigureInputPullUp(pin GPIOPin) error

	SetPin(pin GPIOPin, value bool) error
	GetPin(pin GPIOPin) (bool, error)
}

// Driver registered by the platform's main package
var gpioDriver GPIODriver

// SetGPIODriver registers the platform driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the registered driver and panics when there is none.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}
