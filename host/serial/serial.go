// Package serial opens the serial port that carries the report link to a
// motor board.
package serial

import (
	"io"
)

// Port is an open serial port
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate of the motor board UART
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultBaud is the motor board UART rate
const DefaultBaud = 115200

// DefaultConfig returns the motor board settings for device
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100, // Lets the link reader notice Close
	}
}
