// Package config loads the reader configuration from JSON or YAML.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ps2pad/core"
)

var (
	ErrUnknownFormat = errors.New("unknown configuration format")
	ErrPinConflict   = errors.New("pad pins must be distinct")
	ErrOutputFormat  = errors.New("output format must be text, frame or none")
)

// Output formats
const (
	FormatText  = "text"  // "Data: <buttons> <stick>" lines on stdout
	FormatFrame = "frame" // Framed reports over the serial link
	FormatNone  = "none"
)

// PinConfig holds BCM pin numbers. Keys missing from a file keep their
// default; an explicit 0 selects GPIO0.
type PinConfig struct {
	Data    uint32 `json:"data" yaml:"data"`
	Command uint32 `json:"command" yaml:"command"`
	Select  uint32 `json:"select" yaml:"select"`
	Clock   uint32 `json:"clock" yaml:"clock"`
}

// ModeConfig holds the requested controller mode
type ModeConfig struct {
	Analog   bool `json:"analog" yaml:"analog"`
	Locked   bool `json:"locked" yaml:"locked"`
	Pressure bool `json:"pressure" yaml:"pressure"`
	Rumble   bool `json:"rumble" yaml:"rumble"`
}

// TimingConfig holds bus and polling delays
type TimingConfig struct {
	ClockDelayUs     uint32 `json:"clock_delay_us" yaml:"clock_delay_us"`
	ByteDelayUs      uint32 `json:"byte_delay_us" yaml:"byte_delay_us"`
	UpdateIntervalMs uint64 `json:"update_interval_ms" yaml:"update_interval_ms"`
	ExpiryIntervalMs uint64 `json:"expiry_interval_ms" yaml:"expiry_interval_ms"`
	WatchdogMs       uint64 `json:"watchdog_ms" yaml:"watchdog_ms"`
}

// OutputConfig selects where pad state goes
type OutputConfig struct {
	Format string `json:"format" yaml:"format"`
	Device string `json:"device" yaml:"device"` // Serial device for "frame"
	Baud   int    `json:"baud" yaml:"baud"`
}

// Config is the complete reader configuration
type Config struct {
	Pins   PinConfig    `json:"pins" yaml:"pins"`
	Mode   ModeConfig   `json:"mode" yaml:"mode"`
	Timing TimingConfig `json:"timing" yaml:"timing"`
	Output OutputConfig `json:"output" yaml:"output"`
	Debug  bool         `json:"debug" yaml:"debug"`
}

// LoadConfig parses data as "json" or "yaml" and applies defaults. The
// document is decoded over DefaultConfig, so only keys it names change.
func LoadConfig(data []byte, format string) (*Config, error) {
	config := *DefaultConfig()

	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse json config: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("parse yaml config: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads a configuration file, picking the format from its extension
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return LoadConfig(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

// applyDefaults replaces values that were given as zero but have no zero
// meaning. Pins are left alone: GPIO0 is a valid pin.
func applyDefaults(config *Config) {
	def := DefaultConfig()

	if config.Timing.ClockDelayUs == 0 {
		config.Timing.ClockDelayUs = def.Timing.ClockDelayUs
	}
	if config.Timing.ByteDelayUs == 0 {
		config.Timing.ByteDelayUs = def.Timing.ByteDelayUs
	}
	if config.Timing.UpdateIntervalMs == 0 {
		config.Timing.UpdateIntervalMs = def.Timing.UpdateIntervalMs
	}
	if config.Timing.ExpiryIntervalMs == 0 {
		config.Timing.ExpiryIntervalMs = def.Timing.ExpiryIntervalMs
	}
	if config.Timing.WatchdogMs == 0 {
		config.Timing.WatchdogMs = def.Timing.WatchdogMs
	}

	if config.Output.Format == "" {
		config.Output.Format = def.Output.Format
	}
	if config.Output.Device == "" {
		config.Output.Device = def.Output.Device
	}
	if config.Output.Baud == 0 {
		config.Output.Baud = def.Output.Baud
	}
}

// Validate checks values that have no sensible default
func (c *Config) Validate() error {
	pins := []uint32{c.Pins.Data, c.Pins.Command, c.Pins.Select, c.Pins.Clock}
	for i := range pins {
		for j := i + 1; j < len(pins); j++ {
			if pins[i] == pins[j] {
				return fmt.Errorf("GPIO%d used twice: %w", pins[i], ErrPinConflict)
			}
		}
	}

	switch c.Output.Format {
	case FormatText, FormatFrame, FormatNone:
	default:
		return fmt.Errorf("%q: %w", c.Output.Format, ErrOutputFormat)
	}
	return nil
}

// DefaultConfig returns the wiring used on a Raspberry Pi 3
func DefaultConfig() *Config {
	timing := core.DefaultTiming()
	return &Config{
		Pins: PinConfig{
			Data:    9,  // MISO
			Command: 10, // MOSI
			Select:  8,  // CE0
			Clock:   11, // SCLK
		},
		Timing: TimingConfig{
			ClockDelayUs:     timing.ClockDelay,
			ByteDelayUs:      timing.ByteDelay,
			UpdateIntervalMs: timing.UpdateInterval,
			ExpiryIntervalMs: timing.ExpiryInterval,
			WatchdogMs:       timing.Watchdog,
		},
		Output: OutputConfig{
			Format: FormatText,
			Device: "/dev/ttyUSB0",
			Baud:   115200,
		},
	}
}

// PadConfig converts the configuration for core.NewPad
func (c *Config) PadConfig() core.PadConfig {
	return core.PadConfig{
		Pins: core.Pins{
			Data:    core.GPIOPin(c.Pins.Data),
			Command: core.GPIOPin(c.Pins.Command),
			Select:  core.GPIOPin(c.Pins.Select),
			Clock:   core.GPIOPin(c.Pins.Clock),
		},
		Mode: core.Mode{
			Analog:   c.Mode.Analog,
			Locked:   c.Mode.Locked,
			Pressure: c.Mode.Pressure,
			Rumble:   c.Mode.Rumble,
		},
		Timing: core.Timing{
			ClockDelay:     c.Timing.ClockDelayUs,
			ByteDelay:      c.Timing.ByteDelayUs,
			UpdateInterval: c.Timing.UpdateIntervalMs,
			ExpiryInterval: c.Timing.ExpiryIntervalMs,
			Watchdog:       c.Timing.WatchdogMs,
		},
	}
}
