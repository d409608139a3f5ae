package main

import (
	"flag"
	"fmt"
	"io"

	"ps2pad/config"
)

// options is the parsed command line
type options struct {
	cfg  *config.Config
	dump bool // Print the link event ring on exit
}

const usageText = `
---------PS2 controller reader---------

Usage: (run as root)
./ps2x [-h] [-d DATA-pin] [-c CMD-pin] [-s SELECT-pin] [-k CLOCK-pin] [-a ANALOG] [-l LOCK] [-p PRESS] [-r RUMBLE]
       [-config FILE] [-format text|frame|none] [-device PATH] [-baud RATE] [-debug] [-dump]

Pins use BCM numbering. Mode switches take 1 to turn on, 0 to turn off.

Example: * Run as default:  sudo ./ps2x
         * Change pins:     sudo ./ps2x -d 9 -c 10 -s 8 -k 11
         * Change modes:    sudo ./ps2x -a 1 -l 1 -p 0 -r 1
         * Motor board:     sudo ./ps2x -a 1 -format frame -device /dev/ttyUSB0

`

// parseOptions builds the configuration: defaults, then the -config file,
// then any flag given explicitly.
func parseOptions(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("ps2x", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageText)
		fs.PrintDefaults()
	}

	var (
		dataPin   = fs.Uint("d", 0, "GPIO pin for data")
		cmdPin    = fs.Uint("c", 0, "GPIO pin for command")
		selPin    = fs.Uint("s", 0, "GPIO pin for select")
		clkPin    = fs.Uint("k", 0, "GPIO pin for clock")
		analog    = fs.Int("a", 0, "analog mode (1 on, 0 off)")
		locked    = fs.Int("l", 0, "lock mode (1 on, 0 off)")
		pressure  = fs.Int("p", 0, "pressure mode (1 on, 0 off)")
		rumble    = fs.Int("r", 0, "rumble mode (1 on, 0 off)")
		cfgPath   = fs.String("config", "", "JSON or YAML configuration file")
		format    = fs.String("format", "", "output format: text, frame or none")
		device    = fs.String("device", "", "serial device for frame output")
		baud      = fs.Int("baud", 0, "serial baud rate for frame output")
		debug     = fs.Bool("debug", false, "print every exchanged frame")
		dumpLinks = fs.Bool("dump", false, "print the link event log on exit")
	)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}

	cfg := config.DefaultConfig()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "d":
			cfg.Pins.Data = uint32(*dataPin)
		case "c":
			cfg.Pins.Command = uint32(*cmdPin)
		case "s":
			cfg.Pins.Select = uint32(*selPin)
		case "k":
			cfg.Pins.Clock = uint32(*clkPin)
		case "a":
			cfg.Mode.Analog = *analog != 0
		case "l":
			cfg.Mode.Locked = *locked != 0
		case "p":
			cfg.Mode.Pressure = *pressure != 0
		case "r":
			cfg.Mode.Rumble = *rumble != 0
		case "format":
			cfg.Output.Format = *format
		case "device":
			cfg.Output.Device = *device
		case "baud":
			cfg.Output.Baud = *baud
		case "debug":
			cfg.Debug = *debug
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &options{cfg: cfg, dump: *dumpLinks}, nil
}
