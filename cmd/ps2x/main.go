// Command ps2x reads a PS2 controller wired to the Raspberry Pi GPIO header
// and publishes its state on stdout or to a motor board over serial.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"ps2pad/config"
	"ps2pad/core"
	"ps2pad/host/gpio"
	"ps2pad/host/serial"
	"ps2pad/protocol"
)

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options, stdout io.Writer) error {
	cfg := opts.cfg

	// Driver messages go to stderr so stdout carries only pad data
	core.SetDebugWriter(func(msg string) {
		fmt.Fprintln(os.Stderr, msg)
	})
	core.SetDebugEnabled(cfg.Debug)

	drv, err := gpio.Open()
	if err != nil {
		return err
	}
	defer drv.Close()
	core.SetGPIODriver(drv)

	pad, err := core.NewPad(core.MustGPIO(), core.NewSystemClock(), cfg.PadConfig())
	if err != nil {
		if opts.dump {
			core.DumpLinkEvents()
		}
		return err
	}
	defer pad.Close()

	out, err := openSink(cfg, stdout)
	if err != nil {
		return err
	}
	defer out.Close()

	err = poll(ctx, pad, out)
	if opts.dump {
		core.DumpLinkEvents()
	}
	return err
}

// openSink creates the publisher selected by the output format
func openSink(cfg *config.Config, stdout io.Writer) (sink, error) {
	switch cfg.Output.Format {
	case config.FormatFrame:
		port, err := serial.Open(&serial.Config{
			Device:      cfg.Output.Device,
			Baud:        cfg.Output.Baud,
			ReadTimeout: serial.DefaultConfig(cfg.Output.Device).ReadTimeout,
		})
		if err != nil {
			return nil, err
		}
		return newFrameSink(protocol.NewReportLink(port)), nil
	case config.FormatNone:
		return nullSink{}, nil
	default:
		return newTextSink(stdout), nil
	}
}

// poller is the part of core.Pad the loop drives
type poller interface {
	Update()
	Stats() core.Stats
	ChangeMode(m core.Mode)
	Reconfig()
}

// pollWith runs until ctx is cancelled. snap reads the state after each tick.
func pollWith(ctx context.Context, pad poller, snap func() snapshot, out sink) error {
	for ctx.Err() == nil {
		before := pad.Stats()
		pad.Update()

		s := snap()
		if err := out.Publish(s, linkNotices(before, pad.Stats(), s.mode)); err != nil {
			return fmt.Errorf("publish: %w", err)
		}

		select {
		case req := <-out.Requests():
			pad.ChangeMode(core.Mode{
				Analog:   req.Analog,
				Locked:   req.Locked,
				Pressure: req.Pressure,
				Rumble:   req.Rumble,
			})
			pad.Reconfig()
		default:
		}
	}
	return nil
}

func poll(ctx context.Context, pad *core.Pad, out sink) error {
	return pollWith(ctx, pad, func() snapshot { return takeSnapshot(pad) }, out)
}
