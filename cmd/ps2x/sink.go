package main

import (
	"fmt"
	"io"

	"ps2pad/core"
	"ps2pad/protocol"
)

// snapshot is the pad state published after one Update
type snapshot struct {
	changed    bool
	rawButtons uint16 // Wire encoding, 0 = pressed
	rawLStick  uint16
	buttons    core.ButtonMask
	lstick     core.Stick
	rstick     core.Stick
	mode       byte
}

func takeSnapshot(p *core.Pad) snapshot {
	frame := p.Frame()
	return snapshot{
		changed:    p.Changed(),
		rawButtons: p.RawButtons(),
		rawLStick:  p.RawLStick(),
		buttons:    p.Down(),
		lstick:     p.LStick(),
		rstick:     p.RStick(),
		mode:       frame.Mode(),
	}
}

// linkNotices turns the recoveries of one Update into pad_link messages
func linkNotices(before, after core.Stats, mode byte) []protocol.LinkNotice {
	var notices []protocol.LinkNotice
	add := func(n uint32, event uint8) {
		for ; n > 0; n-- {
			notices = append(notices, protocol.LinkNotice{Event: event, Mode: mode})
		}
	}
	add(after.Stale-before.Stale, core.EvtStale)
	add(after.ConfigLeaks-before.ConfigLeaks, core.EvtConfigLeak)
	add(after.Noise-before.Noise, core.EvtNoise)
	return notices
}

// sink publishes pad state and may deliver mode requests back
type sink interface {
	Publish(s snapshot, notices []protocol.LinkNotice) error
	Requests() <-chan protocol.ModeRequest
	Close() error
}

// changeGate passes every changed tick plus the first unchanged one after
// it, so the receiver also sees the state things settled in.
type changeGate struct {
	pending bool
}

func (g *changeGate) due(changed bool) bool {
	if changed {
		g.pending = true
		return true
	}
	if g.pending {
		g.pending = false
		return true
	}
	return false
}

// textSink writes "Data: <buttons> <stick>" lines
type textSink struct {
	w    io.Writer
	gate changeGate
}

func newTextSink(w io.Writer) *textSink {
	return &textSink{w: w}
}

func (t *textSink) Publish(s snapshot, _ []protocol.LinkNotice) error {
	if !t.gate.due(s.changed) {
		return nil
	}
	_, err := fmt.Fprintf(t.w, "Data: %d %d\n", s.rawButtons, s.rawLStick)
	return err
}

func (t *textSink) Requests() <-chan protocol.ModeRequest { return nil }

func (t *textSink) Close() error { return nil }

// reportLink is the part of protocol.ReportLink the frame sink uses
type reportLink interface {
	SendReport(r protocol.Report) error
	SendLinkNotice(n protocol.LinkNotice) error
	Requests() <-chan protocol.ModeRequest
	Close() error
}

// frameSink sends framed reports to a motor board
type frameSink struct {
	link reportLink
	gate changeGate
}

func newFrameSink(link reportLink) *frameSink {
	return &frameSink{link: link}
}

func (f *frameSink) Publish(s snapshot, notices []protocol.LinkNotice) error {
	for _, n := range notices {
		if err := f.link.SendLinkNotice(n); err != nil {
			return err
		}
	}
	if !f.gate.due(s.changed) {
		return nil
	}
	return f.link.SendReport(protocol.Report{
		Buttons: uint16(s.buttons),
		LStick:  uint16(s.lstick),
		RStick:  uint16(s.rstick),
		Mode:    s.mode,
	})
}

func (f *frameSink) Requests() <-chan protocol.ModeRequest { return f.link.Requests() }

func (f *frameSink) Close() error { return f.link.Close() }

// nullSink discards everything
type nullSink struct{}

func (nullSink) Publish(snapshot, []protocol.LinkNotice) error { return nil }
func (nullSink) Requests() <-chan protocol.ModeRequest         { return nil }
func (nullSink) Close() error                                  { return nil }
