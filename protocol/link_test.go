package protocol

import (
	"io"
	"testing"
	"time"
)

// pipePort is one end of an in-memory duplex stream
type pipePort struct {
	*io.PipeReader
	*io.PipeWriter
}

func (p pipePort) Close() error {
	p.PipeReader.Close()
	return p.PipeWriter.Close()
}

func newPipePair() (pipePort, pipePort) {
	ar, bw := io.Pipe()
	br, aw := io.Pipe()
	return pipePort{ar, aw}, pipePort{br, bw}
}

func TestReportLinkSendsReports(t *testing.T) {
	local, remote := newPipePair()
	link := NewReportLink(local)
	defer link.Close()

	received := make(chan Report, 1)
	go func() {
		c := &collector{}
		dec := NewDecoder(c.handle)
		fifo := NewFifoBuffer(256)
		buf := make([]byte, 64)
		for {
			n, err := remote.Read(buf)
			if err != nil {
				return
			}
			fifo.Write(buf[:n])
			dec.Feed(fifo)
			if len(c.reports) > 0 {
				received <- c.reports[0]
				return
			}
		}
	}()

	if err := link.SendReport(crossReport); err != nil {
		t.Fatalf("SendReport failed: %v", err)
	}

	select {
	case r := <-received:
		if r != crossReport {
			t.Errorf("Expected %+v, got %+v", crossReport, r)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("report not received")
	}
}

func TestReportLinkReceivesModeRequests(t *testing.T) {
	local, remote := newPipePair()
	link := NewReportLink(local)
	defer link.Close()

	board := NewReportLink(remote)
	defer board.Close()

	// pad_state arriving at the pad side is skipped
	go func() {
		_ = board.SendReport(crossReport)
	}()

	want := ModeRequest{Analog: true, Locked: true}
	if err := board.SendModeRequest(want); err != nil {
		t.Fatalf("SendModeRequest failed: %v", err)
	}

	select {
	case got := <-link.Requests():
		if got != want {
			t.Errorf("Expected %+v, got %+v", want, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("mode request not delivered")
	}
}

func TestReportLinkCloseTwice(t *testing.T) {
	local, _ := newPipePair()
	link := NewReportLink(local)

	if err := link.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := link.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if err := link.SendReport(crossReport); err == nil {
		t.Error("expected error sending on a closed link")
	}
}
