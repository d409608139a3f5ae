package protocol

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// ReportLink sends pad reports over a byte stream (usually a serial port)
// and collects set_mode requests coming back. A background goroutine reads
// the stream; requests are handed over on a channel so the polling loop can
// apply them between ticks.
type ReportLink struct {
	port io.ReadWriteCloser

	// Outbound
	writeMutex sync.Mutex
	enc        *Encoder
	scratch    *ScratchOutput

	// Inbound
	readMutex sync.Mutex
	input     *FifoBuffer
	dec       *Decoder
	requests  chan ModeRequest

	stopChan  chan struct{}
	doneChan  chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewReportLink starts reading port in the background
func NewReportLink(port io.ReadWriteCloser) *ReportLink {
	l := &ReportLink{
		port:     port,
		scratch:  NewScratchOutput(),
		input:    NewFifoBuffer(512),
		requests: make(chan ModeRequest, 4),
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
	l.enc = NewEncoder(l.scratch)
	l.dec = NewDecoder(l.handle)

	go l.readLoop()
	return l
}

// SendReport writes one pad_state frame
func (l *ReportLink) SendReport(r Report) error {
	return l.send(MsgPadState, r.EncodeArgs)
}

// SendLinkNotice writes one pad_link frame
func (l *ReportLink) SendLinkNotice(n LinkNotice) error {
	return l.send(MsgPadLink, n.EncodeArgs)
}

// SendModeRequest writes one set_mode frame (used by the board side and tests)
func (l *ReportLink) SendModeRequest(m ModeRequest) error {
	return l.send(MsgSetMode, m.EncodeArgs)
}

// Requests delivers decoded set_mode messages. When the consumer falls
// behind, the oldest request is dropped.
func (l *ReportLink) Requests() <-chan ModeRequest {
	return l.requests
}

// Stats returns inbound decoder counters
func (l *ReportLink) Stats() DecoderStats {
	l.readMutex.Lock()
	defer l.readMutex.Unlock()
	return l.dec.Stats()
}

func (l *ReportLink) send(id uint16, args func(output OutputBuffer)) error {
	l.writeMutex.Lock()
	defer l.writeMutex.Unlock()

	l.scratch.Reset()
	if err := l.enc.Encode(id, args); err != nil {
		return fmt.Errorf("failed to encode %s: %w", MessageName(id), err)
	}

	frame := l.scratch.Result()
	n, err := l.port.Write(frame)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", MessageName(id), err)
	}
	if n != len(frame) {
		return fmt.Errorf("incomplete write: %d/%d bytes", n, len(frame))
	}
	return nil
}

func (l *ReportLink) readLoop() {
	defer close(l.doneChan)

	buffer := make([]byte, 256)
	for {
		select {
		case <-l.stopChan:
			return
		default:
		}

		n, err := l.port.Read(buffer)
		if n > 0 {
			l.readMutex.Lock()
			l.input.Write(buffer[:n])
			l.dec.Feed(l.input)
			l.readMutex.Unlock()
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
				return
			}
			// Serial read timeouts and transient errors
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func (l *ReportLink) handle(id uint16, args *[]byte) error {
	if id != MsgSetMode {
		return skipArgs(id, args)
	}

	req, err := DecodeModeRequest(args)
	if err != nil {
		return err
	}

	select {
	case l.requests <- req:
	default:
		select {
		case <-l.requests:
		default:
		}
		l.requests <- req
	}
	return nil
}

// Close stops the reader and closes the port. It is safe to call twice.
func (l *ReportLink) Close() error {
	l.closeOnce.Do(func() {
		close(l.stopChan)
		l.closeErr = l.port.Close()
		<-l.doneChan
	})
	return l.closeErr
}
