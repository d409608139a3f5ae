package protocol

import "errors"

var ErrMessageTooLong = errors.New("message too long for one frame")

// Encoder builds frames into an OutputBuffer. Each frame takes the next
// sequence number.
type Encoder struct {
	out OutputBuffer
	seq uint8
}

// NewEncoder creates an Encoder starting at sequence 0x10
func NewEncoder(out OutputBuffer) *Encoder {
	return &Encoder{out: out, seq: MessageDest}
}

// Encode writes one frame holding message id and whatever args writes.
// On error nothing is kept in the output past its previous position.
func (e *Encoder) Encode(id uint16, args func(output OutputBuffer)) error {
	scratch := NewScratchOutput()
	EncodeVLQUint(scratch, uint32(id))
	if args != nil {
		args(scratch)
	}
	payload := scratch.Result()

	msgLen := MessageHeaderSize + len(payload) + MessageTrailerSize
	if msgLen > MessageLengthMax || scratch.Dropped() > 0 {
		return ErrMessageTooLong
	}

	frame := make([]byte, 0, msgLen)
	frame = append(frame, uint8(msgLen), e.seq)
	frame = append(frame, payload...)
	frame = appendCRC(frame)

	e.out.Output(frame)
	e.seq = nextSeq(e.seq)
	return nil
}

// Sequence returns the sequence number of the next frame
func (e *Encoder) Sequence() uint8 {
	return e.seq
}

// Handler receives one decoded message. args holds the rest of the frame
// payload and must be advanced past the message's arguments.
type Handler func(id uint16, args *[]byte) error

// DecoderStats counts decoder activity
type DecoderStats struct {
	Frames  uint32 // Frames with a good CRC
	Lost    uint32 // Frames skipped according to the sequence numbers
	Resyncs uint32 // Times the decoder dropped bytes to find a frame boundary
	Errors  uint32 // Malformed payloads and handler errors
}

// Decoder splits a byte stream into frames and dispatches their messages.
// After a bad length, sequence, trailer or CRC it skips to the next 0x7E.
type Decoder struct {
	handler  Handler
	synced   bool
	haveSeq  bool
	expected uint8
	stats    DecoderStats
}

// NewDecoder creates a Decoder calling handler for each message
func NewDecoder(handler Handler) *Decoder {
	return &Decoder{handler: handler, synced: true}
}

// Stats returns decoder counters
func (d *Decoder) Stats() DecoderStats {
	return d.stats
}

// Feed consumes every complete frame queued in input. A trailing partial
// frame stays queued for the next call.
func (d *Decoder) Feed(input InputBuffer) {
	data := input.Data()

	for len(data) > 0 {
		if !d.synced {
			syncPos := -1
			for i, b := range data {
				if b == MessageValueSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				data = nil
				break
			}
			data = data[syncPos+1:]
			d.synced = true
			continue
		}

		if data[0] == MessageValueSync {
			data = data[1:]
			continue
		}

		if len(data) < MessageLengthMin {
			break
		}

		msgLen := int(data[MessagePositionLen])
		if msgLen < MessageLengthMin || msgLen > MessageLengthMax {
			d.desync()
			continue
		}

		seq := data[MessagePositionSeq]
		if seq&^MessageSeqMask != MessageDest {
			d.desync()
			continue
		}

		if len(data) < msgLen {
			break
		}

		if data[msgLen-MessageTrailerSync] != MessageValueSync {
			d.desync()
			continue
		}

		frameCRC := uint16(data[msgLen-MessageTrailerCRC])<<8 |
			uint16(data[msgLen-MessageTrailerCRC+1])
		if frameCRC != CRC16(data[:msgLen-MessageTrailerSize]) {
			d.desync()
			continue
		}

		payload := data[MessageHeaderSize : msgLen-MessageTrailerSize]
		data = data[msgLen:]

		d.stats.Frames++
		if d.haveSeq && seq != d.expected {
			d.stats.Lost += uint32((seq - d.expected) & MessageSeqMask)
		}
		d.haveSeq = true
		d.expected = nextSeq(seq)

		d.dispatch(payload)
	}

	if consumed := input.Available() - len(data); consumed > 0 {
		input.Pop(consumed)
	}
}

// Reset forgets sequence history
func (d *Decoder) Reset() {
	d.synced = true
	d.haveSeq = false
	d.expected = MessageDest
}

func (d *Decoder) desync() {
	d.synced = false
	d.stats.Resyncs++
}

func (d *Decoder) dispatch(payload []byte) {
	for len(payload) > 0 {
		id, err := DecodeVLQUint(&payload)
		if err != nil {
			d.stats.Errors++
			return
		}
		if d.handler == nil {
			return
		}
		if err := d.handler(uint16(id), &payload); err != nil {
			// Rest of the frame cannot be located
			d.stats.Errors++
			return
		}
	}
}
