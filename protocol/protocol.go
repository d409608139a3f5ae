// Package protocol implements the framed report link that carries pad state
// from the reader to a motor board and mode requests back.
//
// Every frame is
//
//	[len][seq][payload...][crc16 hi][crc16 lo][0x7E]
//
// where len counts the whole frame, seq cycles 0x10-0x1F and the payload is a
// run of VLQ-encoded messages (message id followed by its arguments).
package protocol

// Version of the report link
const Version = "0.1.0"

// Frame layout
const (
	MessageMax         = 128 // Scratch buffer size, several frames
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E

	// Sequence numbers carry 0x10 in the high nibble
	MessageDest     = 0x10
	MessageSeqMask  = 0x0F
	MessageSeqShift = 4
)

// Message ids
const (
	MsgPadState uint16 = 0x01 // buttons lstick rstick mode
	MsgPadLink  uint16 = 0x02 // event mode
	MsgSetMode  uint16 = 0x03 // analog locked pressure rumble
)

// MessageName returns a printable name for a message id
func MessageName(id uint16) string {
	switch id {
	case MsgPadState:
		return "pad_state"
	case MsgPadLink:
		return "pad_link"
	case MsgSetMode:
		return "set_mode"
	default:
		return "unknown"
	}
}

// nextSeq advances a sequence number within 0x10-0x1F
func nextSeq(seq uint8) uint8 {
	return ((seq + 1) & MessageSeqMask) | MessageDest
}
