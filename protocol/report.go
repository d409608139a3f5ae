package protocol

import "errors"

var ErrUnexpectedMessage = errors.New("unexpected message id")

// Report is one pad_state message. Buttons use the pressed-is-set encoding.
type Report struct {
	Buttons uint16
	LStick  uint16 // X high byte, Y low byte
	RStick  uint16
	Mode    byte // Response byte 1 of the frame the state came from
}

// LinkNotice is one pad_link message
type LinkNotice struct {
	Event uint8
	Mode  byte
}

// ModeRequest is one set_mode message
type ModeRequest struct {
	Analog   bool
	Locked   bool
	Pressure bool
	Rumble   bool
}

// EncodeArgs writes the pad_state arguments
func (r Report) EncodeArgs(output OutputBuffer) {
	EncodeVLQUint(output, uint32(r.Buttons))
	EncodeVLQUint(output, uint32(r.LStick))
	EncodeVLQUint(output, uint32(r.RStick))
	EncodeVLQUint(output, uint32(r.Mode))
}

// DecodeReport reads pad_state arguments
func DecodeReport(args *[]byte) (Report, error) {
	var buttons, lstick, rstick, mode uint32
	if err := decodeArgs(args, &buttons, &lstick, &rstick, &mode); err != nil {
		return Report{}, err
	}
	return Report{
		Buttons: uint16(buttons),
		LStick:  uint16(lstick),
		RStick:  uint16(rstick),
		Mode:    byte(mode),
	}, nil
}

// EncodeArgs writes the pad_link arguments
func (n LinkNotice) EncodeArgs(output OutputBuffer) {
	EncodeVLQUint(output, uint32(n.Event))
	EncodeVLQUint(output, uint32(n.Mode))
}

// DecodeLinkNotice reads pad_link arguments
func DecodeLinkNotice(args *[]byte) (LinkNotice, error) {
	var event, mode uint32
	if err := decodeArgs(args, &event, &mode); err != nil {
		return LinkNotice{}, err
	}
	return LinkNotice{Event: uint8(event), Mode: byte(mode)}, nil
}

// EncodeArgs writes the set_mode arguments
func (m ModeRequest) EncodeArgs(output OutputBuffer) {
	for _, flag := range []bool{m.Analog, m.Locked, m.Pressure, m.Rumble} {
		var v uint32
		if flag {
			v = 1
		}
		EncodeVLQUint(output, v)
	}
}

// DecodeModeRequest reads set_mode arguments. Any non-zero flag is true.
func DecodeModeRequest(args *[]byte) (ModeRequest, error) {
	var analog, locked, pressure, rumble uint32
	if err := decodeArgs(args, &analog, &locked, &pressure, &rumble); err != nil {
		return ModeRequest{}, err
	}
	return ModeRequest{
		Analog:   analog != 0,
		Locked:   locked != 0,
		Pressure: pressure != 0,
		Rumble:   rumble != 0,
	}, nil
}

// skipArgs advances past the arguments of a known message
func skipArgs(id uint16, args *[]byte) error {
	var n int
	switch id {
	case MsgPadState:
		n = 4
	case MsgPadLink:
		n = 2
	case MsgSetMode:
		n = 4
	default:
		return ErrUnexpectedMessage
	}
	for i := 0; i < n; i++ {
		if _, err := DecodeVLQUint(args); err != nil {
			return err
		}
	}
	return nil
}
