package protocol

import (
	"errors"
	"testing"
)

func TestVLQEncodeDecodeInt(t *testing.T) {
	testCases := []int32{
		0, 1, -1, 95, 96, -32, -33,
		127, -127, 128, -128,
		1000, -1000, 65535, -65535,
		1000000, -1000000,
		1 << 30, -(1 << 30),
	}

	for _, expected := range testCases {
		output := NewScratchOutput()
		EncodeVLQInt(output, expected)
		encoded := output.Result()

		data := encoded
		decoded, err := DecodeVLQInt(&data)
		if err != nil {
			t.Errorf("Failed to decode VLQ for value %d: %v", expected, err)
			continue
		}

		if decoded != expected {
			t.Errorf("VLQ mismatch: expected %d, got %d (encoded as %v)", expected, decoded, encoded)
		}

		if len(data) != 0 {
			t.Errorf("VLQ decode didn't consume all bytes for value %d: %d bytes remaining", expected, len(data))
		}
	}
}

func TestVLQEncoding(t *testing.T) {
	testCases := []struct {
		v    int32
		want []byte
	}{
		{0, []byte{0x00}},
		{-1, []byte{0x7F}},
		{95, []byte{0x5F}},
		{96, []byte{0x80, 0x60}},
		{0x73, []byte{0x80, 0x73}},
		{0x4000, []byte{0x81, 0x80, 0x00}},
		{0x807F, []byte{0x82, 0x80, 0x7F}},
	}

	for _, tc := range testCases {
		output := NewScratchOutput()
		EncodeVLQInt(output, tc.v)
		if got := output.Result(); string(got) != string(tc.want) {
			t.Errorf("%d: expected %x, got %x", tc.v, tc.want, got)
		}
	}
}

func TestVLQBufferTooSmall(t *testing.T) {
	data := []byte{0x80} // Continuation byte but no following byte
	_, err := DecodeVLQInt(&data)
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("Expected ErrBufferTooSmall, got %v", err)
	}

	data = nil
	if _, err := DecodeVLQUint(&data); !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("Expected ErrBufferTooSmall on empty input, got %v", err)
	}
}

func TestVLQTooLong(t *testing.T) {
	data := []byte{0x81, 0x81, 0x81, 0x81, 0x81, 0x01}
	if _, err := DecodeVLQInt(&data); !errors.Is(err, ErrInvalidVLQ) {
		t.Errorf("Expected ErrInvalidVLQ, got %v", err)
	}
}

func TestDecodeArgs(t *testing.T) {
	output := NewScratchOutput()
	EncodeVLQUint(output, 7)
	EncodeVLQUint(output, 0xFFFF)
	data := output.Result()

	var a, b uint32
	if err := decodeArgs(&data, &a, &b); err != nil {
		t.Fatalf("decodeArgs failed: %v", err)
	}
	if a != 7 || b != 0xFFFF {
		t.Errorf("got %d %d", a, b)
	}

	var c uint32
	if err := decodeArgs(&data, &c); err == nil {
		t.Error("expected error when arguments run out")
	}
}
