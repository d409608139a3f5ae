package protocol

// InputBuffer is a byte queue the Decoder consumes from
type InputBuffer interface {
	// Data returns the queued bytes (contiguous)
	Data() []byte

	// Available returns the number of queued bytes
	Available() int

	// Pop removes n bytes from the front
	Pop(n int)
}

// OutputBuffer is a byte sink for encoded frames and arguments
type OutputBuffer interface {
	Output(data []byte)
}

// SliceInputBuffer is an InputBuffer over a fixed slice
type SliceInputBuffer struct {
	data []byte
}

func NewSliceInputBuffer(data []byte) *SliceInputBuffer {
	return &SliceInputBuffer{data: data}
}

func (s *SliceInputBuffer) Data() []byte {
	return s.data
}

func (s *SliceInputBuffer) Available() int {
	return len(s.data)
}

func (s *SliceInputBuffer) Pop(n int) {
	if n > len(s.data) {
		n = len(s.data)
	}
	s.data = s.data[n:]
}

// ScratchOutput is an OutputBuffer backed by a fixed array. Writes past
// MessageMax are dropped and counted.
type ScratchOutput struct {
	buf     [MessageMax]byte
	pos     int
	dropped int
}

func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

func (s *ScratchOutput) Output(data []byte) {
	n := copy(s.buf[s.pos:], data)
	s.pos += n
	s.dropped += len(data) - n
}

// Len returns the number of bytes held
func (s *ScratchOutput) Len() int {
	return s.pos
}

// Result returns everything written since the last Reset
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Dropped returns the number of bytes lost to overflow since the last Reset
func (s *ScratchOutput) Dropped() int {
	return s.dropped
}

// Reset empties the buffer
func (s *ScratchOutput) Reset() {
	s.pos = 0
	s.dropped = 0
}

// FifoBuffer queues bytes between a serial port and the Decoder. Queued
// bytes always sit in one contiguous run; Write moves them to the front
// when the tail runs out of room.
type FifoBuffer struct {
	buf   []byte
	start int
	end   int
}

func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{buf: make([]byte, capacity)}
}

// Write queues as much of data as fits and returns the count
func (f *FifoBuffer) Write(data []byte) int {
	if f.end+len(data) > len(f.buf) && f.start > 0 {
		f.end = copy(f.buf, f.buf[f.start:f.end])
		f.start = 0
	}
	n := copy(f.buf[f.end:], data)
	f.end += n
	return n
}

func (f *FifoBuffer) Available() int {
	return f.end - f.start
}

// Free returns the space left for Write
func (f *FifoBuffer) Free() int {
	return len(f.buf) - f.Available()
}

// Data returns the queued bytes without copying
func (f *FifoBuffer) Data() []byte {
	return f.buf[f.start:f.end]
}

func (f *FifoBuffer) Pop(n int) {
	if avail := f.Available(); n > avail {
		n = avail
	}
	f.start += n
	if f.start == f.end {
		f.start, f.end = 0, 0
	}
}

func (f *FifoBuffer) IsEmpty() bool {
	return f.start == f.end
}

func (f *FifoBuffer) Reset() {
	f.start, f.end = 0, 0
}
