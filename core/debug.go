package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// LinkEvent captures a link state change for post-mortem analysis
type LinkEvent struct {
	EventType uint8  // Event type code
	Mode      byte   // Response byte 1 at the time of the event
	Clock     uint32 // Millisecond clock at event
}

// Event type codes
const (
	EvtProbe         = 1 // Controller answered the begin frame
	EvtModeConfirmed = 2 // Verification saw a data mode
	EvtStale         = 3 // No valid frame within the expiry window
	EvtConfigLeak    = 4 // Configuration mode reply while polling
	EvtNoise         = 5 // Unrecognized header discarded
	EvtReconfig      = 6 // Configuration sub-protocol executed
	EvtFailed        = 7 // Handshake watchdog expired
)

const (
	LinkRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global message sink (set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled gates per-frame chatter; recovery messages always print
	debugEnabled bool = false

	linkRing     [LinkRingSize]LinkEvent
	linkRingHead uint8
	linkRingLen  uint8
)

// SetDebugWriter sets the platform-specific output function
// This allows platforms to redirect messages to stdout, UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// SetDebugEnabled enables or disables verbose output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether verbose output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a verbose message when debug output is enabled
func DebugPrintln(msg string) {
	if debugEnabled {
		debugPrintln(msg)
	}
}

// logPrintln writes a message unconditionally
func logPrintln(msg string) {
	debugPrintln(msg)
}

// RecordLinkEvent stores an event in the ring buffer
func RecordLinkEvent(eventType uint8, mode byte, clock uint64) {
	idx := linkRingHead
	linkRing[idx] = LinkEvent{
		EventType: eventType,
		Mode:      mode,
		Clock:     uint32(clock),
	}
	linkRingHead = (idx + 1) % LinkRingSize
	if linkRingLen < LinkRingSize {
		linkRingLen++
	}
}

// LinkEvents returns the recorded events, oldest first
func LinkEvents() []LinkEvent {
	events := make([]LinkEvent, 0, linkRingLen)
	start := (linkRingHead + LinkRingSize - linkRingLen) % LinkRingSize
	for i := uint8(0); i < linkRingLen; i++ {
		events = append(events, linkRing[(start+i)%LinkRingSize])
	}
	return events
}

// EventName returns a printable name for an event type code
func EventName(eventType uint8) string {
	switch eventType {
	case EvtProbe:
		return "PROBE"
	case EvtModeConfirmed:
		return "MODE_OK"
	case EvtStale:
		return "STALE!"
	case EvtConfigLeak:
		return "CONFIG_LEAK"
	case EvtNoise:
		return "NOISE"
	case EvtReconfig:
		return "RECONFIG"
	case EvtFailed:
		return "FAILED!"
	default:
		return "UNKNOWN"
	}
}

// DumpLinkEvents outputs the event ring (call on shutdown/error)
func DumpLinkEvents() {
	debugPrintln("[LINK] === Link Event Dump ===")
	for _, evt := range LinkEvents() {
		debugPrintln("[LINK] " + EventName(evt.EventType) +
			" mode=" + hex8(evt.Mode) +
			" clock=" + utoa(evt.Clock))
	}
	debugPrintln("[LINK] === End Dump ===")
}

// ClearLinkEvents clears the event buffer
func ClearLinkEvents() {
	for i := range linkRing {
		linkRing[i] = LinkEvent{}
	}
	linkRingHead = 0
	linkRingLen = 0
}
