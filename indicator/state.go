package indicator

// State is the recording lifecycle mode pushed by the engine over the
// recording-state channel.
type State int

const (
	// Listening is the initial mode: bars track the live microphone level.
	Listening State = iota
	// Processing shows the pulsing "thinking" animation while the engine
	// transcribes.
	Processing
	// Cancelling shows the same pulse while the engine discards a take.
	Cancelling
)

// Wire values emitted by the recording engine.
const (
	wireListening  = "listening"
	wireProcessing = "processing"
	wireCancelling = "cancelling"
)

func (s State) String() string {
	switch s {
	case Listening:
		return wireListening
	case Processing:
		return wireProcessing
	case Cancelling:
		return wireCancelling
	}
	return "unknown"
}

// ParseState maps a wire value to a State. Unknown values report
// ok=false and leave the caller's current state untouched.
func ParseState(v string) (State, bool) {
	switch v {
	case wireListening:
		return Listening, true
	case wireProcessing:
		return Processing, true
	case wireCancelling:
		return Cancelling, true
	}
	return 0, false
}
