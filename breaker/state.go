package breaker

// State identifies the circuit breaker state.
type State int

const (
	// Closed: calls flow normally; failures are tracked in the window.
	Closed State = iota
	// Open: calls are rejected until the cooldown elapses.
	Open
	// HalfOpen: calls flow while a fresh window decides recovery.
	HalfOpen
)

// String returns the persisted label for the state.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// parseState maps a persisted label back to a State.
func parseState(label string) (State, bool) {
	switch label {
	case "closed":
		return Closed, true
	case "open":
		return Open, true
	case "half_open":
		return HalfOpen, true
	default:
		return Closed, false
	}
}
