package framepipe

// State is the lifecycle state of a Pipeline.
type State int

const (
	// StateUninitialized is the state of a new pipeline.
	StateUninitialized State = iota
	// StateInitialized accepts frames.
	StateInitialized
	// StateClosed is terminal.
	StateClosed
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
