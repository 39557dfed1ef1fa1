package typing

// State is the run state of a single Engine.
type State int

const (
	// Ready means the engine was created but not started.
	Ready State = iota
	// Typing means characters are being injected.
	Typing
	// Paused means the run is suspended with the cursor frozen.
	Paused
	// Stopped is terminal: the run was cancelled before the end of the text.
	Stopped
	// Completed is terminal: every character was processed.
	Completed
	// Error is terminal: the run loop hit an unrecoverable fault.
	Error
)

// String returns the human-readable name of the state.
func (s State) String() string {
	switch s {
	case Ready:
		return "READY"
	case Typing:
		return "TYPING"
	case Paused:
		return "PAUSED"
	case Stopped:
		return "STOPPED"
	case Completed:
		return "COMPLETED"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further transitions can happen from s.
func (s State) Terminal() bool {
	return s == Stopped || s == Completed || s == Error
}

// Status maps the state onto the vocabulary observers understand.
// Stopped and Completed are idle from the outside and surface as ready.
func (s State) Status() Status {
	switch s {
	case Typing:
		return StatusTyping
	case Paused:
		return StatusPaused
	case Error:
		return StatusError
	default:
		return StatusReady
	}
}

// Status is the externally visible state vocabulary.
type Status string

const (
	StatusReady  Status = "ready"
	StatusTyping Status = "typing"
	StatusPaused Status = "paused"
	StatusError  Status = "error"
)

// Snapshot is the answer to "what is going on right now".
type Snapshot struct {
	IsTyping bool `json:"is_typing"`
	IsPaused bool `json:"is_paused"`
}

// Status folds the snapshot back into the observer vocabulary.
func (s Snapshot) Status() Status {
	switch {
	case s.IsTyping && s.IsPaused:
		return StatusPaused
	case s.IsTyping:
		return StatusTyping
	default:
		return StatusReady
	}
}
