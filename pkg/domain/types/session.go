package types

// SessionID is a caller-supplied correlation ID identifying one call or chat
// session. It is opaque to the engine and immutable for the session lifetime.
type SessionID string

func (x SessionID) String() string {
	return string(x)
}

// SessionStatus represents the lifecycle status of a session
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusAbandoned SessionStatus = "abandoned"
)

func (x SessionStatus) String() string {
	return string(x)
}

// IsTerminal reports whether the status is a frozen terminal state.
// Status transitions are monotonic: active -> completed | abandoned, never back.
func (x SessionStatus) IsTerminal() bool {
	return x == SessionStatusCompleted || x == SessionStatusAbandoned
}

// Speaker identifies who produced a transcript entry
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)
