package errs

import "errors"

// ErrSessionClosed signals a write against a session whose stored status is
// already terminal. Terminal sessions are immutable.
var ErrSessionClosed = errors.New("session is closed")

// ErrSessionNotFound signals a lookup for an unknown session ID.
var ErrSessionNotFound = errors.New("session not found")
