package errs

import "github.com/m-mizutani/goerr/v2"

var (
	TagNotFound   = goerr.NewTag("not_found")
	TagValidation = goerr.NewTag("validation")
	TagConflict   = goerr.NewTag("conflict")

	TagInternal = goerr.NewTag("internal")
	TagExternal = goerr.NewTag("external")
	TagTimeout  = goerr.NewTag("timeout")
	TagDatabase = goerr.NewTag("database")

	// TagSessionClosed marks writes against a session already in a terminal
	// status; the caller must start a new session.
	TagSessionClosed = goerr.NewTag("session_closed")
	TagInvalidState  = goerr.NewTag("invalid_state")

	TagLLMError           = goerr.NewTag("llm_error")
	TagInvalidLLMResponse = goerr.NewTag("invalid_llm_response")
)

// RepositoryKey annotates errors with the backing repository implementation.
var RepositoryKey = goerr.NewTypedKey[string]("repository")
