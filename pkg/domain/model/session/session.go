package session

import (
	"context"
	"time"

	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/deskline-lab/vaani/pkg/utils/clock"
	"github.com/m-mizutani/goerr/v2"
)

// Session is the durable record of one call or chat interaction. One record
// per caller-supplied session ID; mutated once per turn by the dialog engine
// and frozen once it reaches a terminal status.
type Session struct {
	ID      types.SessionID `firestore:"id" json:"id"`
	Contact string          `firestore:"contact" json:"contact"`

	Language types.Language      `firestore:"language" json:"language"`
	Step     types.Step          `firestore:"step" json:"step"`
	Status   types.SessionStatus `firestore:"status" json:"status"`
	Slots    Slots               `firestore:"slots" json:"slots"`

	StartedAt       time.Time `firestore:"started_at" json:"started_at"`
	EndedAt         time.Time `firestore:"ended_at" json:"ended_at,omitzero"`
	DurationSeconds int64     `firestore:"duration_seconds" json:"duration_seconds"`

	// LastActivityAt mirrors the timestamp of the transcript tail so the
	// reaper can query idle sessions without loading transcripts.
	LastActivityAt time.Time `firestore:"last_activity_at" json:"last_activity_at"`

	Transcript []Entry `firestore:"transcript" json:"transcript"`
}

// New creates an active session positioned at the welcome step.
func New(ctx context.Context, id types.SessionID) *Session {
	now := clock.Now(ctx)
	return &Session{
		ID:             id,
		Language:       types.LangDefault,
		Step:           types.StepWelcome,
		Status:         types.SessionStatusActive,
		StartedAt:      now,
		LastActivityAt: now,
	}
}

// Append adds an entry to the end of the transcript. The transcript is
// append-only: entries are never reordered, updated, or truncated in storage.
func (s *Session) Append(e Entry) {
	s.Transcript = append(s.Transcript, e)
	if e.Timestamp.After(s.LastActivityAt) {
		s.LastActivityAt = e.Timestamp
	}
}

// LastN returns up to n trailing transcript entries, used to bound the
// context window passed to the intent resolver.
func (s *Session) LastN(n int) []Entry {
	if n <= 0 || len(s.Transcript) == 0 {
		return nil
	}
	if len(s.Transcript) <= n {
		return s.Transcript
	}
	return s.Transcript[len(s.Transcript)-n:]
}

// AdvanceTo moves the session to the next step, enforcing the state machine
// adjacency. Arbitrary jumps are a programming error, not user input.
func (s *Session) AdvanceTo(next types.Step) error {
	if !s.Step.CanAdvanceTo(next) {
		return goerr.New("invalid step transition",
			goerr.V("from", s.Step),
			goerr.V("to", next))
	}
	s.Step = next
	return nil
}

// Complete freezes the session as successfully finished.
func (s *Session) Complete(ctx context.Context) {
	s.terminate(ctx, types.SessionStatusCompleted)
	s.Step = types.StepCompleted
}

// Abandon freezes the session as idle-expired. Driven by the reaper, never
// by user input.
func (s *Session) Abandon(ctx context.Context) {
	s.terminate(ctx, types.SessionStatusAbandoned)
}

func (s *Session) terminate(ctx context.Context, status types.SessionStatus) {
	if s.Status.IsTerminal() {
		return
	}
	s.Status = status
	s.EndedAt = clock.Now(ctx)
	s.DurationSeconds = int64(s.EndedAt.Sub(s.StartedAt).Seconds())
}
