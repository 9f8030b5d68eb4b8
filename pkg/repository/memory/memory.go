package memory

import (
	"context"
	"sync"
	"time"

	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/domain/model/errs"
	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Memory is the in-memory repository used for development and tests. It
// mirrors the Firestore repository's semantics, including the terminal-write
// rejection.
type Memory struct {
	mu       sync.RWMutex
	sessions map[types.SessionID]*session.Session

	eb *goerr.Builder
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		sessions: make(map[types.SessionID]*session.Session),
		eb:       goerr.NewBuilder(goerr.TV(errs.RepositoryKey, "memory")),
	}
}

func (r *Memory) GetSession(ctx context.Context, id types.SessionID) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return copySession(sess), nil
}

func (r *Memory) PutSession(ctx context.Context, sess *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stored, ok := r.sessions[sess.ID]; ok && stored.Status.IsTerminal() {
		return r.eb.Wrap(errs.ErrSessionClosed, "cannot update terminal session",
			goerr.V("session_id", sess.ID),
			goerr.V("status", stored.Status),
			goerr.T(errs.TagSessionClosed))
	}

	r.sessions[sess.ID] = copySession(sess)
	return nil
}

func (r *Memory) ListActiveIdleSince(ctx context.Context, threshold time.Time) ([]*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []*session.Session
	for _, sess := range r.sessions {
		if sess.Status == types.SessionStatusActive && sess.LastActivityAt.Before(threshold) {
			results = append(results, copySession(sess))
		}
	}
	return results, nil
}

// copySession deep-copies so callers cannot mutate stored state behind the
// lock.
func copySession(src *session.Session) *session.Session {
	copied := *src
	copied.Transcript = make([]session.Entry, len(src.Transcript))
	copy(copied.Transcript, src.Transcript)
	return &copied
}
