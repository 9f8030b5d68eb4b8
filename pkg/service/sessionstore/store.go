package sessionstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNoChange can be returned by an Update callback to skip the write while
// still returning the loaded session. Used by the reaper when it finds the
// session already terminal.
var ErrNoChange = errors.New("no change to persist")

// Store serializes updates per session ID over the repository. Concurrent
// updates to the same ID queue in arrival order; updates to different IDs do
// not block each other. This is the lost-update guard for overlapping turns.
type Store struct {
	repo interfaces.Repository

	mu    sync.Mutex
	locks map[types.SessionID]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func New(repo interfaces.Repository) *Store {
	return &Store{
		repo:  repo,
		locks: make(map[types.SessionID]*keyedLock),
	}
}

// acquire locks the per-ID mutex and returns its release func. Lock entries
// are refcounted so the table does not grow with dead session IDs.
func (x *Store) acquire(id types.SessionID) func() {
	x.mu.Lock()
	lk, ok := x.locks[id]
	if !ok {
		lk = &keyedLock{}
		x.locks[id] = lk
	}
	lk.refs++
	x.mu.Unlock()

	lk.mu.Lock()

	return func() {
		lk.mu.Unlock()

		x.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(x.locks, id)
		}
		x.mu.Unlock()
	}
}

// Load returns the stored session, or nil when the ID is unknown.
func (x *Store) Load(ctx context.Context, id types.SessionID) (*session.Session, error) {
	return x.repo.GetSession(ctx, id)
}

// Save persists a session directly. The repository rejects writes against a
// terminal record.
func (x *Store) Save(ctx context.Context, sess *session.Session) error {
	release := x.acquire(sess.ID)
	defer release()

	return x.repo.PutSession(ctx, sess)
}

// Update runs a serialized read-modify-write for one session ID. An unknown
// ID is created fresh at the welcome step before fn runs. fn may return
// ErrNoChange to skip persistence.
func (x *Store) Update(ctx context.Context, id types.SessionID, fn func(ctx context.Context, sess *session.Session) error) (*session.Session, error) {
	release := x.acquire(id)
	defer release()

	sess, err := x.repo.GetSession(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load session", goerr.V("session_id", id))
	}
	if sess == nil {
		sess = session.New(ctx, id)
	}

	if err := fn(ctx, sess); err != nil {
		if errors.Is(err, ErrNoChange) {
			return sess, nil
		}
		return nil, err
	}

	if err := x.repo.PutSession(ctx, sess); err != nil {
		return sess, goerr.Wrap(err, "failed to persist session", goerr.V("session_id", id))
	}

	return sess, nil
}

// ListActiveIdleSince passes through to the repository.
func (x *Store) ListActiveIdleSince(ctx context.Context, threshold time.Time) ([]*session.Session, error) {
	return x.repo.ListActiveIdleSince(ctx, threshold)
}
