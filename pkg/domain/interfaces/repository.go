package interfaces

import (
	"context"
	"time"

	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/domain/types"
)

// Repository is the durable record store for sessions. Implementations must
// reject PutSession when the stored record is already terminal (wrap
// errs.ErrSessionClosed) so terminal sessions stay frozen.
type Repository interface {
	// GetSession returns nil, nil when the ID is unknown.
	GetSession(ctx context.Context, id types.SessionID) (*session.Session, error)
	PutSession(ctx context.Context, sess *session.Session) error

	// ListActiveIdleSince returns active sessions whose last activity is
	// strictly before the threshold. Used by the reaper.
	ListActiveIdleSince(ctx context.Context, threshold time.Time) ([]*session.Session, error)
}
