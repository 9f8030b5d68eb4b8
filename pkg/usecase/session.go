package usecase

import (
	"context"

	"github.com/deskline-lab/vaani/pkg/domain/model/errs"
	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// GetSession returns the current session record including its transcript.
func (x *UseCases) GetSession(ctx context.Context, id types.SessionID) (*session.Session, error) {
	sess, err := x.store.Load(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load session", goerr.V("session_id", id))
	}
	if sess == nil {
		return nil, goerr.Wrap(errs.ErrSessionNotFound, "unknown session",
			goerr.V("session_id", id),
			goerr.T(errs.TagNotFound))
	}
	return sess, nil
}
