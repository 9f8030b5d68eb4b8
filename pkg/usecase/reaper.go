package usecase

import (
	"context"
	"time"

	"github.com/deskline-lab/vaani/pkg/domain/model/errs"
	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/service/sessionstore"
	"github.com/deskline-lab/vaani/pkg/utils/async"
	"github.com/deskline-lab/vaani/pkg/utils/clock"
	"github.com/deskline-lab/vaani/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// RunReaper sweeps on a fixed interval until the context is cancelled. Each
// sweep finalizes idle sessions and evicts expired audio artifacts. Sweeps
// are idempotent; an error in one sweep is reported and the loop continues.
func (x *UseCases) RunReaper(ctx context.Context, interval time.Duration) {
	logger := logging.From(ctx)
	logger.Info("session reaper started",
		"interval", interval,
		"idle_threshold", x.idleThreshold,
		"artifact_retention", x.artifactRetention)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("session reaper stopped")
			return
		case <-ticker.C:
			// Sweeps are idempotent, so a slow sweep overlapping the next
			// tick is harmless.
			async.Dispatch(ctx, x.Sweep)
		}
	}
}

// Sweep runs one reaper pass. Exported so tests and operators can trigger it
// directly.
func (x *UseCases) Sweep(ctx context.Context) error {
	if err := x.sweepIdleSessions(ctx); err != nil {
		return err
	}
	x.sweepArtifacts(ctx)
	return nil
}

func (x *UseCases) sweepIdleSessions(ctx context.Context) error {
	logger := logging.From(ctx)
	threshold := clock.Now(ctx).Add(-x.idleThreshold)

	idle, err := x.store.ListActiveIdleSince(ctx, threshold)
	if err != nil {
		return goerr.Wrap(err, "failed to list idle sessions")
	}

	for _, found := range idle {
		// Re-load under the per-session lock: a foreground turn may have
		// completed the session between our read and this write. In that
		// case the write is dropped, not an error.
		_, err := x.store.Update(ctx, found.ID, func(ctx context.Context, sess *session.Session) error {
			if sess.Status.IsTerminal() {
				return sessionstore.ErrNoChange
			}
			if !sess.LastActivityAt.Before(threshold) {
				return sessionstore.ErrNoChange
			}
			sess.Abandon(ctx)
			logger.Info("abandoned idle session",
				"session_id", sess.ID,
				"idle_since", sess.LastActivityAt,
				"duration_seconds", sess.DurationSeconds)
			return nil
		})
		if err != nil {
			errs.Handle(ctx, goerr.Wrap(err, "failed to abandon idle session",
				goerr.V("session_id", found.ID)))
		}
	}

	return nil
}

// sweepArtifacts deletes expired audio artifacts. Deletion failures are
// logged and retried on the next cycle, never fatal to the sweep.
func (x *UseCases) sweepArtifacts(ctx context.Context) {
	if x.storage == nil {
		return
	}
	logger := logging.From(ctx)

	expired, err := x.storage.ListExpired(ctx, x.artifactRetention)
	if err != nil {
		errs.Handle(ctx, goerr.Wrap(err, "failed to list expired artifacts"))
		return
	}

	for _, obj := range expired {
		if err := x.storage.Delete(ctx, obj.Name); err != nil {
			logger.Warn("failed to delete expired artifact, will retry next sweep",
				"object", obj.Name, logging.ErrAttr(err))
			continue
		}
		logger.Debug("deleted expired artifact", "object", obj.Name)
	}
}
