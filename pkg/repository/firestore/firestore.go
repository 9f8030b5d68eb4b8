package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/domain/model/errs"
	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collectionSessions = "sessions"

// Firestore is the durable session repository. Requires a composite index on
// (status, last_activity_at) for the reaper query.
type Firestore struct {
	db *firestore.Client
	eb *goerr.Builder
}

var _ interfaces.Repository = &Firestore{}

func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	db, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	return &Firestore{
		db: db,
		eb: goerr.NewBuilder(
			goerr.TV(errs.RepositoryKey, "firestore"),
			goerr.V("project_id", projectID),
			goerr.V("database_id", databaseID),
		),
	}, nil
}

func (r *Firestore) Close() error {
	return r.db.Close()
}

func (r *Firestore) GetSession(ctx context.Context, id types.SessionID) (*session.Session, error) {
	doc, err := r.db.Collection(collectionSessions).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, r.eb.Wrap(err, "failed to get session",
			goerr.V("session_id", id),
			goerr.T(errs.TagDatabase))
	}

	var sess session.Session
	if err := doc.DataTo(&sess); err != nil {
		return nil, r.eb.Wrap(err, "failed to convert data to session",
			goerr.V("session_id", id),
			goerr.T(errs.TagInternal))
	}
	return &sess, nil
}

// PutSession writes a session inside a transaction so the terminal-status
// check and the write are atomic.
func (r *Firestore) PutSession(ctx context.Context, sess *session.Session) error {
	ref := r.db.Collection(collectionSessions).Doc(sess.ID.String())

	err := r.db.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil && status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to read session in transaction")
		}

		if err == nil {
			var stored session.Session
			if err := doc.DataTo(&stored); err != nil {
				return goerr.Wrap(err, "failed to convert stored session")
			}
			if stored.Status.IsTerminal() {
				return goerr.Wrap(errs.ErrSessionClosed, "cannot update terminal session",
					goerr.V("status", stored.Status),
					goerr.T(errs.TagSessionClosed))
			}
		}

		return tx.Set(ref, sess)
	})
	if err != nil {
		return r.eb.Wrap(err, "failed to put session",
			goerr.V("session_id", sess.ID),
			goerr.T(errs.TagDatabase))
	}
	return nil
}

func (r *Firestore) ListActiveIdleSince(ctx context.Context, threshold time.Time) ([]*session.Session, error) {
	query := r.db.Collection(collectionSessions).
		Where("status", "==", types.SessionStatusActive.String()).
		Where("last_activity_at", "<", threshold)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var sessions []*session.Session
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, r.eb.Wrap(err, "failed to query idle sessions",
				goerr.V("threshold", threshold),
				goerr.T(errs.TagDatabase))
		}

		var sess session.Session
		if err := doc.DataTo(&sess); err != nil {
			return nil, r.eb.Wrap(err, "failed to convert data to session",
				goerr.T(errs.TagInternal))
		}
		sessions = append(sessions, &sess)
	}

	return sessions, nil
}
