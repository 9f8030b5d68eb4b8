package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/deskline-lab/vaani/pkg/utils/clock"
	"github.com/deskline-lab/vaani/pkg/utils/safe"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

const audioPrefix = "audio/"

// Service owns the naming scheme and retention policy for ephemeral audio
// artifacts. Artifacts are tied to a session for grouping but live and die
// independently of the session record.
type Service struct {
	client interfaces.StorageClient
}

func New(client interfaces.StorageClient) *Service {
	return &Service{client: client}
}

// SaveAudio stores one synthesized reply and returns the object name.
func (x *Service) SaveAudio(ctx context.Context, sessionID types.SessionID, audio io.Reader) (string, error) {
	object := fmt.Sprintf("%s%s/%s.mp3", audioPrefix, sessionID, uuid.NewString())

	w := x.client.PutObject(ctx, object)
	if _, err := io.Copy(w, audio); err != nil {
		safe.Close(ctx, w)
		return "", goerr.Wrap(err, "failed to write audio artifact",
			goerr.V("object", object))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize audio artifact",
			goerr.V("object", object))
	}

	return object, nil
}

func (x *Service) GetAudio(ctx context.Context, object string) (io.ReadCloser, error) {
	return x.client.GetObject(ctx, object)
}

// ListExpired returns audio artifacts older than the retention window.
func (x *Service) ListExpired(ctx context.Context, retention time.Duration) ([]interfaces.ObjectInfo, error) {
	objects, err := x.client.ListObjects(ctx, audioPrefix)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list audio artifacts")
	}

	deadline := clock.Now(ctx).Add(-retention)
	var expired []interfaces.ObjectInfo
	for _, obj := range objects {
		if obj.CreatedAt.Before(deadline) {
			expired = append(expired, obj)
		}
	}
	return expired, nil
}

// Delete removes one artifact. Implementations treat a missing object as
// already deleted.
func (x *Service) Delete(ctx context.Context, object string) error {
	return x.client.DeleteObject(ctx, object)
}
