package interfaces

import (
	"context"
	"io"
	"time"
)

// ObjectInfo describes a stored artifact for retention decisions.
type ObjectInfo struct {
	Name      string
	CreatedAt time.Time
}

// StorageClient is the blob store holding ephemeral artifacts such as
// synthesized audio. Artifacts live and die independently of the session
// record.
type StorageClient interface {
	PutObject(ctx context.Context, object string) io.WriteCloser
	GetObject(ctx context.Context, object string) (io.ReadCloser, error)
	DeleteObject(ctx context.Context, object string) error
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, error)
	Close(ctx context.Context)
}
