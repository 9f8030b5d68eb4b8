package storage

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Client stores ephemeral artifacts (synthesized audio) in a GCS bucket.
type Client struct {
	client *storage.Client
	bucket string
}

var _ interfaces.StorageClient = &Client{}

func New(ctx context.Context, bucket string, opts ...option.ClientOption) (*Client, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &Client{
		client: client,
		bucket: bucket,
	}, nil
}

func (x *Client) PutObject(ctx context.Context, object string) io.WriteCloser {
	return x.client.Bucket(x.bucket).Object(object).NewWriter(ctx)
}

func (x *Client) GetObject(ctx context.Context, object string) (io.ReadCloser, error) {
	rc, err := x.client.Bucket(x.bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create reader",
			goerr.V("bucket", x.bucket),
			goerr.V("object", object),
		)
	}

	return rc, nil
}

func (x *Client) DeleteObject(ctx context.Context, object string) error {
	if err := x.client.Bucket(x.bucket).Object(object).Delete(ctx); err != nil {
		if err == storage.ErrObjectNotExist {
			return nil
		}
		return goerr.Wrap(err, "failed to delete object",
			goerr.V("bucket", x.bucket),
			goerr.V("object", object),
		)
	}
	return nil
}

func (x *Client) ListObjects(ctx context.Context, prefix string) ([]interfaces.ObjectInfo, error) {
	iter := x.client.Bucket(x.bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	var objects []interfaces.ObjectInfo
	for {
		attrs, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list objects",
				goerr.V("bucket", x.bucket),
				goerr.V("prefix", prefix),
			)
		}
		objects = append(objects, interfaces.ObjectInfo{
			Name:      attrs.Name,
			CreatedAt: attrs.Created,
		})
	}

	return objects, nil
}

func (x *Client) Close(ctx context.Context) {
	safe.Close(ctx, x.client)
}
