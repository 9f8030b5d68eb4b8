package config

import (
	"context"
	"log/slog"

	"github.com/deskline-lab/vaani/pkg/adapter/storage"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"

	"github.com/urfave/cli/v3"
)

type Storage struct {
	bucket    string
	projectID string
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-bucket",
			Usage:       "GCS bucket for audio artifacts",
			Category:    "Storage",
			Destination: &x.bucket,
			Sources:     cli.EnvVars("VAANI_STORAGE_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "storage-project-id",
			Usage:       "Storage project ID",
			Category:    "Storage",
			Destination: &x.projectID,
			Sources:     cli.EnvVars("VAANI_STORAGE_PROJECT_ID"),
		},
	}
}

func (x *Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("bucket", x.bucket),
		slog.String("project_id", x.projectID),
	)
}

func (x *Storage) Configure(ctx context.Context) (*storage.Client, error) {
	if x.bucket == "" {
		return nil, goerr.New("storage bucket is not set")
	}

	var opts []option.ClientOption
	if x.projectID != "" {
		opts = append(opts, option.WithQuotaProject(x.projectID))
	}

	client, err := storage.New(ctx, x.bucket, opts...)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// IsConfigured returns true if Storage is configured
func (x *Storage) IsConfigured() bool {
	return x.bucket != ""
}
