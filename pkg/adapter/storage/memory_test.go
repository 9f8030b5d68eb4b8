package storage_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/deskline-lab/vaani/pkg/adapter/storage"
	"github.com/deskline-lab/vaani/pkg/utils/clock"
	"github.com/m-mizutani/gt"
)

func TestMemoryClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := storage.NewMemoryClient()

	w := client.PutObject(ctx, "audio/call-001/reply.mp3")
	gt.R1(w.Write([]byte("fake audio bytes"))).NoError(t)
	gt.NoError(t, w.Close())

	r := gt.R1(client.GetObject(ctx, "audio/call-001/reply.mp3")).NoError(t)
	data := gt.R1(io.ReadAll(r)).NoError(t)
	gt.Equal(t, string(data), "fake audio bytes")

	_, err := client.GetObject(ctx, "audio/unknown")
	gt.Error(t, err)
}

func TestMemoryClientListAndDelete(t *testing.T) {
	base := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)
	ctx := clock.With(context.Background(), func() time.Time { return base })
	client := storage.NewMemoryClient()

	for _, name := range []string{"audio/a/1.mp3", "audio/a/2.mp3", "audio/b/1.mp3"} {
		w := client.PutObject(ctx, name)
		gt.NoError(t, w.Close())
	}

	objects := gt.R1(client.ListObjects(ctx, "audio/a/")).NoError(t)
	gt.A(t, objects).Length(2)
	gt.Equal(t, objects[0].CreatedAt, base)

	gt.NoError(t, client.DeleteObject(ctx, "audio/a/1.mp3"))
	// Idempotent delete
	gt.NoError(t, client.DeleteObject(ctx, "audio/a/1.mp3"))

	objects = gt.R1(client.ListObjects(ctx, "audio/a/")).NoError(t)
	gt.A(t, objects).Length(1)
}
