package storage

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/utils/clock"
	"github.com/m-mizutani/goerr/v2"
)

// MemoryClient is the in-memory artifact store for development and tests.
type MemoryClient struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data      []byte
	createdAt time.Time
}

var _ interfaces.StorageClient = &MemoryClient{}

func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		objects: make(map[string]memoryObject),
	}
}

func (m *MemoryClient) PutObject(ctx context.Context, object string) io.WriteCloser {
	return &memoryWriter{
		client:    m,
		object:    object,
		buffer:    &bytes.Buffer{},
		createdAt: clock.Now(ctx),
	}
}

func (m *MemoryClient) GetObject(ctx context.Context, object string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, exists := m.objects[object]
	if !exists {
		return nil, goerr.New("object not found", goerr.V("object", object))
	}

	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

// DeleteObject is idempotent: deleting a missing object is a no-op.
func (m *MemoryClient) DeleteObject(ctx context.Context, object string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, object)
	return nil
}

func (m *MemoryClient) ListObjects(ctx context.Context, prefix string) ([]interfaces.ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var objects []interfaces.ObjectInfo
	for name, obj := range m.objects {
		if strings.HasPrefix(name, prefix) {
			objects = append(objects, interfaces.ObjectInfo{
				Name:      name,
				CreatedAt: obj.createdAt,
			})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Name < objects[j].Name })

	return objects, nil
}

func (m *MemoryClient) Close(ctx context.Context) {}

type memoryWriter struct {
	client    *MemoryClient
	object    string
	buffer    *bytes.Buffer
	createdAt time.Time
	closed    bool
	mu        sync.Mutex
}

func (w *memoryWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return 0, goerr.New("writer is closed")
	}

	return w.buffer.Write(p)
}

func (w *memoryWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}

	w.client.mu.Lock()
	defer w.client.mu.Unlock()

	w.client.objects[w.object] = memoryObject{
		data:      w.buffer.Bytes(),
		createdAt: w.createdAt,
	}
	w.closed = true

	return nil
}
