package usecase

import (
	"time"

	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/service/catalog"
	"github.com/deskline-lab/vaani/pkg/service/intent"
	"github.com/deskline-lab/vaani/pkg/service/sessionstore"
	storageService "github.com/deskline-lab/vaani/pkg/service/storage"
)

const (
	// defaultContextWindow bounds the transcript suffix passed to the intent
	// resolver so external payloads do not grow with session length.
	defaultContextWindow = 8

	defaultIdleThreshold     = 15 * time.Minute
	defaultArtifactRetention = 24 * time.Hour
)

// UseCases wires the dialog engine: session store, intent resolution,
// message catalog, and artifact storage.
type UseCases struct {
	store    *sessionstore.Store
	resolver interfaces.IntentResolver
	catalog  *catalog.Catalog
	storage  *storageService.Service

	contextWindow     int
	idleThreshold     time.Duration
	artifactRetention time.Duration
}

type Option func(*UseCases)

func WithResolver(resolver interfaces.IntentResolver) Option {
	return func(u *UseCases) {
		u.resolver = resolver
	}
}

func WithStorageService(svc *storageService.Service) Option {
	return func(u *UseCases) {
		u.storage = svc
	}
}

func WithContextWindow(n int) Option {
	return func(u *UseCases) {
		u.contextWindow = n
	}
}

func WithIdleThreshold(d time.Duration) Option {
	return func(u *UseCases) {
		u.idleThreshold = d
	}
}

func WithArtifactRetention(d time.Duration) Option {
	return func(u *UseCases) {
		u.artifactRetention = d
	}
}

func New(store *sessionstore.Store, cat *catalog.Catalog, opts ...Option) *UseCases {
	uc := &UseCases{
		store:             store,
		resolver:          intent.New(nil),
		catalog:           cat,
		contextWindow:     defaultContextWindow,
		idleThreshold:     defaultIdleThreshold,
		artifactRetention: defaultArtifactRetention,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}
