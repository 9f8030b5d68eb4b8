package intent

import (
	"context"
	"time"

	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/utils/logging"
)

const defaultTimeout = 5 * time.Second

// Resolver applies the timeout/error policy over the remote resolver: try the
// primary under a deadline and fall back to the rule table on any failure. It
// therefore never fails a turn; the worst case is an "unclear" intent.
type Resolver struct {
	primary  interfaces.IntentResolver
	fallback interfaces.IntentResolver
	timeout  time.Duration
}

var _ interfaces.IntentResolver = &Resolver{}

type Option func(*Resolver)

func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// New builds the two-variant resolver. primary may be nil (no LLM
// configured), in which case the rule table serves every turn.
func New(primary interfaces.IntentResolver, opts ...Option) *Resolver {
	r := &Resolver{
		primary:  primary,
		fallback: NewRuleBased(),
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (x *Resolver) Resolve(ctx context.Context, query interfaces.IntentQuery) (*interfaces.IntentResult, error) {
	if x.primary != nil {
		callCtx, cancel := context.WithTimeout(ctx, x.timeout)
		defer cancel()

		result, err := x.primary.Resolve(callCtx, query)
		if err == nil {
			return result, nil
		}
		logging.From(ctx).Warn("intent resolver degraded to rule-based fallback",
			logging.ErrAttr(err))
	}

	return x.fallback.Resolve(ctx, query)
}
