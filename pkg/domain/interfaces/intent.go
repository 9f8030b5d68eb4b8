package interfaces

import (
	"context"

	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/domain/types"
)

// IntentQuery is the input to intent resolution: the utterance, the detected
// language, and a bounded suffix of the transcript as context.
type IntentQuery struct {
	Utterance string
	Language  types.Language
	Context   []session.Entry
}

// IntentResult is the resolver output. Reply is an optional free-text reply
// suggestion; the dialog engine may ignore it in favor of catalog templates.
type IntentResult struct {
	Intent     types.Intent `json:"intent"`
	Reply      string       `json:"reply"`
	Confidence float64      `json:"confidence"`
}

// IntentResolver maps an utterance to an intent. Two implementations exist:
// the remote LLM-backed resolver and the local rule-based fallback. The
// fallback never returns an error.
type IntentResolver interface {
	Resolve(ctx context.Context, query IntentQuery) (*IntentResult, error)
}
