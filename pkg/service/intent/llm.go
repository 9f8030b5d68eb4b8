package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/domain/model/errs"
	"github.com/deskline-lab/vaani/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// LLM is the remote resolver backed by a gollem client. It asks the model for
// a JSON verdict over the utterance plus a bounded transcript suffix.
type LLM struct {
	client   gollem.LLMClient
	maxRetry int
}

var _ interfaces.IntentResolver = &LLM{}

func NewLLM(client gollem.LLMClient) *LLM {
	return &LLM{
		client:   client,
		maxRetry: 2,
	}
}

const systemPrompt = `You are the intent classifier of a bilingual (Hindi/English) salon receptionist bot.
Classify the latest customer utterance into exactly one of these intents:
greeting, service_inquiry, pricing_inquiry, booking_start, tracking_start, goodbye, unclear.
Respond with a single JSON object: {"intent": "<label>", "reply": "<short reply suggestion in the customer's language>", "confidence": <0.0-1.0>}.
Output JSON only, no prose.`

func (x *LLM) Resolve(ctx context.Context, query interfaces.IntentQuery) (*interfaces.IntentResult, error) {
	logger := logging.From(ctx)

	ssn, err := x.client.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session", goerr.T(errs.TagLLMError))
	}

	prompt := BuildPrompt(query)

	for i := 0; i < x.maxRetry; i++ {
		resp, err := ssn.GenerateContent(ctx, gollem.Text(prompt))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to generate content", goerr.T(errs.TagLLMError))
		}

		if len(resp.Texts) == 0 || resp.Texts[0] == "" {
			logger.Debug("empty LLM response", "attempt", i+1)
			prompt = "Your previous response was empty. " + prompt
			continue
		}

		result, err := ParseResult(resp.Texts[0])
		if err != nil {
			logger.Debug("invalid LLM response", "text", resp.Texts[0], "error", err)
			prompt = "Your previous response was invalid: " + err.Error() + ". " + prompt
			continue
		}

		return result, nil
	}

	return nil, goerr.New("no valid intent from LLM", goerr.T(errs.TagInvalidLLMResponse))
}

// BuildPrompt renders the utterance and the bounded transcript context into
// the user prompt. Exported for prompt-shape tests.
func BuildPrompt(query interfaces.IntentQuery) string {
	var sb strings.Builder

	if len(query.Context) > 0 {
		sb.WriteString("Recent conversation:\n")
		for _, e := range query.Context {
			fmt.Fprintf(&sb, "%s: %s\n", e.Speaker, e.Text)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Customer language: %s\n", query.Language)
	fmt.Fprintf(&sb, "Customer utterance: %s\n", query.Utterance)

	return sb.String()
}

// ParseResult decodes and validates a model response. Exported for tests.
func ParseResult(text string) (*interfaces.IntentResult, error) {
	var result interfaces.IntentResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &result); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal intent response",
			goerr.T(errs.TagInvalidLLMResponse))
	}

	if !result.Intent.Valid() {
		return nil, goerr.New("unknown intent label",
			goerr.V("intent", result.Intent),
			goerr.T(errs.TagInvalidLLMResponse))
	}

	return &result, nil
}
