package intent_test

import (
	"context"
	"testing"
	"time"

	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/deskline-lab/vaani/pkg/service/intent"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestRuleBased(t *testing.T) {
	ctx := context.Background()
	r := intent.NewRuleBased()

	testCases := []struct {
		name      string
		utterance string
		expected  types.Intent
	}{
		{"greeting", "hello there", types.IntentGreeting},
		{"hindi greeting", "नमस्ते जी", types.IntentGreeting},
		{"services", "what services do you offer", types.IntentServiceInquiry},
		{"pricing", "how much is a facial", types.IntentPricingInquiry},
		{"booking", "I want to book an appointment", types.IntentBookingStart},
		{"hindi booking", "मुझे अपॉइंटमेंट चाहिए", types.IntentBookingStart},
		{"tracking", "where is my order", types.IntentTrackingStart},
		{"goodbye", "ok bye", types.IntentGoodbye},
		{"unclear", "the weather is nice", types.IntentUnclear},
		{"empty", "", types.IntentUnclear},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := gt.R1(r.Resolve(ctx, interfaces.IntentQuery{Utterance: tc.utterance})).NoError(t)
			gt.Equal(t, result.Intent, tc.expected)
		})
	}
}

func TestRuleBasedPrecedence(t *testing.T) {
	ctx := context.Background()
	r := intent.NewRuleBased()

	// Booking outranks the greeting keyword in the same utterance
	result := gt.R1(r.Resolve(ctx, interfaces.IntentQuery{
		Utterance: "hello, I want to book a haircut",
	})).NoError(t)
	gt.Equal(t, result.Intent, types.IntentBookingStart)
}

type stubResolver struct {
	result *interfaces.IntentResult
	err    error
	delay  time.Duration
}

func (x *stubResolver) Resolve(ctx context.Context, query interfaces.IntentQuery) (*interfaces.IntentResult, error) {
	if x.delay > 0 {
		select {
		case <-time.After(x.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return x.result, x.err
}

func TestResolverPrimarySuccess(t *testing.T) {
	primary := &stubResolver{
		result: &interfaces.IntentResult{Intent: types.IntentPricingInquiry, Confidence: 0.9},
	}
	r := intent.New(primary)

	result := gt.R1(r.Resolve(context.Background(), interfaces.IntentQuery{
		Utterance: "how much for a haircut",
	})).NoError(t)
	gt.Equal(t, result.Intent, types.IntentPricingInquiry)
	gt.Equal(t, result.Confidence, 0.9)
}

func TestResolverFallsBackOnError(t *testing.T) {
	primary := &stubResolver{err: goerr.New("backend down")}
	r := intent.New(primary)

	result := gt.R1(r.Resolve(context.Background(), interfaces.IntentQuery{
		Utterance: "what services do you offer",
	})).NoError(t)
	gt.Equal(t, result.Intent, types.IntentServiceInquiry)
}

func TestResolverFallsBackOnTimeout(t *testing.T) {
	primary := &stubResolver{
		result: &interfaces.IntentResult{Intent: types.IntentGreeting},
		delay:  time.Second,
	}
	r := intent.New(primary, intent.WithTimeout(10*time.Millisecond))

	result := gt.R1(r.Resolve(context.Background(), interfaces.IntentQuery{
		Utterance: "what services do you offer",
	})).NoError(t)
	gt.Equal(t, result.Intent, types.IntentServiceInquiry)
}

func TestResolverWithoutPrimary(t *testing.T) {
	r := intent.New(nil)

	result := gt.R1(r.Resolve(context.Background(), interfaces.IntentQuery{
		Utterance: "track my order please",
	})).NoError(t)
	gt.Equal(t, result.Intent, types.IntentTrackingStart)
}

func TestBuildPrompt(t *testing.T) {
	query := interfaces.IntentQuery{
		Utterance: "book me for tomorrow",
		Language:  types.LangEnglish,
		Context: []session.Entry{
			{Speaker: types.SpeakerUser, Text: "hello"},
			{Speaker: types.SpeakerAssistant, Text: "Welcome!"},
		},
	}

	prompt := intent.BuildPrompt(query)
	gt.S(t, prompt).Contains("user: hello")
	gt.S(t, prompt).Contains("assistant: Welcome!")
	gt.S(t, prompt).Contains("Customer utterance: book me for tomorrow")
	gt.S(t, prompt).Contains("Customer language: en")
}

func TestParseResult(t *testing.T) {
	result := gt.R1(intent.ParseResult(`{"intent": "booking_start", "reply": "Sure!", "confidence": 0.95}`)).NoError(t)
	gt.Equal(t, result.Intent, types.IntentBookingStart)
	gt.Equal(t, result.Reply, "Sure!")

	_, err := intent.ParseResult(`{"intent": "make_coffee"}`)
	gt.Error(t, err)

	_, err = intent.ParseResult(`not json at all`)
	gt.Error(t, err)
}
