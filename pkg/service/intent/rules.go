package intent

import (
	"context"
	"strings"

	"github.com/deskline-lab/vaani/pkg/domain/interfaces"
	"github.com/deskline-lab/vaani/pkg/domain/types"
)

// RuleBased is the local fallback resolver: a fixed keyword table matched
// case-insensitively against the utterance. It always produces some intent,
// bottoming out at "unclear", and never returns an error.
type RuleBased struct{}

var _ interfaces.IntentResolver = &RuleBased{}

func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

// ruleTable is ordered: more specific intents are checked before greetings so
// "hello, I want to book" resolves to booking.
var ruleTable = []struct {
	intent   types.Intent
	keywords []string
}{
	{types.IntentTrackingStart, []string{
		"track", "order status", "my order", "where is my order",
		"ऑर्डर", "ट्रैक", "order kahan",
	}},
	{types.IntentBookingStart, []string{
		"book", "appointment", "reservation", "slot",
		"बुक", "अपॉइंटमेंट", "समय चाहिए", "booking karni", "karwana",
	}},
	{types.IntentPricingInquiry, []string{
		"price", "cost", "how much", "charge", "rate",
		"कीमत", "कितना", "कितने", "दाम", "kitna",
	}},
	{types.IntentServiceInquiry, []string{
		"service", "services", "what do you offer", "what do you do",
		"सेवा", "सेवाएं", "क्या करते", "kya karte",
	}},
	{types.IntentGoodbye, []string{
		"bye", "goodbye", "see you", "that's all", "nothing else",
		"अलविदा", "धन्यवाद", "फिर मिलेंगे", "dhanyavad", "shukriya",
	}},
	{types.IntentGreeting, []string{
		"hello", "hi ", "hey", "good morning", "good evening",
		"नमस्ते", "नमस्कार", "namaste", "namaskar",
	}},
}

func (x *RuleBased) Resolve(ctx context.Context, query interfaces.IntentQuery) (*interfaces.IntentResult, error) {
	lowered := " " + strings.ToLower(strings.TrimSpace(query.Utterance)) + " "

	for _, rule := range ruleTable {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return &interfaces.IntentResult{
					Intent:     rule.intent,
					Confidence: 0.5,
				}, nil
			}
		}
	}

	return &interfaces.IntentResult{
		Intent:     types.IntentUnclear,
		Confidence: 0,
	}, nil
}
