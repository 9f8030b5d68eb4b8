package langdetect_test

import (
	"testing"

	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/deskline-lab/vaani/pkg/service/langdetect"
	"github.com/m-mizutani/gt"
)

func TestDetect(t *testing.T) {
	testCases := []struct {
		name     string
		text     string
		expected types.Language
	}{
		{
			name:     "pure hindi",
			text:     "मुझे अपॉइंटमेंट चाहिए",
			expected: types.LangHindi,
		},
		{
			name:     "devanagari wins over surrounding english",
			text:     "hello मेरा नाम Ramesh है thank you very much",
			expected: types.LangHindi,
		},
		{
			name:     "single devanagari code point",
			text:     "ok ह",
			expected: types.LangHindi,
		},
		{
			name:     "plain english",
			text:     "I want to book a haircut tomorrow",
			expected: types.LangEnglish,
		},
		{
			name:     "english with punctuation and digits",
			text:     "My number is 9876543210, call me!",
			expected: types.LangEnglish,
		},
		{
			name:     "romanized hindi beats english votes",
			text:     "namaste bhaiya mujhe booking karni hai £",
			expected: types.LangHindi,
		},
		{
			name:     "non-ascii english falls back to voting",
			text:     "hello there… what is the price €",
			expected: types.LangEnglish,
		},
		{
			name:     "empty string",
			text:     "",
			expected: types.LangDefault,
		},
		{
			name:     "whitespace only",
			text:     "   ",
			expected: types.LangDefault,
		},
		{
			name:     "zero votes tie breaks to default",
			text:     "……",
			expected: types.LangEnglish,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, langdetect.Detect(tc.text), tc.expected)
		})
	}
}

func TestDetectDeterministic(t *testing.T) {
	inputs := []string{"", "   ", "namaste", "hello", "मेरा नंबर"}
	for _, in := range inputs {
		first := langdetect.Detect(in)
		for i := 0; i < 3; i++ {
			gt.Equal(t, langdetect.Detect(in), first)
		}
	}
}
