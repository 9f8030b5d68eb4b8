package extract

import "strings"

// serviceVocab maps each known service to the phrases customers actually say,
// including Hindi script and romanized forms. Matched case-insensitively as
// substrings; first hit in declaration order wins.
var serviceVocab = []struct {
	canonical string
	phrases   []string
}{
	{"haircut", []string{"haircut", "hair cut", "हेयरकट", "बाल कटवाने", "बाल कटाने", "baal katwane"}},
	{"hair spa", []string{"hair spa", "हेयर स्पा"}},
	{"facial", []string{"facial", "फेशियल"}},
	{"manicure", []string{"manicure", "मैनीक्योर"}},
	{"pedicure", []string{"pedicure", "पेडीक्योर"}},
	{"massage", []string{"massage", "मसाज", "मालिश"}},
	{"waxing", []string{"waxing", "वैक्सिंग"}},
	{"threading", []string{"threading", "थ्रेडिंग"}},
}

func extractService(text string) string {
	lowered := strings.ToLower(text)
	for _, svc := range serviceVocab {
		for _, phrase := range svc.phrases {
			if strings.Contains(lowered, phrase) {
				return svc.canonical
			}
		}
	}
	return ""
}
