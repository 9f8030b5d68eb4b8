package langdetect

import (
	"regexp"
	"strings"

	"github.com/deskline-lab/vaani/pkg/domain/types"
)

// Detect classifies an utterance as Hindi or English. It is a pure function
// and total: any input, including empty or garbage text, resolves to a
// language. Priority order:
//  1. Any Devanagari code point wins for Hindi regardless of surrounding text.
//  2. Text made entirely of ASCII letters, digits, and basic punctuation is
//     English.
//  3. Otherwise romanized-Hindi vs English keyword voting, ties going to the
//     default locale (English).
func Detect(text string) types.Language {
	if containsDevanagari(text) {
		return types.LangHindi
	}

	trimmed := strings.TrimSpace(text)
	if englishWhitelist.MatchString(trimmed) {
		return types.LangEnglish
	}

	hindi, english := countVotes(trimmed)
	if hindi > english {
		return types.LangHindi
	}
	return types.LangDefault
}

// Devanagari block U+0900..U+097F
func containsDevanagari(text string) bool {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}

var englishWhitelist = regexp.MustCompile(`^[A-Za-z0-9\s.,!?'"()@#&:;/-]+$`)

var hindiKeywords = map[string]struct{}{
	"namaste":    {},
	"namaskar":   {},
	"haan":       {},
	"nahi":       {},
	"nahin":      {},
	"kripya":     {},
	"dhanyavad":  {},
	"shukriya":   {},
	"theek":      {},
	"thik":       {},
	"kitna":      {},
	"kitne":      {},
	"chahiye":    {},
	"karna":      {},
	"karwana":    {},
	"mera":       {},
	"meri":       {},
	"mujhe":      {},
	"aap":        {},
	"hai":        {},
	"hain":       {},
	"kya":        {},
	"kab":        {},
	"aaj":        {},
	"kal":        {},
	"parson":     {},
	"samay":      {},
	"keejiye":    {},
	"batao":      {},
	"bataiye":    {},
	"ji":         {},
	"acha":       {},
	"accha":      {},
	"bhaiya":     {},
	"didi":       {},
	"paisa":      {},
	"paise":      {},
	"rupaye":     {},
}

var englishKeywords = map[string]struct{}{
	"hello":     {},
	"hi":        {},
	"hey":       {},
	"please":    {},
	"thanks":    {},
	"thank":     {},
	"yes":       {},
	"no":        {},
	"okay":      {},
	"ok":        {},
	"book":      {},
	"booking":   {},
	"order":     {},
	"track":     {},
	"tracking":  {},
	"price":     {},
	"cost":      {},
	"service":   {},
	"services":  {},
	"want":      {},
	"need":      {},
	"would":     {},
	"like":      {},
	"today":     {},
	"tomorrow":  {},
	"morning":   {},
	"evening":   {},
	"afternoon": {},
	"name":      {},
	"number":    {},
	"what":      {},
	"when":      {},
	"how":       {},
	"much":      {},
	"the":       {},
	"is":        {},
	"my":        {},
	"a":         {},
	"an":        {},
	"i":         {},
}

var wordSplit = regexp.MustCompile(`[^a-zA-Z]+`)

func countVotes(text string) (hindi, english int) {
	for _, w := range wordSplit.Split(strings.ToLower(text), -1) {
		if w == "" {
			continue
		}
		if _, ok := hindiKeywords[w]; ok {
			hindi++
		}
		if _, ok := englishKeywords[w]; ok {
			english++
		}
	}
	return hindi, english
}
