package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/deskline-lab/vaani/pkg/domain/model/session"
	"github.com/deskline-lab/vaani/pkg/domain/types"
)

// Extract pulls structured booking fields out of a free-form utterance. It is
// best-effort and total: speech-to-text artifacts, filler words, truncated
// sentences, and empty input all degrade to an empty or partial result, never
// an error. Confidence is binary; a field is either matched by a pattern or
// left empty.
func Extract(ctx context.Context, utterance string, lang types.Language) session.Slots {
	var slots session.Slots

	text := strings.TrimSpace(utterance)
	if text == "" {
		return slots
	}

	slots.OrderNumber = extractOrderNumber(text)
	slots.ContactNumber = extractContactNumber(text, slots.OrderNumber)
	slots.Email = extractEmail(text)
	slots.Name = extractName(text)
	slots.ServiceName = extractService(text)
	slots.PreferredDate = extractDate(ctx, text)
	slots.PreferredTime = extractTime(text)

	return slots
}

var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bmy name is ([A-Za-z]+(?: [A-Z][a-z]+)?)`),
	regexp.MustCompile(`(?i)\bthis is ([A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)\bi am ([A-Z][a-z]+)\b`),
	regexp.MustCompile(`(?i)\bnaam ([A-Za-z]+) hai\b`),
	regexp.MustCompile(`मेरा नाम (.+?) है`),
	regexp.MustCompile(`नाम (\S+) है`),
}

// The patterns are case-insensitive because speech-to-text output is often
// lowercased, so the weak anchors ("this is", "i am") need a stop list to
// reject fillers they would otherwise capture as a name.
var nameStopWords = map[string]bool{
	"fine": true, "good": true, "okay": true, "ok": true, "bad": true,
	"here": true, "done": true, "sorry": true, "sure": true, "busy": true,
	"late": true, "ready": true, "not": true, "new": true,
	"looking": true, "calling": true, "interested": true, "waiting": true,
}

func extractName(text string) string {
	for _, re := range namePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			name := strings.TrimSpace(m[1])
			if nameStopWords[strings.ToLower(name)] {
				continue
			}
			return name
		}
	}
	return ""
}

// A contiguous 10-digit run. Guarded on both sides so longer digit runs
// (order IDs, 12-digit Aadhaar-style numbers) do not yield a phone number.
var contactPattern = regexp.MustCompile(`(?:^|[^0-9])([0-9]{10})(?:[^0-9]|$)`)

func extractContactNumber(text, orderNumber string) string {
	for _, m := range contactPattern.FindAllStringSubmatch(text, -1) {
		if m[1] != orderNumber {
			return m[1]
		}
	}
	return ""
}

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

func extractEmail(text string) string {
	return emailPattern.FindString(text)
}

// Order numbers need an explicit anchor ("order", "tracking", "ऑर्डर") so a
// bare phone number is not mistaken for one.
var orderPattern = regexp.MustCompile(`(?i)(?:order|tracking|ऑर्डर)\s*(?:no\.?|number|id|नंबर|#)?\s*:?\s*#?([A-Za-z]{0,4}-?[0-9]{4,12})`)

func extractOrderNumber(text string) string {
	if m := orderPattern.FindStringSubmatch(text); m != nil {
		return strings.ToUpper(m[1])
	}
	return ""
}
