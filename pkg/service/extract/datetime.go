package extract

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/deskline-lab/vaani/pkg/utils/clock"
)

// Extracted dates normalize to this layout so downstream comparison and
// storage are locale independent.
const dateLayout = "2006-01-02"

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"रविवार":    time.Sunday,
	"सोमवार":    time.Monday,
	"मंगलवार":   time.Tuesday,
	"बुधवार":    time.Wednesday,
	"गुरुवार":   time.Thursday,
	"शुक्रवार":  time.Friday,
	"शनिवार":    time.Saturday,
}

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

var (
	numericDatePattern = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?\b`)
	monthDatePattern   = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\b`)
	weekdayPattern     = regexp.MustCompile(`(?i)\b(?:next\s+|agle\s+|अगले\s+)?(sunday|monday|tuesday|wednesday|thursday|friday|saturday|रविवार|सोमवार|मंगलवार|बुधवार|गुरुवार|शुक्रवार|शनिवार)\b`)
)

// extractDate resolves absolute and relative date phrases against the context
// clock. Hindi "कल" reads as tomorrow; in a booking conversation the future
// reading is the useful one.
func extractDate(ctx context.Context, text string) string {
	now := clock.Now(ctx)
	lowered := strings.ToLower(text)

	// Relative phrases first; order matters since "tomorrow" is a substring
	// of "day after tomorrow".
	switch {
	case strings.Contains(lowered, "day after tomorrow"), strings.Contains(text, "परसों"), strings.Contains(lowered, "parson"):
		return now.AddDate(0, 0, 2).Format(dateLayout)
	case strings.Contains(lowered, "tomorrow"), strings.Contains(text, "कल"):
		return now.AddDate(0, 0, 1).Format(dateLayout)
	case strings.Contains(lowered, "today"), strings.Contains(lowered, "tonight"), strings.Contains(text, "आज"):
		return now.Format(dateLayout)
	}

	if m := weekdayPattern.FindStringSubmatch(text); m != nil {
		target := weekdays[strings.ToLower(m[1])]
		days := int(target-now.Weekday()+7) % 7
		if days == 0 {
			days = 7
		}
		return now.AddDate(0, 0, days).Format(dateLayout)
	}

	if m := monthDatePattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := months[strings.ToLower(m[2])]
		if d, ok := buildDate(now, now.Year(), int(month), day); ok {
			return d
		}
	}

	if m := numericDatePattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := now.Year()
		if m[3] != "" {
			y, _ := strconv.Atoi(m[3])
			if y < 100 {
				y += 2000
			}
			year = y
		}
		if d, ok := buildDate(now, year, month, day); ok {
			return d
		}
	}

	return ""
}

// buildDate validates the components and rolls a current-year date that has
// already passed into next year.
func buildDate(now time.Time, year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	if d.Day() != day {
		return "", false
	}
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if year == now.Year() && d.Before(startOfDay) {
		d = d.AddDate(1, 0, 0)
	}
	return d.Format(dateLayout), true
}

var clockTimePattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm|a\.m\.|p\.m\.|baje|बजे)`)

var dayParts = []struct {
	canonical string
	phrases   []string
}{
	{"morning", []string{"morning", "सुबह", "subah"}},
	{"afternoon", []string{"afternoon", "दोपहर", "dopahar"}},
	{"evening", []string{"evening", "शाम", "shaam", "sham"}},
}

// extractTime returns either a normalized clock time ("15:30") or a canonical
// day part ("morning"). Bare "5 baje" defaults to the working-hours reading.
func extractTime(text string) string {
	if m := clockTimePattern.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour > 23 || minute > 59 {
			return ""
		}

		meridian := strings.ToLower(strings.ReplaceAll(m[3], ".", ""))
		switch meridian {
		case "pm":
			if hour < 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		default:
			// "baje" carries no meridian; map small hours into the salon's
			// afternoon working window.
			if hour >= 1 && hour <= 8 {
				hour += 12
			}
		}
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}

	lowered := strings.ToLower(text)
	for _, part := range dayParts {
		for _, phrase := range part.phrases {
			if strings.Contains(lowered, phrase) {
				return part.canonical
			}
		}
	}
	return ""
}
