package session

import (
	"context"
	"time"

	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/deskline-lab/vaani/pkg/utils/clock"
)

// Entry is one turn half in the transcript: what was said, by whom, in which
// language it was produced or understood.
type Entry struct {
	Timestamp time.Time      `firestore:"timestamp" json:"timestamp"`
	Speaker   types.Speaker  `firestore:"speaker" json:"speaker"`
	Text      string         `firestore:"text" json:"text"`
	Language  types.Language `firestore:"language" json:"language"`
}

// NewEntry creates a transcript entry stamped with the context clock.
func NewEntry(ctx context.Context, speaker types.Speaker, text string, lang types.Language) Entry {
	return Entry{
		Timestamp: clock.Now(ctx),
		Speaker:   speaker,
		Text:      text,
		Language:  lang,
	}
}
