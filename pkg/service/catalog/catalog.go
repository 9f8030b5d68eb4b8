package catalog

import (
	_ "embed"

	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

//go:embed messages.yml
var defaultMessages []byte

// Key selects a prompt template. Step-shaped keys ask for the next missing
// slot; the rest are intent replies.
type Key string

const (
	KeyWelcome        Key = "welcome"
	KeyLanguageSelect Key = "language_select"
	KeyMainMenu       Key = "main_menu"
	KeyAskName        Key = "ask_name"
	KeyAskService     Key = "ask_service"
	KeyAskDate        Key = "ask_date"
	KeyAskTime        Key = "ask_time"
	KeyConfirm        Key = "confirm"
	KeyCompleted      Key = "completed"
	KeyAskOrderNumber Key = "ask_order_number"
	KeyOrderFound     Key = "order_found"
	KeyOrderNotFound  Key = "order_not_found"
	KeyServices       Key = "services"
	KeyPricing        Key = "pricing"
	KeyGoodbye        Key = "goodbye"
	KeyNotUnderstood  Key = "not_understood"
)

// Catalog is the bilingual prompt table. It is loaded once at startup and
// read-only afterwards; share one instance across the process.
type Catalog struct {
	messages map[types.Language]map[Key]string
}

// New parses a YAML message table. Both supported languages must be present
// and every key defined for the default language must exist for the other.
func New(raw []byte) (*Catalog, error) {
	var doc map[string]map[string]string
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse message catalog")
	}

	messages := make(map[types.Language]map[Key]string, len(doc))
	for langTag, entries := range doc {
		lang := types.Language(langTag)
		if err := lang.Validate(); err != nil {
			return nil, goerr.Wrap(err, "unknown language in message catalog")
		}
		table := make(map[Key]string, len(entries))
		for k, v := range entries {
			table[Key(k)] = v
		}
		messages[lang] = table
	}

	base, ok := messages[types.LangDefault]
	if !ok {
		return nil, goerr.New("message catalog is missing default language",
			goerr.V("language", types.LangDefault))
	}
	for lang, table := range messages {
		for k := range base {
			if _, ok := table[k]; !ok {
				return nil, goerr.New("message catalog key missing for language",
					goerr.V("language", lang), goerr.V("key", k))
			}
		}
	}

	return &Catalog{messages: messages}, nil
}

// Default loads the embedded bilingual table.
func Default() (*Catalog, error) {
	return New(defaultMessages)
}

// Get returns the template for (language, key), falling back to the default
// locale when the language has no entry.
func (c *Catalog) Get(lang types.Language, key Key) string {
	if table, ok := c.messages[lang]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	return c.messages[types.LangDefault][key]
}

// ForStep maps a dialog step to the prompt asking for whatever that step
// still needs.
func (c *Catalog) ForStep(lang types.Language, step types.Step) string {
	return c.Get(lang, stepKeys[step])
}

var stepKeys = map[types.Step]Key{
	types.StepWelcome:        KeyWelcome,
	types.StepLanguageSelect: KeyLanguageSelect,
	types.StepMainMenu:       KeyMainMenu,
	types.StepBookingName:    KeyAskName,
	types.StepBookingService: KeyAskService,
	types.StepBookingDate:    KeyAskDate,
	types.StepBookingTime:    KeyAskTime,
	types.StepBookingConfirm: KeyConfirm,
	types.StepTrackingStart:  KeyAskOrderNumber,
	types.StepTrackingLookup: KeyOrderFound,
	types.StepCompleted:      KeyCompleted,
}
