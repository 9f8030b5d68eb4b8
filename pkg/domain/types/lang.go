package types

import "github.com/m-mizutani/goerr/v2"

// Language is a supported locale tag. The engine is bilingual: Hindi
// (Devanagari script) and English, with English as the configured default.
type Language string

const (
	LangHindi   Language = "hi"
	LangEnglish Language = "en"

	LangDefault Language = LangEnglish
)

func (x Language) String() string {
	return string(x)
}

func (x Language) Validate() error {
	switch x {
	case LangHindi, LangEnglish:
		return nil
	}
	return goerr.New("unsupported language", goerr.V("language", string(x)))
}
