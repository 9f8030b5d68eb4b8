package catalog_test

import (
	"testing"

	"github.com/deskline-lab/vaani/pkg/domain/types"
	"github.com/deskline-lab/vaani/pkg/service/catalog"
	"github.com/m-mizutani/gt"
)

func TestDefaultCatalog(t *testing.T) {
	c := gt.R1(catalog.Default()).NoError(t)

	// Every step maps to a prompt in both languages
	steps := []types.Step{
		types.StepWelcome, types.StepLanguageSelect, types.StepMainMenu,
		types.StepBookingName, types.StepBookingService, types.StepBookingDate,
		types.StepBookingTime, types.StepBookingConfirm,
		types.StepTrackingStart, types.StepTrackingLookup, types.StepCompleted,
	}
	for _, step := range steps {
		gt.S(t, c.ForStep(types.LangEnglish, step)).NotEqual("")
		gt.S(t, c.ForStep(types.LangHindi, step)).NotEqual("")
	}

	gt.S(t, c.Get(types.LangHindi, catalog.KeyNotUnderstood)).NotEqual(
		c.Get(types.LangEnglish, catalog.KeyNotUnderstood))
}

func TestCatalogFallbackToDefaultLanguage(t *testing.T) {
	raw := []byte(`
en:
  welcome: "hello"
hi:
  welcome: "नमस्ते"
`)
	c := gt.R1(catalog.New(raw)).NoError(t)
	// Unknown key resolves through the default language table
	gt.Equal(t, c.Get(types.LangHindi, catalog.KeyWelcome), "नमस्ते")
}

func TestCatalogRejectsIncompleteLanguage(t *testing.T) {
	raw := []byte(`
en:
  welcome: "hello"
  goodbye: "bye"
hi:
  welcome: "नमस्ते"
`)
	_, err := catalog.New(raw)
	gt.Error(t, err)
}

func TestCatalogRejectsUnknownLanguage(t *testing.T) {
	raw := []byte(`
en:
  welcome: "hello"
fr:
  welcome: "bonjour"
`)
	_, err := catalog.New(raw)
	gt.Error(t, err)
}
