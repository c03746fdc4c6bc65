package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"promocheck/pkg/models"
)

func TestBuildPromptContainsValuesVerbatim(t *testing.T) {
	prompt := BuildPrompt(models.SupportWebBanner, "site web destiné aux cardiologues", "Indications : angine.")

	assert.Contains(t, prompt, "bannière web")
	assert.Contains(t, prompt, "site web destiné aux cardiologues")
	assert.Contains(t, prompt, "Indications : angine.")
}

func TestBuildPromptEmptyDigestPlaceholder(t *testing.T) {
	for _, digest := range []string{"", "   ", "\n"} {
		prompt := BuildPrompt(models.SupportFlyer, "congrès", digest)
		assert.Contains(t, prompt, EmptyDigestPlaceholder)
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	a := BuildPrompt(models.SupportEmail, "newsletter mensuelle", "Posologie : 1/jour.")
	b := BuildPrompt(models.SupportEmail, "newsletter mensuelle", "Posologie : 1/jour.")
	assert.Equal(t, a, b, "prompt construction must be byte-identical for identical inputs")
}

func TestBuildPromptKeepsScoreScale(t *testing.T) {
	prompt := BuildPrompt(models.SupportOther, "test", "")

	// The output contract the model is instructed to honor.
	assert.Contains(t, prompt, "note sur 100")
	assert.Contains(t, prompt, "90 – 100")
	assert.Contains(t, prompt, "75 – 89")
	assert.Contains(t, prompt, "< 75")
}
