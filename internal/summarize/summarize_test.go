package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"promocheck/internal/llm"
)

type fakeGenerator struct {
	reply      string
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.reply, f.err
}

func (f *fakeGenerator) GenerateVision(_ context.Context, _ string, _ llm.ImageAttachment) (string, error) {
	return "", errors.New("not used")
}

func TestSummarizeProducesDigest(t *testing.T) {
	gen := &fakeGenerator{reply: "Indications : infections ORL."}
	svc := NewService(gen, 0)

	digest, err := svc.Summarize(context.Background(), "RCP AMOXIL : indications, posologie...")
	require.NoError(t, err)
	assert.Equal(t, "Indications : infections ORL.", digest)
	assert.Contains(t, gen.lastPrompt, "RCP AMOXIL")
	assert.Contains(t, gen.lastPrompt, "contre-indications")
}

func TestSummarizeEmptyInputNoCall(t *testing.T) {
	gen := &fakeGenerator{reply: "should not happen"}
	svc := NewService(gen, 0)

	digest, err := svc.Summarize(context.Background(), "  \n ")
	require.NoError(t, err)
	assert.Empty(t, digest)
	assert.Zero(t, gen.calls, "empty reference text must not cost a model call")
}

func TestSummarizeTruncatesToBoundedPrefix(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc := NewService(gen, 100)

	long := strings.Repeat("a", 5000)
	_, err := svc.Summarize(context.Background(), long)
	require.NoError(t, err)

	assert.Contains(t, gen.lastPrompt, strings.Repeat("a", 100))
	assert.NotContains(t, gen.lastPrompt, strings.Repeat("a", 101))
}

func TestSummarizeFailurePropagates(t *testing.T) {
	svc := NewService(&fakeGenerator{err: errors.New("rate limited")}, 0)

	digest, err := svc.Summarize(context.Background(), "texte du RCP")
	require.Error(t, err)
	assert.Empty(t, digest)
}
