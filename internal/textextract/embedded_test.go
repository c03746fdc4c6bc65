package textextract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedExtractorRejectsGarbage(t *testing.T) {
	e := NewEmbeddedExtractor()

	text, err := e.ExtractFromDocument(context.Background(), []byte("not a pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtractionFailed)
	assert.Empty(t, text)
}

func TestEmbeddedExtractorRejectsEmpty(t *testing.T) {
	e := NewEmbeddedExtractor()

	_, err := e.ExtractFromDocument(context.Background(), nil)
	require.Error(t, err)
}

func TestUnavailableImageExtractorAlwaysFails(t *testing.T) {
	u := NewUnavailableImageExtractor(ErrMissingCredentials)

	text, err := u.ExtractFromImage(context.Background(), []byte("png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEngineUnavailable)
	assert.Empty(t, text)
}
