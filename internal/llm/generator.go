// Package llm wraps the reasoning capability every enrichment stage delegates
// to. The Generator interface keeps the provider swappable; the shipped
// implementation talks to the OpenAI chat completions API.
package llm

import "context"

// ImageAttachment is a raster document page sent alongside a prompt.
type ImageAttachment struct {
	// MIME is the image media type, e.g. "image/png".
	MIME string
	// Data is the raw encoded image.
	Data []byte
}

// Generator is the reasoning capability consumed by the pipeline stages.
type Generator interface {
	// Generate sends a text-only prompt and returns the model's reply.
	Generate(ctx context.Context, prompt string) (string, error)

	// GenerateVision sends a prompt together with a document image and
	// returns the model's reply.
	GenerateVision(ctx context.Context, prompt string, image ImageAttachment) (string, error)
}
