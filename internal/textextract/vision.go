package textextract

import (
	"context"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	"promocheck/internal/logger"
)

// MaxImageSizeBytes is the maximum image size accepted for synchronous
// annotation (20MB, Vision API limit).
const MaxImageSizeBytes = 20 * 1024 * 1024

// GoogleVisionExtractor implements ImageExtractor using the Google Cloud
// Vision document text detection feature.
type GoogleVisionExtractor struct {
	client *vision.ImageAnnotatorClient
	log    zerolog.Logger
}

// NewGoogleVisionExtractor creates an extractor with credentials from the
// environment. It expects either GOOGLE_APPLICATION_CREDENTIALS path or
// GOOGLE_CREDENTIALS JSON in env, falling back to application default
// credentials.
func NewGoogleVisionExtractor(ctx context.Context) (*GoogleVisionExtractor, error) {
	const op = "NewGoogleVisionExtractor"

	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapExtractionError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapExtractionError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapExtractionError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return NewGoogleVisionExtractorWithClient(client), nil
}

// NewGoogleVisionExtractorWithClient creates an extractor with an explicit
// client (for testing).
func NewGoogleVisionExtractorWithClient(client *vision.ImageAnnotatorClient) *GoogleVisionExtractor {
	return &GoogleVisionExtractor{
		client: client,
		log:    logger.WithComponent("ocr"),
	}
}

// ExtractFromImage runs document text detection over a single encoded image.
func (g *GoogleVisionExtractor) ExtractFromImage(ctx context.Context, imageBytes []byte) (string, error) {
	const op = "ExtractFromImage"

	if len(imageBytes) == 0 {
		return "", WrapExtractionError(op, ErrExtractionFailed, "empty image")
	}
	if len(imageBytes) > MaxImageSizeBytes {
		return "", WrapExtractionError(op, ErrExtractionFailed, "image exceeds 20MB annotation limit")
	}

	annotation, err := g.client.DetectDocumentText(ctx, &visionpb.Image{Content: imageBytes}, nil)
	if err != nil {
		return "", WrapExtractionError(op, ErrExtractionFailed, "Vision API call failed: "+err.Error())
	}
	if annotation == nil || strings.TrimSpace(annotation.GetText()) == "" {
		return "", WrapExtractionError(op, ErrNoText, "")
	}

	text := annotation.GetText()
	g.log.Debug().
		Int("image_bytes", len(imageBytes)).
		Int("text_length", len(text)).
		Msg("Document text detected")
	return text, nil
}

// Close closes the underlying Vision client.
func (g *GoogleVisionExtractor) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
