// Package textextract pulls plain text out of promotional images (optical
// recognition) and out of retrieved reference PDFs (embedded text).
//
// Every extractor in this package is best-effort by contract: OCR quality is
// inherently variable, so callers must tolerate empty text and degrade rather
// than abort. The orchestrator translates any error returned here into an
// empty result plus a recorded stage warning.
package textextract

import "context"

// ImageExtractor runs optical character recognition over a single raster image.
type ImageExtractor interface {
	// ExtractFromImage returns the text visible in the encoded image.
	ExtractFromImage(ctx context.Context, imageBytes []byte) (string, error)
}

// DocumentExtractor pulls machine-readable embedded text out of a PDF.
type DocumentExtractor interface {
	// ExtractFromDocument returns the embedded text of the document bytes.
	ExtractFromDocument(ctx context.Context, pdfBytes []byte) (string, error)
}

// UnavailableImageExtractor stands in when no OCR engine could be set up
// (e.g. missing credentials). Every call fails with the recorded reason, so
// the pipeline degrades to empty text instead of refusing to start.
type UnavailableImageExtractor struct {
	Reason error
}

// NewUnavailableImageExtractor records why the engine is unavailable.
func NewUnavailableImageExtractor(reason error) *UnavailableImageExtractor {
	return &UnavailableImageExtractor{Reason: reason}
}

// ExtractFromImage always fails with the recorded reason.
func (u *UnavailableImageExtractor) ExtractFromImage(context.Context, []byte) (string, error) {
	return "", WrapExtractionError("ExtractFromImage", ErrEngineUnavailable, u.Reason.Error())
}
