package textextract

import (
	"bytes"
	"context"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
	"promocheck/internal/logger"
)

// EmbeddedExtractor implements DocumentExtractor by reading the text layer
// of a PDF directly, without any OCR engine.
type EmbeddedExtractor struct {
	log zerolog.Logger
}

// NewEmbeddedExtractor returns a DocumentExtractor for machine-readable PDFs.
func NewEmbeddedExtractor() *EmbeddedExtractor {
	return &EmbeddedExtractor{log: logger.WithComponent("embedded-text")}
}

// ExtractFromDocument concatenates the plain text of every page. Pages whose
// text layer fails to parse are skipped; the result is whatever could be read.
func (e *EmbeddedExtractor) ExtractFromDocument(ctx context.Context, pdfBytes []byte) (string, error) {
	const op = "ExtractFromDocument"

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return "", WrapExtractionError(op, ErrExtractionFailed, "opening PDF: "+err.Error())
	}

	var sb strings.Builder
	skipped := 0
	totalPages := reader.NumPage()
	for i := 1; i <= totalPages; i++ {
		if ctx.Err() != nil {
			return "", WrapExtractionError(op, ctx.Err(), "")
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			skipped++
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			skipped++
			continue
		}

		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(text)
	}

	result := sb.String()
	if strings.TrimSpace(result) == "" {
		return "", WrapExtractionError(op, ErrNoText, "")
	}

	e.log.Debug().
		Int("pages", totalPages).
		Int("skipped", skipped).
		Int("text_length", len(result)).
		Msg("Embedded text extracted")
	return result, nil
}
