// Package document turns an arbitrary uploaded artifact (raster image or PDF)
// into the canonical form the rest of the pipeline works on: a single-page
// PNG preview plus a single well-formed PDF submission file.
package document

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/rs/zerolog"
	"promocheck/internal/logger"
	"promocheck/pkg/models"
)

// Normalizer converts uploaded artifacts into canonical documents.
type Normalizer struct {
	rasterizer Rasterizer
	log        zerolog.Logger
}

// NewNormalizer creates a normalizer using the given PDF rasterizer.
func NewNormalizer(rasterizer Rasterizer) *Normalizer {
	return &Normalizer{
		rasterizer: rasterizer,
		log:        logger.WithComponent("normalizer"),
	}
}

// Normalize converts the artifact. For PDFs the original bytes are kept
// intact as the submission file and page 1 becomes the preview. For images
// the decoded picture becomes the preview and is wrapped, RGB-normalized,
// into a one-page PDF.
//
// Any decoding failure is fatal for the run (ErrUnsupportedFormat).
func (n *Normalizer) Normalize(ctx context.Context, artifact models.UploadedArtifact) (*models.CanonicalDocument, error) {
	const op = "Normalize"

	if len(artifact.Data) == 0 {
		return nil, WrapNormalizeError(op, ErrEmptyArtifact, artifact.Name)
	}

	var doc *models.CanonicalDocument
	var err error
	switch artifact.Kind {
	case models.MediaPDF:
		doc, err = n.normalizePDF(ctx, artifact.Data)
	case models.MediaImage:
		doc, err = n.normalizeImage(artifact.Data)
	default:
		return nil, WrapNormalizeError(op, ErrUnsupportedFormat, "unknown media kind: "+string(artifact.Kind))
	}
	if err != nil {
		return nil, err
	}

	n.log.Info().
		Str("name", artifact.Name).
		Str("kind", string(artifact.Kind)).
		Int("pages", doc.PageCount).
		Int("preview_bytes", len(doc.Preview)).
		Int("submission_bytes", len(doc.Submission)).
		Msg("Artifact normalized")
	return doc, nil
}

func (n *Normalizer) normalizePDF(ctx context.Context, data []byte) (*models.CanonicalDocument, error) {
	const op = "normalizePDF"

	rs := bytes.NewReader(data)
	if err := api.Validate(rs, nil); err != nil {
		return nil, WrapNormalizeError(op, ErrUnsupportedFormat, "pdf validation: "+err.Error())
	}

	rs = bytes.NewReader(data)
	pageCount, err := api.PageCount(rs, nil)
	if err != nil {
		return nil, WrapNormalizeError(op, ErrUnsupportedFormat, "pdf page count: "+err.Error())
	}

	preview, err := n.rasterizer.FirstPage(ctx, data)
	if err != nil {
		return nil, WrapNormalizeError(op, err, "first page rasterization")
	}

	return &models.CanonicalDocument{
		Preview:    preview,
		Submission: data,
		PageCount:  pageCount,
	}, nil
}

func (n *Normalizer) normalizeImage(data []byte) (*models.CanonicalDocument, error) {
	const op = "normalizeImage"

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, WrapNormalizeError(op, ErrUnsupportedFormat, "image decode: "+err.Error())
	}

	// PDF image wrapping rejects non-RGB pixel modes, so redraw onto an
	// RGBA canvas before re-encoding.
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	var previewBuf bytes.Buffer
	if err := png.Encode(&previewBuf, rgba); err != nil {
		return nil, WrapNormalizeError(op, err, "png encode")
	}

	var pdfBuf bytes.Buffer
	imp := pdfcpu.DefaultImportConfig()
	if err := api.ImportImages(nil, &pdfBuf, []io.Reader{bytes.NewReader(previewBuf.Bytes())}, imp, nil); err != nil {
		return nil, WrapNormalizeError(op, err, "image to pdf wrap")
	}

	n.log.Debug().
		Str("format", format).
		Int("width", bounds.Dx()).
		Int("height", bounds.Dy()).
		Msg("Image decoded and wrapped")

	return &models.CanonicalDocument{
		Preview:    previewBuf.Bytes(),
		Submission: pdfBuf.Bytes(),
		PageCount:  1,
	}, nil
}
