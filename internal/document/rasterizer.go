package document

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"promocheck/internal/logger"
)

// Rasterizer renders the first page of a PDF into a PNG image.
type Rasterizer interface {
	FirstPage(ctx context.Context, pdfBytes []byte) ([]byte, error)
}

// PopplerRasterizer implements Rasterizer by shelling out to pdftoppm from
// poppler-utils. Temporary files live in a per-call directory that is removed
// on every exit path.
type PopplerRasterizer struct {
	DPI int
	log zerolog.Logger
}

// NewPopplerRasterizer returns a rasterizer rendering at the given DPI
// (150 when dpi <= 0).
func NewPopplerRasterizer(dpi int) *PopplerRasterizer {
	if dpi <= 0 {
		dpi = 150
	}
	return &PopplerRasterizer{
		DPI: dpi,
		log: logger.WithComponent("rasterizer"),
	}
}

// FirstPage renders page 1 of the given PDF as PNG.
func (r *PopplerRasterizer) FirstPage(ctx context.Context, pdfBytes []byte) ([]byte, error) {
	const op = "FirstPage"

	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, WrapNormalizeError(op, ErrRasterizerUnavailable, err.Error())
	}

	tmpDir, err := os.MkdirTemp("", "promocheck-raster-*")
	if err != nil {
		return nil, WrapNormalizeError(op, err, "failed to create temp dir")
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			r.log.Warn().Err(rmErr).Str("dir", tmpDir).Msg("Failed to remove raster temp dir")
		}
	}()

	inPath := filepath.Join(tmpDir, "in.pdf")
	outPrefix := filepath.Join(tmpDir, "page")
	if err := os.WriteFile(inPath, pdfBytes, 0600); err != nil {
		return nil, WrapNormalizeError(op, err, "failed to write temp pdf")
	}

	cmd := exec.CommandContext(ctx, "pdftoppm",
		"-png",
		"-singlefile",
		"-f", "1",
		"-l", "1",
		"-r", strconv.Itoa(r.DPI),
		inPath,
		outPrefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, WrapNormalizeError(op, ErrUnsupportedFormat, "pdftoppm: "+string(out))
	}

	png, err := os.ReadFile(outPrefix + ".png")
	if err != nil {
		return nil, WrapNormalizeError(op, ErrUnsupportedFormat, "pdftoppm produced no page image")
	}

	r.log.Debug().
		Int("pdf_bytes", len(pdfBytes)).
		Int("png_bytes", len(png)).
		Int("dpi", r.DPI).
		Msg("Rasterized first PDF page")
	return png, nil
}
