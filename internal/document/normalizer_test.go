package document

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"promocheck/pkg/models"
)

type fakeRasterizer struct {
	png   []byte
	err   error
	calls int
}

func (f *fakeRasterizer) FirstPage(_ context.Context, _ []byte) ([]byte, error) {
	f.calls++
	return f.png, f.err
}

// testPNG encodes a small grayscale image, deliberately not RGB, to exercise
// the color-space normalization path.
func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 12, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(20 * x)})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizeImageWrapsSinglePagePDF(t *testing.T) {
	n := NewNormalizer(&fakeRasterizer{})

	doc, err := n.Normalize(context.Background(), models.UploadedArtifact{
		Name: "banner.png",
		Kind: models.MediaImage,
		Data: testPNG(t),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, doc.Preview)
	require.NotEmpty(t, doc.Submission)
	assert.True(t, bytes.HasPrefix(doc.Submission, []byte("%PDF")), "submission must be a well-formed PDF")
	assert.Equal(t, 1, doc.PageCount)
}

func TestNormalizePDFKeepsOriginalBytes(t *testing.T) {
	// Build a valid one-page PDF by wrapping an image first.
	n := NewNormalizer(&fakeRasterizer{})
	wrapped, err := n.Normalize(context.Background(), models.UploadedArtifact{
		Name: "seed.png",
		Kind: models.MediaImage,
		Data: testPNG(t),
	})
	require.NoError(t, err)

	raster := &fakeRasterizer{png: []byte("fake-page-1-png")}
	n = NewNormalizer(raster)
	doc, err := n.Normalize(context.Background(), models.UploadedArtifact{
		Name: "doc.pdf",
		Kind: models.MediaPDF,
		Data: wrapped.Submission,
	})
	require.NoError(t, err)

	assert.Equal(t, wrapped.Submission, doc.Submission, "original PDF bytes preserved intact")
	assert.Equal(t, []byte("fake-page-1-png"), doc.Preview)
	assert.Equal(t, 1, doc.PageCount)
	assert.Equal(t, 1, raster.calls)
}

func TestNormalizeUndecodableImageIsFatal(t *testing.T) {
	n := NewNormalizer(&fakeRasterizer{})

	_, err := n.Normalize(context.Background(), models.UploadedArtifact{
		Name: "broken.png",
		Kind: models.MediaImage,
		Data: []byte("definitely not an image"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNormalizeUndecodablePDFIsFatal(t *testing.T) {
	n := NewNormalizer(&fakeRasterizer{})

	_, err := n.Normalize(context.Background(), models.UploadedArtifact{
		Name: "broken.pdf",
		Kind: models.MediaPDF,
		Data: []byte("not a pdf at all"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestNormalizeEmptyArtifact(t *testing.T) {
	n := NewNormalizer(&fakeRasterizer{})

	_, err := n.Normalize(context.Background(), models.UploadedArtifact{
		Name: "empty.png",
		Kind: models.MediaImage,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyArtifact)
}

func TestNormalizeUnknownKind(t *testing.T) {
	n := NewNormalizer(&fakeRasterizer{})

	_, err := n.Normalize(context.Background(), models.UploadedArtifact{
		Name: "weird.bin",
		Kind: models.MediaKind("binary"),
		Data: []byte{1, 2, 3},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
