package identify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"promocheck/internal/llm"
)

type fakeDetector struct {
	name  string
	err   error
	calls int
}

func (f *fakeDetector) Detect(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.name, f.err
}

func TestIdentifyManualOverrideWins(t *testing.T) {
	detector := &fakeDetector{name: "DOLIPRANE"}
	svc := NewService(detector)

	name, err := svc.Identify(context.Background(), "AMOXIL 500mg", "  TESTEX  ")
	require.NoError(t, err)
	assert.Equal(t, "TESTEX", name)
	assert.Zero(t, detector.calls, "override must short-circuit detection")
}

func TestIdentifyOverrideIdempotent(t *testing.T) {
	svc := NewService(&fakeDetector{name: "OTHER"})

	for _, ocr := range []string{"", "AMOXIL", "garbled ### text"} {
		name, err := svc.Identify(context.Background(), ocr, "AMOXIL")
		require.NoError(t, err)
		assert.Equal(t, "AMOXIL", name)
	}
}

func TestIdentifyEmptyOCRTextIsAbsent(t *testing.T) {
	detector := &fakeDetector{name: "AMOXIL"}
	svc := NewService(detector)

	name, err := svc.Identify(context.Background(), "   \n  ", "")
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Zero(t, detector.calls, "no detection without OCR text")
}

func TestIdentifyDetectorFailurePropagates(t *testing.T) {
	svc := NewService(&fakeDetector{err: errors.New("timeout")})

	name, err := svc.Identify(context.Background(), "some text", "")
	require.Error(t, err)
	assert.Empty(t, name)
}

func TestPatternDetectorFindsUppercaseRun(t *testing.T) {
	d := NewPatternDetector()

	name, err := d.Detect(context.Background(), "Nouveau : AMOXIL 500 mg\nDCI : amoxicilline")
	require.NoError(t, err)
	assert.Equal(t, "AMOXIL", name)
}

func TestPatternDetectorPrefersRegistrationLine(t *testing.T) {
	d := NewPatternDetector()

	text := "PROMO EXCEPTIONNELLE\nTESTEX 20 mg - AMM n° 345 678-9\nLaboratoire Untel"
	name, err := d.Detect(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, "TESTEX", name)
}

func TestPatternDetectorSkipsAcronyms(t *testing.T) {
	d := NewPatternDetector()

	name, err := d.Detect(context.Background(), "DCI : amoxicilline. RCP disponible. AMOXIL comprimés.")
	require.NoError(t, err)
	assert.Equal(t, "AMOXIL", name)
}

func TestPatternDetectorNoCandidate(t *testing.T) {
	d := NewPatternDetector()

	name, err := d.Detect(context.Background(), "aucun nom en majuscules ici")
	require.NoError(t, err)
	assert.Empty(t, name)
}

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeGenerator) GenerateVision(_ context.Context, _ string, _ llm.ImageAttachment) (string, error) {
	return "", errors.New("not used")
}

func TestLLMDetectorReturnsName(t *testing.T) {
	gen := &fakeGenerator{reply: "  AMOXIL  "}
	d := NewLLMDetector(gen)

	name, err := d.Detect(context.Background(), "AMOXIL 500mg")
	require.NoError(t, err)
	assert.Equal(t, "AMOXIL", name)
	assert.Equal(t, 1, gen.calls)
}

func TestLLMDetectorNoProduct(t *testing.T) {
	d := NewLLMDetector(&fakeGenerator{reply: "AUCUN"})

	name, err := d.Detect(context.Background(), "image blanche")
	require.NoError(t, err)
	assert.Empty(t, name)
}

func TestLLMDetectorRejectsChattyAnswer(t *testing.T) {
	d := NewLLMDetector(&fakeGenerator{reply: "Le médicament semble être :\nAMOXIL"})

	name, err := d.Detect(context.Background(), "AMOXIL")
	require.NoError(t, err)
	assert.Empty(t, name)
}
