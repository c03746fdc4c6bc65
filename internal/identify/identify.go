// Package identify derives the commercial product name advertised by a
// promotional support from its OCR text.
//
// Three mutually exclusive sources exist, in fixed precedence order: an
// explicit caller override, delegated detection through the reasoning model,
// and a deterministic pattern search. Override always wins; the remaining two
// are alternative strategies selected by configuration, never combined.
package identify

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"promocheck/internal/logger"
)

// Detector is one product-name detection strategy.
type Detector interface {
	// Detect returns the commercial product name found in the OCR text, or
	// an empty string when none could be derived.
	Detect(ctx context.Context, ocrText string) (string, error)
}

// Service applies the override-then-strategy policy.
type Service struct {
	detector Detector
	log      zerolog.Logger
}

// NewService creates an identification service around the configured strategy.
func NewService(detector Detector) *Service {
	return &Service{
		detector: detector,
		log:      logger.WithComponent("identify"),
	}
}

// Identify resolves the product identity. A non-empty manual override is
// returned verbatim with no further computation. Empty OCR text yields an
// absent identity, which is informational, not an error. A strategy failure
// is returned to the caller, who degrades to an absent identity.
func (s *Service) Identify(ctx context.Context, ocrText, manualOverride string) (string, error) {
	if override := strings.TrimSpace(manualOverride); override != "" {
		s.log.Info().Str("product", override).Msg("Using manual product name override")
		return override, nil
	}

	if strings.TrimSpace(ocrText) == "" {
		s.log.Info().Msg("No OCR text available, product identity absent")
		return "", nil
	}

	name, err := s.detector.Detect(ctx, ocrText)
	if err != nil {
		return "", err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		s.log.Info().Msg("No product name detected in OCR text")
	} else {
		s.log.Info().Str("product", name).Msg("Product name detected")
	}
	return name, nil
}
