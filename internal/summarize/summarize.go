// Package summarize condenses the retrieved product-label text into a short
// structured digest used by the compliance prompt.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"promocheck/internal/llm"
	"promocheck/internal/logger"
)

// DefaultMaxChars bounds the label-text prefix sent to the model when no
// explicit limit is configured. Clauses past the prefix never reach the
// digest.
const DefaultMaxChars = 4000

// Service produces AMM digests through the reasoning capability.
type Service struct {
	generator llm.Generator
	maxChars  int
	log       zerolog.Logger
}

// NewService creates a summarizer. maxChars <= 0 selects DefaultMaxChars.
func NewService(generator llm.Generator, maxChars int) *Service {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Service{
		generator: generator,
		maxChars:  maxChars,
		log:       logger.WithComponent("summarize"),
	}
}

// Summarize extracts indications, contraindications, dosage and precautions
// from a bounded prefix of the reference text. Empty input yields an empty
// digest without any external call.
func (s *Service) Summarize(ctx context.Context, referenceText string) (string, error) {
	if strings.TrimSpace(referenceText) == "" {
		return "", nil
	}

	truncated := false
	if len(referenceText) > s.maxChars {
		referenceText = referenceText[:s.maxChars]
		truncated = true
	}

	prompt := fmt.Sprintf(
		"Voici un extrait du RCP (résumé des caractéristiques du produit) d'un médicament :\n\n%s\n\n"+
			"Résume en quelques lignes les informations clés de l'AMM : "+
			"indications, contre-indications, posologie, précautions d'emploi.",
		referenceText,
	)

	s.log.Info().
		Int("text_length", len(referenceText)).
		Bool("truncated", truncated).
		Msg("Requesting AMM digest")

	digest, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.log.Info().Int("digest_length", len(digest)).Msg("AMM digest produced")
	return digest, nil
}
