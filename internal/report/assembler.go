// Package report assembles the final compliance-analysis request and renders
// the resulting narrative into a downloadable PDF.
package report

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"promocheck/internal/llm"
	"promocheck/internal/logger"
	"promocheck/pkg/models"
)

// Assembler issues the compliance-analysis request. This is the only
// enrichment step whose failure ends the run: without the model's narrative
// there is nothing to deliver.
type Assembler struct {
	generator llm.Generator
	log       zerolog.Logger
}

// NewAssembler creates a report assembler around the reasoning capability.
func NewAssembler(generator llm.Generator) *Assembler {
	return &Assembler{
		generator: generator,
		log:       logger.WithComponent("report"),
	}
}

// Assemble interpolates the regulatory template with the run's values and
// sends one vision request attaching the canonical preview page. Fails with
// ErrModelFailure when the call errors or returns nothing.
func (a *Assembler) Assemble(ctx context.Context, supportType models.SupportType, diffusionContext, digest string, doc *models.CanonicalDocument) (*models.ComplianceReport, error) {
	const op = "Assemble"

	if doc == nil || len(doc.Preview) == 0 {
		return nil, WrapAssembleError(op, ErrNoDocument, "")
	}

	prompt := BuildPrompt(supportType, diffusionContext, digest)

	a.log.Info().
		Str("support_type", string(supportType)).
		Int("prompt_length", len(prompt)).
		Int("preview_bytes", len(doc.Preview)).
		Msg("Requesting compliance analysis")

	narrative, err := a.generator.GenerateVision(ctx, prompt, llm.ImageAttachment{
		MIME: "image/png",
		Data: doc.Preview,
	})
	if err != nil {
		return nil, WrapAssembleError(op, ErrModelFailure, err.Error())
	}

	rendered, err := Render(narrative)
	if err != nil {
		// The narrative exists; a rendering problem should not lose it.
		a.log.Warn().Err(err).Msg("Report PDF rendering failed, delivering narrative only")
		rendered = nil
	}

	a.log.Info().
		Int("narrative_length", len(narrative)).
		Int("pdf_bytes", len(rendered)).
		Msg("Compliance report assembled")
	return &models.ComplianceReport{
		Narrative:   narrative,
		PDF:         rendered,
		GeneratedAt: time.Now(),
	}, nil
}
