// Package pipeline orchestrates the document-enrichment chain: normalize,
// extract, identify, locate, summarize, assemble.
//
// Each stage consumes the uncertain output of the previous one. The policy is
// fixed: normalization and final assembly are the only fatal stages; every
// stage in between degrades to an empty value, records a warning naming the
// stage and the reason, and the run proceeds.
package pipeline

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"promocheck/internal/logger"
	"promocheck/internal/textextract"
	"promocheck/pkg/models"
)

// Normalizer converts an uploaded artifact into the canonical document.
type Normalizer interface {
	Normalize(ctx context.Context, artifact models.UploadedArtifact) (*models.CanonicalDocument, error)
}

// Identifier resolves the advertised product name.
type Identifier interface {
	Identify(ctx context.Context, ocrText, manualOverride string) (string, error)
}

// Locator retrieves the official reference document for a product.
// A (nil, nil) return means the lookup completed without a match.
type Locator interface {
	Locate(ctx context.Context, productName string) (*models.ReferenceDocument, error)
}

// Summarizer condenses reference text into the AMM digest.
type Summarizer interface {
	Summarize(ctx context.Context, referenceText string) (string, error)
}

// Assembler issues the final compliance-analysis request.
type Assembler interface {
	Assemble(ctx context.Context, supportType models.SupportType, diffusionContext, digest string, doc *models.CanonicalDocument) (*models.ComplianceReport, error)
}

// Pipeline wires the six stages together. All collaborators are injected;
// the pipeline holds no credentials or clients of its own.
type Pipeline struct {
	normalizer Normalizer
	images     textextract.ImageExtractor
	documents  textextract.DocumentExtractor
	identifier Identifier
	locator    Locator
	summarizer Summarizer
	assembler  Assembler

	// events, when set, receives a StageEvent after each stage transition.
	events func(StageEvent)
}

// New creates a pipeline from its stage implementations.
func New(normalizer Normalizer, images textextract.ImageExtractor, documents textextract.DocumentExtractor, identifier Identifier, locator Locator, summarizer Summarizer, assembler Assembler) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		images:     images,
		documents:  documents,
		identifier: identifier,
		locator:    locator,
		summarizer: summarizer,
		assembler:  assembler,
	}
}

// OnStage registers a stage-completion callback. Invoked synchronously from
// the run's goroutine.
func (p *Pipeline) OnStage(fn func(StageEvent)) {
	p.events = fn
}

// Run executes the full pipeline for one request.
func (p *Pipeline) Run(ctx context.Context, req models.AnalysisRequest) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	log := logger.WithRun("pipeline", result.RunID)

	if err := validate(req); err != nil {
		return nil, err
	}

	log.Info().
		Str("artifact", req.Artifact.Name).
		Str("kind", string(req.Artifact.Kind)).
		Str("support_type", string(req.SupportType)).
		Msg("Starting analysis run")

	// Normalize: fatal on failure, everything downstream needs the document.
	doc, err := p.normalizer.Normalize(ctx, req.Artifact)
	if err != nil {
		p.emit(result.RunID, StageNormalize, StatusFatal, err.Error())
		return nil, &RunError{Stage: StageNormalize, Err: err}
	}
	result.Document = doc
	p.emit(result.RunID, StageNormalize, StatusSuccess, "")

	// Extract: best-effort OCR of the preview page.
	ocrText, err := p.images.ExtractFromImage(ctx, doc.Preview)
	if err != nil {
		p.degrade(result, log, StageExtract, "optical text extraction failed: "+err.Error())
		ocrText = ""
	} else {
		p.emit(result.RunID, StageExtract, StatusSuccess, "")
	}
	result.OCRText = models.ExtractedText{Text: ocrText, Source: models.SourceOCR}

	// Identify: override wins, strategy failures degrade to absent.
	name, err := p.identifier.Identify(ctx, ocrText, req.ManualProductName)
	if err != nil {
		p.degrade(result, log, StageIdentify, "product detection failed: "+err.Error())
		name = ""
	} else if name == "" {
		p.degrade(result, log, StageIdentify, "no product identified in the support")
	} else {
		p.emit(result.RunID, StageIdentify, StatusSuccess, name)
	}
	result.ProductName = name

	return p.enrich(ctx, log, req, result)
}

// Resume restarts a run from the Locate stage with caller-held intermediate
// artifacts, typically after the user corrected the detected product name.
func (p *Pipeline) Resume(ctx context.Context, req models.AnalysisRequest, doc *models.CanonicalDocument, ocrText models.ExtractedText, productName string) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, &RunError{Stage: StageNormalize, Err: ErrMissingInput}
	}

	result := &Result{
		RunID:       uuid.NewString(),
		Document:    doc,
		OCRText:     ocrText,
		ProductName: strings.TrimSpace(productName),
	}
	log := logger.WithRun("pipeline", result.RunID)
	log.Info().Str("product", result.ProductName).Msg("Resuming analysis run from reference lookup")

	return p.enrich(ctx, log, req, result)
}

// enrich runs Locate -> Summarize -> Assemble over a prepared result.
func (p *Pipeline) enrich(ctx context.Context, log zerolog.Logger, req models.AnalysisRequest, result *Result) (*Result, error) {
	// Locate: skipped without a product name; degraded on any lookup failure.
	if result.ProductName == "" {
		p.emit(result.RunID, StageLocate, StatusSkipped, "no product name")
	} else {
		ref, err := p.locator.Locate(ctx, result.ProductName)
		switch {
		case err != nil:
			p.degrade(result, log, StageLocate, "reference lookup failed: "+err.Error())
		case ref == nil:
			p.degrade(result, log, StageLocate, "no reference document found for "+result.ProductName)
		default:
			result.Reference = ref
			p.emit(result.RunID, StageLocate, StatusSuccess, ref.SourceURL)
		}
	}

	// Summarize: needs reference text; each sub-step degrades independently.
	digest := ""
	if result.Reference == nil {
		p.emit(result.RunID, StageSummarize, StatusSkipped, "no reference document")
	} else {
		text, err := p.documents.ExtractFromDocument(ctx, result.Reference.Bytes)
		if err != nil {
			p.degrade(result, log, StageSummarize, "reference text extraction failed: "+err.Error())
		} else {
			result.Reference.Text = text
			digest, err = p.summarizer.Summarize(ctx, text)
			if err != nil {
				p.degrade(result, log, StageSummarize, "reference summarization failed: "+err.Error())
				digest = ""
			} else {
				result.Reference.Digest = digest
				p.emit(result.RunID, StageSummarize, StatusSuccess, "")
			}
		}
	}

	// Assemble: the deliverable. Fatal on failure.
	report, err := p.assembler.Assemble(ctx, req.SupportType, req.DiffusionContext, digest, result.Document)
	if err != nil {
		p.emit(result.RunID, StageAssemble, StatusFatal, err.Error())
		return nil, &RunError{Stage: StageAssemble, Err: err}
	}
	result.Report = report
	p.emit(result.RunID, StageAssemble, StatusSuccess, "")

	log.Info().
		Int("warnings", len(result.Warnings)).
		Int("narrative_length", len(report.Narrative)).
		Msg("Analysis run completed")
	return result, nil
}

// validate rejects incomplete requests before any external call is made.
func validate(req models.AnalysisRequest) error {
	if strings.TrimSpace(req.DiffusionContext) == "" {
		return ErrMissingInput
	}
	return nil
}

func (p *Pipeline) degrade(result *Result, log zerolog.Logger, stage Stage, message string) {
	result.Warnings = append(result.Warnings, Warning{Stage: stage, Message: message})
	log.Warn().Str("stage", string(stage)).Msg(message)
	p.emit(result.RunID, stage, StatusDegraded, message)
}

func (p *Pipeline) emit(runID string, stage Stage, status StageStatus, message string) {
	if p.events != nil {
		p.events(StageEvent{RunID: runID, Stage: stage, Status: status, Message: message})
	}
}
