package pipeline

import "promocheck/pkg/models"

// Stage names one step of the enrichment pipeline.
type Stage string

const (
	StageNormalize Stage = "normalize"
	StageExtract   Stage = "extract"
	StageIdentify  Stage = "identify"
	StageLocate    Stage = "locate"
	StageSummarize Stage = "summarize"
	StageAssemble  Stage = "assemble"
)

// StageStatus is the outcome class of one stage transition. Normalize and
// Assemble can only succeed or end the run; every other stage degrades to an
// empty value and the run continues.
type StageStatus string

const (
	StatusSuccess  StageStatus = "success"
	StatusDegraded StageStatus = "degraded"
	StatusFatal    StageStatus = "fatal"
	StatusSkipped  StageStatus = "skipped"
)

// Warning records a degraded stage: which stage, and why. Surfacing both is
// what keeps a report trustworthy when its reference digest is missing.
type Warning struct {
	Stage   Stage
	Message string
}

// StageEvent is emitted after each stage transition. A front-end can
// subscribe to these for progress feedback; the pipeline itself stays
// strictly sequential.
type StageEvent struct {
	RunID   string
	Stage   Stage
	Status  StageStatus
	Message string
}

// Result is everything one run produced, including the intermediate
// artifacts a caller needs to hold on to for Resume.
type Result struct {
	RunID       string
	Document    *models.CanonicalDocument
	OCRText     models.ExtractedText
	ProductName string
	Reference   *models.ReferenceDocument
	Report      *models.ComplianceReport
	Warnings    []Warning
}
