package models

import "time"

// MediaKind is the declared media type of an uploaded artifact.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaPDF   MediaKind = "pdf"
)

// UploadedArtifact is the raw payload handed to the pipeline.
// It is consumed once by the normalizer and then discarded.
type UploadedArtifact struct {
	Name string    // Original file name, used for logs and MIME sniffing hints
	Kind MediaKind // Declared media kind
	Data []byte    // Raw payload bytes
}

// CanonicalDocument is the normalized form of an uploaded artifact.
type CanonicalDocument struct {
	// Preview is a single raster page (PNG): the decoded image for image
	// uploads, or page 1 for PDF uploads. This is what the reasoning model
	// sees and what a front-end shows to the user.
	Preview []byte

	// Submission is a single well-formed PDF: the original bytes for PDF
	// uploads, or the image wrapped as a one-page PDF for image uploads.
	// Preserved intact for download and audit.
	Submission []byte

	// PageCount of the submission document. 1 for wrapped images.
	PageCount int
}

// TextSource tags where a piece of extracted text came from.
type TextSource string

const (
	SourceOCR      TextSource = "ocr"      // optical recognition of the preview image
	SourceEmbedded TextSource = "embedded" // machine-readable text inside a PDF
)

// ExtractedText is plain text plus its provenance. Empty Text means the
// extraction degraded; consumers treat empty and absent as equivalent.
type ExtractedText struct {
	Text   string
	Source TextSource
}

// ReferenceDocument is a retrieved official product-label document (RCP).
// Fields past Bytes stay empty when a later stage degrades.
type ReferenceDocument struct {
	SourceURL string
	Bytes     []byte
	Text      string // embedded text of the document
	Digest    string // short structured summary (AMM digest)
}

// ComplianceReport is the terminal output of one run.
type ComplianceReport struct {
	Narrative   string // model response following the template's section contract
	PDF         []byte // rendered downloadable copy of the narrative
	GeneratedAt time.Time
}
