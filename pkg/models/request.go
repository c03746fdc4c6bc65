package models

// SupportType is the kind of promotional material under review. The values
// mirror the catalogue the compliance template enumerates.
type SupportType string

const (
	SupportWebBanner SupportType = "bannière web"
	SupportSlide     SupportType = "diapositive PowerPoint"
	SupportPoster    SupportType = "affiche / kakemono"
	SupportMagazine  SupportType = "page de magazine"
	SupportEmail     SupportType = "encart email"
	SupportFlyer     SupportType = "prospectus / flyer"
	SupportBrochure  SupportType = "plaquette produit"
	SupportOther     SupportType = "autre"
)

// SupportTypes lists every accepted support type, for CLI help and validation.
func SupportTypes() []SupportType {
	return []SupportType{
		SupportWebBanner,
		SupportSlide,
		SupportPoster,
		SupportMagazine,
		SupportEmail,
		SupportFlyer,
		SupportBrochure,
		SupportOther,
	}
}

// AnalysisRequest is everything the caller supplies for one run.
type AnalysisRequest struct {
	Artifact          UploadedArtifact
	SupportType      SupportType
	DiffusionContext  string // free-text distribution channel, required
	ManualProductName string // optional override, wins over any detection
}
