package identify

import (
	"context"
	"regexp"
	"strings"
)

var (
	// ammLine matches a line carrying a marketing-authorization marker
	// ("AMM n° ...", "N° AMM: ..."). The product name, when printed, sits on
	// that same line before the marker.
	ammLine = regexp.MustCompile(`(?im)^.*\bAMM\b.*$`)

	// upperRun matches an uppercase token run of at least three characters,
	// the typical rendering of a commercial drug name on French supports.
	upperRun = regexp.MustCompile(`\b[A-ZÀÂÇÉÈÊËÎÏÔÙÛÜ][A-ZÀÂÇÉÈÊËÎÏÔÙÛÜ0-9-]{2,}\b`)
)

// regulatory acronyms that render as uppercase runs but are never product names
var acronyms = map[string]bool{
	"AMM":  true,
	"DCI":  true,
	"RCP":  true,
	"ANSM": true,
	"EMA":  true,
	"CSP":  true,
}

// PatternDetector derives a product name deterministically, with no external
// call: first from the line carrying the registration-number marker, else
// from the first uppercase token run of the whole text.
type PatternDetector struct{}

// NewPatternDetector creates the deterministic detector.
func NewPatternDetector() *PatternDetector {
	return &PatternDetector{}
}

// Detect never fails; an empty result means no candidate was found.
func (d *PatternDetector) Detect(_ context.Context, ocrText string) (string, error) {
	if line := ammLine.FindString(ocrText); line != "" {
		if name := firstCandidate(line); name != "" {
			return name, nil
		}
	}
	return firstCandidate(ocrText), nil
}

func firstCandidate(text string) string {
	for _, token := range upperRun.FindAllString(text, -1) {
		if !acronyms[strings.ToUpper(token)] {
			return token
		}
	}
	return ""
}
