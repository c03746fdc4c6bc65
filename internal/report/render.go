package report

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Render serializes the narrative into a simple line-per-line PDF suitable
// for download. Layout fidelity is not a goal; the text is the deliverable.
func Render(narrative string) ([]byte, error) {
	const op = "Render"

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)

	// Core fonts are cp1252; translate so French accents survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, line := range strings.Split(narrative, "\n") {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, WrapAssembleError(op, err, "")
	}
	return buf.Bytes(), nil
}
