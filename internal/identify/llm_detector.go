package identify

import (
	"context"
	"fmt"
	"strings"

	"promocheck/internal/llm"
)

// maxDetectionChars bounds the OCR text sent with the detection request.
const maxDetectionChars = 6000

// LLMDetector delegates product-name detection to the reasoning model.
// It costs one external call per invocation.
type LLMDetector struct {
	generator llm.Generator
}

// NewLLMDetector creates a delegated detector.
func NewLLMDetector(generator llm.Generator) *LLMDetector {
	return &LLMDetector{generator: generator}
}

// Detect asks the model to return only the commercial product name.
func (d *LLMDetector) Detect(ctx context.Context, ocrText string) (string, error) {
	if len(ocrText) > maxDetectionChars {
		ocrText = ocrText[:maxDetectionChars]
	}

	prompt := fmt.Sprintf(
		"Voici le texte extrait par OCR d'un support promotionnel :\n\n%s\n\n"+
			"Peux-tu détecter le nom du médicament (nom commercial) mentionné dans ce support ? "+
			"Réponds uniquement par ce nom, sans ponctuation ni commentaire. "+
			"Si aucun médicament n'est identifiable, réponds AUCUN.",
		ocrText,
	)

	answer, err := d.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	answer = strings.TrimSpace(answer)
	if strings.EqualFold(answer, "AUCUN") {
		return "", nil
	}
	// Single-line answer expected; anything chattier is not a product name.
	if strings.ContainsRune(answer, '\n') || len(answer) > 80 {
		return "", nil
	}
	return answer, nil
}
