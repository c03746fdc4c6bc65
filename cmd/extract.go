package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"promocheck/internal/document"
	"promocheck/internal/logger"
	"promocheck/internal/textextract"
	"promocheck/pkg/models"
)

var extractCmd = &cobra.Command{
	Use:   "extract [image-or-pdf]",
	Short: "Extract the visible text of a promotional support",
	Long: `Normalize a promotional support and run OCR over its first page,
without product identification or compliance analysis.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string`,
	Example: `  # OCR a banner to stdout
  promocheck extract banner.png

  # Save OCR text of a PDF's first page
  promocheck extract brochure.pdf -o extracted.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")

	outputPath, _ := cmd.Flags().GetString("output")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	artifact, err := loadArtifact(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	normalizer := document.NewNormalizer(document.NewPopplerRasterizer(0))
	doc, err := normalizer.Normalize(ctx, artifact)
	if err != nil {
		return err
	}

	// Embedded text first for PDFs: free and exact when a text layer exists.
	if artifact.Kind == models.MediaPDF {
		if text, err := textextract.NewEmbeddedExtractor().ExtractFromDocument(ctx, doc.Submission); err == nil {
			return writeText(outputPath, text, log)
		}
		log.Info().Msg("No embedded text layer, falling back to OCR")
	}

	extractor, err := textextract.NewGoogleVisionExtractor(ctx)
	if err != nil {
		return err
	}
	defer extractor.Close()

	text, err := extractor.ExtractFromImage(ctx, doc.Preview)
	if err != nil {
		return err
	}
	return writeText(outputPath, text, log)
}

func writeText(path, text string, log zerolog.Logger) error {
	if path == "" {
		fmt.Println(text)
		return nil
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Info().Str("path", path).Int("chars", len(text)).Msg("Extracted text written")
	return nil
}
