package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"promocheck/internal/bdpm"
	"promocheck/internal/config"
	"promocheck/internal/document"
	"promocheck/internal/identify"
	"promocheck/internal/llm"
	"promocheck/internal/logger"
	"promocheck/internal/pipeline"
	"promocheck/internal/report"
	"promocheck/internal/summarize"
	"promocheck/internal/textextract"
	"promocheck/pkg/models"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [image-or-pdf]",
	Short: "Run the full compliance analysis on a promotional support",
	Long: `Run the complete enrichment pipeline over a promotional support:
normalization, OCR, product identification, RCP lookup on the BDPM,
AMM digest, and the final compliance-analysis request.

Degraded stages (failed OCR, missing RCP, ...) are reported as warnings and
the analysis still completes. Only an undecodable input file or a failed
final model call abort the run.

Required environment variables:
  OPENAI_API_KEY - OpenAI API key for the reasoning model calls`,
	Example: `  # Analyze a web banner
  promocheck analyze banner.png --support-type "bannière web" --context "site web professionnel"

  # Analyze a PDF brochure with a known product name
  promocheck analyze brochure.pdf --support-type "plaquette produit" --context "remise en visite médicale" --product "AMOXIL"

  # Keep a copy of the retrieved RCP
  promocheck analyze flyer.jpg --support-type "prospectus / flyer" --context "congrès" --rcp-out rcp.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("support-type", "s", string(models.SupportOther), "Declared support type: "+supportTypeList())
	analyzeCmd.Flags().StringP("context", "c", "", "Diffusion context (distribution channel), required")
	analyzeCmd.Flags().StringP("product", "p", "", "Manual product name, skips automatic detection")
	analyzeCmd.Flags().StringP("out", "o", "rapport_ansm.pdf", "Report PDF output path")
	analyzeCmd.Flags().String("rcp-out", "", "Write the retrieved reference document (RCP) to this path")
	analyzeCmd.Flags().Int("timeout", 300, "Run timeout in seconds")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	supportType, _ := cmd.Flags().GetString("support-type")
	diffusionContext, _ := cmd.Flags().GetString("context")
	product, _ := cmd.Flags().GetString("product")
	outPath, _ := cmd.Flags().GetString("out")
	rcpOutPath, _ := cmd.Flags().GetString("rcp-out")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		return err
	}
	log := logger.WithComponent("analyze")

	artifact, err := loadArtifact(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	pipe, err := buildPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}
	pipe.OnStage(func(ev pipeline.StageEvent) {
		fmt.Fprintf(os.Stderr, "  [%s] %s %s\n", ev.Stage, ev.Status, ev.Message)
	})

	result, err := pipe.Run(ctx, models.AnalysisRequest{
		Artifact:          artifact,
		SupportType:       models.SupportType(strings.TrimSpace(supportType)),
		DiffusionContext:  diffusionContext,
		ManualProductName: product,
	})
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: stage %s degraded: %s\n", w.Stage, w.Message)
	}

	fmt.Println(result.Report.Narrative)

	if outPath != "" && len(result.Report.PDF) > 0 {
		if err := os.WriteFile(outPath, result.Report.PDF, 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.Info().Str("path", outPath).Msg("Report PDF written")
	}
	if rcpOutPath != "" && result.Reference != nil {
		if err := os.WriteFile(rcpOutPath, result.Reference.Bytes, 0644); err != nil {
			return fmt.Errorf("failed to write reference document: %w", err)
		}
		log.Info().Str("path", rcpOutPath).Str("source", result.Reference.SourceURL).Msg("Reference document written")
	}
	return nil
}

// buildPipeline wires every stage implementation from configuration. The
// reasoning client is constructed once and shared by every stage using it.
func buildPipeline(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pipeline.Pipeline, error) {
	generator, err := llm.NewOpenAIGenerator(llm.DefaultGeneratorConfig(cfg.OpenAIModel))
	if err != nil {
		return nil, err
	}

	// A missing OCR engine degrades the extraction stage, it never blocks
	// the run: the report can still be produced from the document image.
	var images textextract.ImageExtractor
	vision, err := textextract.NewGoogleVisionExtractor(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("OCR engine unavailable, text extraction will degrade")
		images = textextract.NewUnavailableImageExtractor(err)
	} else {
		images = vision
	}

	var detector identify.Detector
	if cfg.IdentifyStrategy == config.StrategyPattern {
		detector = identify.NewPatternDetector()
	} else {
		detector = identify.NewLLMDetector(generator)
	}

	timeout := time.Duration(cfg.HTTPTimeoutSecs) * time.Second
	return pipeline.New(
		document.NewNormalizer(document.NewPopplerRasterizer(0)),
		images,
		textextract.NewEmbeddedExtractor(),
		identify.NewService(detector),
		bdpm.NewService(cfg.BDPMBaseURL, timeout),
		summarize.NewService(generator, cfg.SummaryMaxChars),
		report.NewAssembler(generator),
	), nil
}

// loadArtifact reads a file and classifies its media kind from the extension.
func loadArtifact(path string) (models.UploadedArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.UploadedArtifact{}, fmt.Errorf("failed to read input file: %w", err)
	}

	var kind models.MediaKind
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		kind = models.MediaPDF
	case ".png", ".jpg", ".jpeg":
		kind = models.MediaImage
	default:
		return models.UploadedArtifact{}, fmt.Errorf("unsupported file type %q: expected .pdf, .png, .jpg or .jpeg", filepath.Ext(path))
	}

	return models.UploadedArtifact{
		Name: filepath.Base(path),
		Kind: kind,
		Data: data,
	}, nil
}

func supportTypeList() string {
	types := models.SupportTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
