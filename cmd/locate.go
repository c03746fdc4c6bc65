package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"promocheck/internal/bdpm"
	"promocheck/internal/llm"
	"promocheck/internal/logger"
	"promocheck/internal/summarize"
	"promocheck/internal/textextract"
)

var locateCmd = &cobra.Command{
	Use:   "locate [product-name]",
	Short: "Find and download the official label (RCP) of a drug on the BDPM",
	Example: `  # Download the first matching RCP
  promocheck locate AMOXIL -o amoxil_rcp.pdf

  # Download and print an AMM digest (needs OPENAI_API_KEY)
  promocheck locate DOLIPRANE --digest`,
	Args: cobra.ExactArgs(1),
	RunE: runLocate,
}

func init() {
	rootCmd.AddCommand(locateCmd)

	locateCmd.Flags().StringP("output", "o", "", "Write the retrieved document to this path")
	locateCmd.Flags().Bool("digest", false, "Also produce the AMM digest of the retrieved document")
	locateCmd.Flags().Int("timeout", 120, "Processing timeout in seconds")
}

func runLocate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("locate")

	outputPath, _ := cmd.Flags().GetString("output")
	wantDigest, _ := cmd.Flags().GetBool("digest")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	baseURL := os.Getenv("BDPM_BASE_URL")
	if baseURL == "" {
		baseURL = "https://base-donnees-publique.medicaments.gouv.fr"
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	locator := bdpm.NewService(baseURL, time.Duration(timeoutSecs)*time.Second)
	ref, err := locator.Locate(ctx, args[0])
	if err != nil {
		return err
	}
	if ref == nil {
		fmt.Printf("No reference document found for %q\n", args[0])
		return nil
	}

	fmt.Printf("Found: %s (%d bytes)\n", ref.SourceURL, len(ref.Bytes))
	if outputPath != "" {
		if err := os.WriteFile(outputPath, ref.Bytes, 0644); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
		log.Info().Str("path", outputPath).Msg("Reference document written")
	}

	if !wantDigest {
		return nil
	}

	text, err := textextract.NewEmbeddedExtractor().ExtractFromDocument(ctx, ref.Bytes)
	if err != nil {
		return err
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o"
	}
	generator, err := llm.NewOpenAIGenerator(llm.DefaultGeneratorConfig(model))
	if err != nil {
		return err
	}
	digest, err := summarize.NewService(generator, 0).Summarize(ctx, text)
	if err != nil {
		return err
	}
	fmt.Println(digest)
	return nil
}
