package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"promocheck/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "promocheck",
	Short: "Regulatory compliance checks for pharmaceutical promotional material",
	Long: `promocheck analyzes a promotional support (image or PDF) aimed at
healthcare professionals: it extracts the visible text, identifies the
advertised drug, retrieves and digests the matching official label (RCP)
from the public BDPM database, and asks a reasoning model for a structured
ANSM-style compliance report.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("promocheck — use --help to see available commands.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// createContextWithTimeout returns a context bounded by the given timeout and
// canceled on SIGINT/SIGTERM. Every external call of a run inherits it.
func createContextWithTimeout(seconds int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(seconds)*time.Second)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			log.Warn().Str("signal", sig.String()).Msg("Received signal, canceling run")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
