package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"promocheck/cmd"
	"promocheck/internal/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Logging is configured from the environment alone so that commands not
	// needing the full configuration (extract, locate) still log properly.
	logConfig := logger.DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		logConfig.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		logConfig.Format = format
	}
	if output := os.Getenv("LOG_OUTPUT"); output != "" {
		logConfig.Output = output
	}
	if err := logger.Setup(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cmd.Execute()
}
