package config

import (
	"fmt"
	"os"
	"strconv"

	"promocheck/internal/logger"
)

// IdentifyStrategy selects how the product name is derived from OCR text
// when no manual override is given.
type IdentifyStrategy string

const (
	// StrategyLLM delegates detection to the reasoning model.
	StrategyLLM IdentifyStrategy = "llm"
	// StrategyPattern uses the deterministic regex-based detector. No external
	// cost or latency, lower recall.
	StrategyPattern IdentifyStrategy = "pattern"
)

type Config struct {
	// OpenAI Configuration
	OpenAIAPIKey string
	OpenAIModel  string

	// BDPM (public drug registry) Configuration
	BDPMBaseURL string

	// Pipeline Configuration
	IdentifyStrategy IdentifyStrategy
	SummaryMaxChars  int
	HTTPTimeoutSecs  int

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o"),
		BDPMBaseURL:      getEnv("BDPM_BASE_URL", "https://base-donnees-publique.medicaments.gouv.fr"),
		IdentifyStrategy: IdentifyStrategy(getEnv("IDENTIFY_STRATEGY", string(StrategyLLM))),
		SummaryMaxChars:  getEnvInt("SUMMARY_MAX_CHARS", 4000),
		HTTPTimeoutSecs:  getEnvInt("HTTP_TIMEOUT_SECONDS", 30),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:    getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:        getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.IdentifyStrategy != StrategyLLM && c.IdentifyStrategy != StrategyPattern {
		return fmt.Errorf("IDENTIFY_STRATEGY must be %q or %q, got %q", StrategyLLM, StrategyPattern, c.IdentifyStrategy)
	}
	if c.SummaryMaxChars <= 0 {
		return fmt.Errorf("SUMMARY_MAX_CHARS must be positive")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
