package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"promocheck/internal/logger"
)

// GeneratorConfig configures the OpenAI-backed generator.
type GeneratorConfig struct {
	Model       string  // gpt-4o or compatible vision-capable model
	Temperature float32 // sampling temperature
	MaxTokens   int     // response budget per call
	MaxRetries  int     // attempts before giving up
}

// DefaultGeneratorConfig mirrors the settings the compliance analysis was
// tuned with.
func DefaultGeneratorConfig(model string) GeneratorConfig {
	return GeneratorConfig{
		Model:       model,
		Temperature: 0.1,
		MaxTokens:   1500,
		MaxRetries:  3,
	}
}

// OpenAIGenerator implements Generator using the OpenAI chat completions API.
type OpenAIGenerator struct {
	client *openai.Client
	config GeneratorConfig
	log    zerolog.Logger
}

// NewOpenAIGenerator creates a generator with the API key from the environment.
func NewOpenAIGenerator(config GeneratorConfig) (*OpenAIGenerator, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return NewOpenAIGeneratorWithClient(openai.NewClient(apiKey), config), nil
}

// NewOpenAIGeneratorWithClient creates a generator with an explicit client (for testing).
func NewOpenAIGeneratorWithClient(client *openai.Client, config GeneratorConfig) *OpenAIGenerator {
	if config.MaxRetries < 1 {
		config.MaxRetries = 1
	}
	return &OpenAIGenerator{
		client: client,
		config: config,
		log:    logger.WithComponent("llm"),
	}
}

// Generate sends a text-only prompt and returns the model's reply.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	const op = "Generate"

	message := openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	}
	return g.complete(ctx, op, message)
}

// GenerateVision sends a prompt together with a document image, encoded as a
// base64 data URL content part.
func (g *OpenAIGenerator) GenerateVision(ctx context.Context, prompt string, image ImageAttachment) (string, error) {
	const op = "GenerateVision"

	if len(image.Data) == 0 {
		return "", WrapGenerationError(op, ErrGenerationFailed, "empty image attachment")
	}
	mime := image.MIME
	if mime == "" {
		mime = "image/png"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(image.Data))

	message := openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeText,
				Text: prompt,
			},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    dataURL,
					Detail: openai.ImageURLDetailAuto,
				},
			},
		},
	}
	return g.complete(ctx, op, message)
}

// complete runs one chat completion with bounded retries.
func (g *OpenAIGenerator) complete(ctx context.Context, op string, message openai.ChatCompletionMessage) (string, error) {
	g.log.Debug().
		Str("op", op).
		Str("model", g.config.Model).
		Int("max_tokens", g.config.MaxTokens).
		Msg("Sending chat completion request")

	var lastErr error
	for attempt := 1; attempt <= g.config.MaxRetries; attempt++ {
		resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       g.config.Model,
			Temperature: g.config.Temperature,
			MaxTokens:   g.config.MaxTokens,
			Messages:    []openai.ChatCompletionMessage{message},
		})
		if err != nil {
			lastErr = err
			g.log.Warn().
				Err(err).
				Int("attempt", attempt).
				Int("max_retries", g.config.MaxRetries).
				Msg("Chat completion request failed, retrying")
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if len(resp.Choices) == 0 {
			lastErr = ErrEmptyResponse
			continue
		}

		content := strings.TrimSpace(resp.Choices[0].Message.Content)
		if content == "" {
			lastErr = ErrEmptyResponse
			continue
		}

		g.log.Debug().
			Str("op", op).
			Int("response_length", len(content)).
			Int("attempt", attempt).
			Msg("Chat completion succeeded")
		return content, nil
	}

	return "", WrapGenerationError(op, ErrGenerationFailed, fmt.Sprintf("all %d attempts failed: %v", g.config.MaxRetries, lastErr))
}
