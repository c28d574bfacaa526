package llmservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"skillgap/internal/config"
)

// callTimeout bounds a single generation call; the hosted API is the only
// genuine failure surface in the system.
const callTimeout = 60 * time.Second

// Generator produces text from a system and user prompt. The query flow
// depends on this interface so tests can substitute the hosted model.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Client calls a chat-completion model through langchaingo.
type Client struct {
	llm         llms.Model
	temperature float64
}

// NewClient builds the generation client named in the config. The "openai"
// provider speaks to any OpenAI-compatible endpoint, Groq included.
func NewClient(cfg *config.LLMConfig) (*Client, error) {
	var llm llms.Model
	var err error
	switch cfg.Provider {
	case "openai":
		llm, err = openai.New(
			openai.WithBaseURL(cfg.BaseURL),
			openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
			openai.WithModel(cfg.Model),
		)
	case "ollama":
		llm, err = ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
		)
	default:
		err = fmt.Errorf("unknown generation provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return &Client{llm: llm, temperature: cfg.Temperature}, nil
}

// Generate runs one chat completion, retrying once on transient failure.
func (c *Client) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userPrompt),
	}

	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, callTimeout)
		res, err := c.llm.GenerateContent(callCtx, messages, llms.WithTemperature(c.temperature))
		cancel()
		if err == nil {
			if len(res.Choices) == 0 {
				return "", errors.New("model returned no choices")
			}
			return res.Choices[0].Content, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if permanent(err) {
			return "", err
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("generation call failed")
	}
	return "", lastErr
}

// permanent reports whether a failed call will keep failing: bad requests and
// auth errors do not recover on retry, unlike timeouts and rate limits.
func permanent(err error) bool {
	msg := err.Error()
	for _, marker := range []string{
		"status code: 400",
		"status code: 401",
		"status code: 403",
		"status code: 404",
		"unauthorized",
		"invalid api key",
	} {
		if strings.Contains(strings.ToLower(msg), marker) {
			return true
		}
	}
	return false
}
