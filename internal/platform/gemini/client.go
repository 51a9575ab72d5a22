package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/devikaharshey/pybot-backend/internal/platform/logger"
)

// Client is the text-completion provider used by the rest of the backend.
// Prompts are fully assembled by the caller; the client only runs them.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type Config struct {
	APIKey string
	Model  string
}

type client struct {
	log   *logger.Logger
	genai *genai.Client
	model string
}

func NewClient(ctx context.Context, cfg Config, baseLog *logger.Logger) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-1.5-flash"
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &client{
		log:   baseLog.With("client", "GeminiClient"),
		genai: gc,
		model: model,
	}, nil
}

func (c *client) GenerateText(ctx context.Context, prompt string) (string, error) {
	result, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("empty completion from model %s", c.model)
	}
	return text, nil
}
