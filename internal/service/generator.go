package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	appErrors "github.com/unclebandit/campaign-generator/internal/errors"
)

const defaultModel = "gemini-2.5-flash"

// ContentGenerator sends one prompt to a generative model and returns its text reply.
type ContentGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	Model() string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string // empty uses the public Gemini endpoint
	// HTTPClient defaults to http.DefaultClient; its timeout is the only one applied.
	HTTPClient *http.Client
}

type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, cfg GeminiConfig) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, appErrors.NewConfigError("API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: cfg.Model}, nil
}

func (g *GeminiGenerator) Model() string {
	return g.model
}

// GenerateJSON asks the model for application/json constrained by schema.
func (g *GeminiGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}
	return resp.Text(), nil
}

var _ ContentGenerator = (*GeminiGenerator)(nil)
