package gemini

import (
	"context"
	"errors"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/promptframe/promptframe-api/pkg/providers"
)

const defaultModel = "gemini-2.0-flash-exp-image-generation"

// Generator produces images through the Gemini API. Unlike fal.ai, Gemini
// returns the image inline rather than hosting it, so Asset.Data is set and
// Asset.URL stays empty.
type Generator struct {
	client *genai.Client
	model  string
}

// New creates a Gemini-backed generator.
func New(ctx context.Context, apiKey string) (*Generator, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Generator{client: client, model: defaultModel}, nil
}

// Close closes the underlying API client.
func (g *Generator) Close() error {
	return g.client.Close()
}

// Generate asks the model for a single image and extracts the first inline
// blob from the response.
func (g *Generator) Generate(ctx context.Context, prompt string) (*providers.Asset, error) {
	model := g.client.GenerativeModel(g.model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("no content generated")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if blob, ok := part.(genai.Blob); ok {
			return &providers.Asset{
				Data:        blob.Data,
				ContentType: blob.MIMEType,
			}, nil
		}
	}

	return nil, errors.New("no image in model response")
}

var _ providers.Generator = (*Generator)(nil)
