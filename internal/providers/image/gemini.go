package image

import (
	"context"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/providers/genai"
)

type geminiClient interface {
	GenerateImage(ctx context.Context, req genai.ImageRequest) (*genai.InlineImage, error)
	Model() string
}

// GeminiGenerator talks to the Gemini REST endpoint.
type GeminiGenerator struct {
	client geminiClient
}

func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

func (g *GeminiGenerator) Name() string {
	return "gemini:" + g.client.Model()
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, input domain.ImageInput) (*domain.Image, error) {
	req := genai.ImageRequest{Prompt: prompt}
	if img, ok := input.Image(); ok {
		req.Input = &genai.InlineImage{MIMEType: img.MIMEType, Data: img.Data}
	}
	out, err := g.client.GenerateImage(ctx, req)
	if err != nil {
		return nil, err
	}
	img := domain.NewImage(out.MIMEType, out.Data)
	return &img, nil
}

var _ Backend = (*GeminiGenerator)(nil)
