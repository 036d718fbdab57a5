package image

import (
	"context"
	"fmt"
	"strings"

	gensdk "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"mockupstudio/internal/domain"
)

// SDKGenerator uses the official Go SDK instead of hand-rolled REST calls.
type SDKGenerator struct {
	client *gensdk.Client
	model  string
}

// NewSDKGenerator dials the Generative Language API. Callers own Close.
func NewSDKGenerator(ctx context.Context, apiKey, model string) (*SDKGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("image: sdk backend requires an api key")
	}
	client, err := gensdk.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("image: create sdk client: %w", err)
	}
	return &SDKGenerator{client: client, model: model}, nil
}

func (g *SDKGenerator) Name() string {
	return "gemini-sdk:" + g.model
}

func (g *SDKGenerator) Close() error {
	return g.client.Close()
}

func (g *SDKGenerator) Generate(ctx context.Context, prompt string, input domain.ImageInput) (*domain.Image, error) {
	parts := []gensdk.Part{gensdk.Text(prompt)}
	if img, ok := input.Image(); ok {
		parts = append(parts, gensdk.ImageData(sdkFormat(img.MIMEType), img.Data))
	}

	resp, err := g.client.GenerativeModel(g.model).GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("image: sdk generate: %w", err)
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(gensdk.Blob); ok && len(blob.Data) > 0 {
				img := domain.NewImage(blob.MIMEType, blob.Data)
				return &img, nil
			}
		}
	}
	return nil, ErrEmptyImage
}

// sdkFormat converts a MIME type to the short form ImageData expects.
func sdkFormat(mime string) string {
	format := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(mime)), "image/")
	if format == "" {
		return "png"
	}
	return format
}

var _ Backend = (*SDKGenerator)(nil)
