package image

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"mockupstudio/internal/infra"
	"mockupstudio/internal/providers/genai"
)

// Provider names accepted by NewBackend.
const (
	ProviderGemini    = "gemini"
	ProviderGeminiSDK = "gemini-sdk"
	ProviderSynthetic = "synthetic"
)

// Settings carries what a backend needs to be constructed.
type Settings struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *infra.Logger
	// AllowMissingKey builds a keyless Gemini backend whose calls fail one by
	// one instead of refusing to start.
	AllowMissingKey bool
}

// NewBackend builds the named backend. The choice is explicit: a remote
// backend is never silently replaced by the synthetic one.
func NewBackend(ctx context.Context, name string, s Settings) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ProviderGemini:
		return newGeminiBackend(s)
	case ProviderGeminiSDK:
		if strings.TrimSpace(s.APIKey) == "" && s.AllowMissingKey {
			// the SDK refuses to dial without a key
			return newGeminiBackend(s)
		}
		model := s.Model
		if model == "" {
			model = genai.DefaultModel
		}
		return NewSDKGenerator(ctx, s.APIKey, model)
	case ProviderSynthetic:
		return NewSyntheticGenerator(), nil
	default:
		return nil, fmt.Errorf("image: unknown provider %q", name)
	}
}

func newGeminiBackend(s Settings) (Backend, error) {
	client, err := genai.NewClient(genai.Options{
		APIKey:     s.APIKey,
		BaseURL:    s.BaseURL,
		Model:      s.Model,
		HTTPClient: s.HTTPClient,
		Logger:     s.Logger,
	})
	if err != nil {
		return nil, err
	}
	if !client.HasKey() && !s.AllowMissingKey {
		return nil, fmt.Errorf("image: %s provider requires GEMINI_API_KEY", ProviderGemini)
	}
	return NewGeminiGenerator(client), nil
}
