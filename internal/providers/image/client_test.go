package image

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"strings"
	"testing"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/providers/genai"
)

type stubBackend struct {
	img       *domain.Image
	err       error
	calls     int
	lastInput domain.ImageInput
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Generate(ctx context.Context, prompt string, input domain.ImageInput) (*domain.Image, error) {
	s.calls++
	s.lastInput = input
	return s.img, s.err
}

type stubGeminiClient struct {
	lastReq genai.ImageRequest
}

func (s *stubGeminiClient) GenerateImage(ctx context.Context, req genai.ImageRequest) (*genai.InlineImage, error) {
	s.lastReq = req
	return &genai.InlineImage{MIMEType: "image/webp", Data: []byte("webp")}, nil
}

func (s *stubGeminiClient) Model() string { return "test-model" }

func TestClientAbsorbsBackendErrors(t *testing.T) {
	backend := &stubBackend{err: errors.New("boom")}
	client := NewClient(backend, nil)
	if img := client.Generate(context.Background(), "p", domain.NoImage()); img != nil {
		t.Fatalf("expected nil image on failure, got %+v", img)
	}

	backend.err = nil
	backend.img = &domain.Image{MIMEType: "image/png"}
	if img := client.Generate(context.Background(), "p", domain.NoImage()); img != nil {
		t.Fatalf("expected empty image to count as failure")
	}
}

func TestClientSkipsCancelledContext(t *testing.T) {
	backend := &stubBackend{img: &domain.Image{Data: []byte{1}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if img := NewClient(backend, nil).Generate(ctx, "p", domain.NoImage()); img != nil || backend.calls != 0 {
		t.Fatalf("cancelled context should short-circuit: img=%v calls=%d", img, backend.calls)
	}
}

func TestGeminiGeneratorForwardsInput(t *testing.T) {
	stub := &stubGeminiClient{}
	gen := &GeminiGenerator{client: stub}
	ref := domain.NewImage("image/jpeg", []byte("ref"))

	img, err := gen.Generate(context.Background(), "prompt", domain.ReferenceImage(ref))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if img.MIMEType != "image/webp" || string(img.Data) != "webp" {
		t.Fatalf("unexpected image %+v", img)
	}
	if stub.lastReq.Input == nil || stub.lastReq.Input.MIMEType != "image/jpeg" {
		t.Fatalf("reference not forwarded: %+v", stub.lastReq.Input)
	}

	if _, err := gen.Generate(context.Background(), "prompt", domain.NoImage()); err != nil {
		t.Fatalf("generate without input: %v", err)
	}
	if stub.lastReq.Input != nil {
		t.Fatalf("expected no input image")
	}
	if !strings.HasSuffix(gen.Name(), "test-model") {
		t.Fatalf("name = %q", gen.Name())
	}
}

func TestSyntheticGeneratorIsDeterministicPNG(t *testing.T) {
	gen := &SyntheticGenerator{Size: 64}
	a, err := gen.Generate(context.Background(), "same prompt", domain.NoImage())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, _ := gen.Generate(context.Background(), "same prompt", domain.NoImage())
	c, _ := gen.Generate(context.Background(), "other prompt", domain.NoImage())

	if !bytes.Equal(a.Data, b.Data) {
		t.Fatalf("synthetic output is not deterministic")
	}
	if bytes.Equal(a.Data, c.Data) {
		t.Fatalf("different prompts rendered identical images")
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(a.Data))
	if err != nil || cfg.Width != 64 {
		t.Fatalf("unexpected png: %+v err=%v", cfg, err)
	}
}

func TestNewBackend(t *testing.T) {
	if _, err := NewBackend(context.Background(), ProviderGemini, Settings{}); err == nil {
		t.Fatalf("gemini without key should fail")
	}
	backend, err := NewBackend(context.Background(), "SYNTHETIC", Settings{})
	if err != nil || backend.Name() != "synthetic" {
		t.Fatalf("synthetic backend: %v %v", backend, err)
	}
	backend, err = NewBackend(context.Background(), "gemini", Settings{APIKey: "k"})
	if err != nil || !strings.HasPrefix(backend.Name(), "gemini:") {
		t.Fatalf("gemini backend: %v %v", backend, err)
	}
	backend, err = NewBackend(context.Background(), ProviderGeminiSDK, Settings{AllowMissingKey: true})
	if err != nil || !strings.HasPrefix(backend.Name(), "gemini:") {
		t.Fatalf("keyless sdk backend should degrade to rest: %v %v", backend, err)
	}
	keyless, err := NewBackend(context.Background(), ProviderGemini, Settings{AllowMissingKey: true})
	if err != nil {
		t.Fatalf("keyless gemini backend: %v", err)
	}
	if img := NewClient(keyless, nil).Generate(context.Background(), "x", domain.NoImage()); img != nil {
		t.Fatalf("keyless backend should produce no image")
	}
	if _, err := NewBackend(context.Background(), "dall-e", Settings{}); err == nil {
		t.Fatalf("unknown provider should fail")
	}
}

func TestSDKFormat(t *testing.T) {
	if sdkFormat("image/JPEG") != "jpeg" || sdkFormat("") != "png" {
		t.Fatalf("unexpected sdk formats")
	}
}
