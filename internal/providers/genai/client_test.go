package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateImageSendsPromptAndInput(t *testing.T) {
	var captured geminiGenerateContentRequest
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[
			{"text":"here you go"},
			{"inlineData":{"mimeType":"image/jpeg","data":"` + base64.StdEncoding.EncodeToString([]byte("jpeg-bytes")) + `"}}
		]}}]}`))
	}))
	defer srv.Close()

	client, err := NewClient(Options{APIKey: "secret", BaseURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	img, err := client.GenerateImage(context.Background(), ImageRequest{
		Prompt: "render it",
		Input:  &InlineImage{MIMEType: "image/png", Data: []byte("logo")},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if img.MIMEType != "image/jpeg" || string(img.Data) != "jpeg-bytes" {
		t.Fatalf("unexpected image: %+v", img)
	}
	if gotKey != "secret" {
		t.Fatalf("api key header = %q", gotKey)
	}
	if !strings.HasSuffix(gotPath, "/models/"+DefaultModel+":generateContent") {
		t.Fatalf("unexpected path %q", gotPath)
	}
	parts := captured.Contents[0].Parts
	if len(parts) != 2 || parts[0].Text != "render it" || parts[1].InlineData == nil {
		t.Fatalf("unexpected parts: %+v", parts)
	}
	if parts[1].InlineData.Data != base64.StdEncoding.EncodeToString([]byte("logo")) {
		t.Fatalf("input image not forwarded")
	}
}

func TestGenerateImageWithoutImagePart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"refused"}]}}]}`))
	}))
	defer srv.Close()

	client, _ := NewClient(Options{APIKey: "k", BaseURL: srv.URL})
	if _, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "x"}); !errors.Is(err, ErrNoImage) {
		t.Fatalf("expected ErrNoImage, got %v", err)
	}
}

func TestGenerateImageSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exhausted"}}`))
	}))
	defer srv.Close()

	client, _ := NewClient(Options{APIKey: "k", BaseURL: srv.URL})
	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "x"})
	if err == nil || !strings.Contains(err.Error(), "quota exhausted") {
		t.Fatalf("expected quota error, got %v", err)
	}
}

func TestGenerateImageRequiresKey(t *testing.T) {
	client, _ := NewClient(Options{})
	if _, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "x"}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if client.Model() != DefaultModel {
		t.Fatalf("default model = %q", client.Model())
	}
}

func TestFileDataKeyStaysOnAPIHost(t *testing.T) {
	var foreignKey, apiKey string
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		foreignKey = r.Header.Get("x-goog-api-key")
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("foreign-png"))
	}))
	defer foreign.Close()

	var fileURI string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/files/") {
			apiKey = r.Header.Get("x-goog-api-key")
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("api-png"))
			return
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"fileData":{"mimeType":"image/png","fileUri":"` + fileURI + `"}}]}}]}`))
	}))
	defer api.Close()

	client, err := NewClient(Options{APIKey: "secret", BaseURL: api.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	fileURI = foreign.URL + "/out.png"
	img, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "x"})
	if err != nil || string(img.Data) != "foreign-png" {
		t.Fatalf("foreign download: %v", err)
	}
	if foreignKey != "" {
		t.Fatalf("api key leaked to foreign host")
	}

	fileURI = api.URL + "/files/out.png"
	img, err = client.GenerateImage(context.Background(), ImageRequest{Prompt: "x"})
	if err != nil || string(img.Data) != "api-png" {
		t.Fatalf("api download: %v", err)
	}
	if apiKey != "secret" {
		t.Fatalf("api host download key = %q", apiKey)
	}
}
