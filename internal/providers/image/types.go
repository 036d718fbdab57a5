package image

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"mockupstudio/internal/domain"
	"mockupstudio/internal/infra"
)

// Backend is the contract implemented by all image providers. A backend may
// fail; callers that need the absorb-and-continue behaviour wrap it in Client.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string, input domain.ImageInput) (*domain.Image, error)
}

// ErrEmptyImage is returned by backends that produced a response without bytes.
var ErrEmptyImage = errors.New("image: backend returned empty image")

// Client wraps a Backend so that every failure collapses into "no image".
// Errors are logged, never returned.
type Client struct {
	backend Backend
	logger  *infra.Logger
}

// NewClient wraps backend. A nil logger discards output.
func NewClient(backend Backend, logger *infra.Logger) *Client {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		logger = &discard
	}
	return &Client{backend: backend, logger: logger}
}

// Provider returns the backend name.
func (c *Client) Provider() string {
	return c.backend.Name()
}

// Generate returns the produced image or nil. It never panics on backend
// errors and never returns them.
func (c *Client) Generate(ctx context.Context, prompt string, input domain.ImageInput) *domain.Image {
	if err := ctx.Err(); err != nil {
		return nil
	}
	started := time.Now()
	img, err := c.backend.Generate(ctx, strings.TrimSpace(prompt), input)
	if err == nil && (img == nil || len(img.Data) == 0) {
		err = ErrEmptyImage
	}
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("provider", c.backend.Name()).
			Str("input", input.Kind().String()).
			Dur("elapsed", time.Since(started)).
			Msg("image: generation failed")
		return nil
	}
	c.logger.Debug().
		Str("provider", c.backend.Name()).
		Str("input", input.Kind().String()).
		Int("bytes", len(img.Data)).
		Dur("elapsed", time.Since(started)).
		Msg("image: generated")
	return img
}
