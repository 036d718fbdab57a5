package studio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"mockupstudio/internal/domain"
)

// Attempt describes one call to the image backend.
type Attempt struct {
	DesignID   string
	View       domain.View
	Provider   string
	PromptHash string
	Input      domain.ImageInputKind
	Success    bool
	Duration   time.Duration
	At         time.Time
}

// Recorder receives every generation attempt. Implementations must be safe
// for concurrent use and must not block for long.
type Recorder interface {
	Record(ctx context.Context, a Attempt)
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, Attempt) {}

func promptHash(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:8])
}
