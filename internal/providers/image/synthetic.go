package image

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"time"

	"mockupstudio/internal/domain"
)

// SyntheticGenerator renders deterministic placeholder PNGs. It keeps the
// studio usable offline and in CI without an API key.
type SyntheticGenerator struct {
	Size  int
	Delay time.Duration
}

func NewSyntheticGenerator() *SyntheticGenerator {
	return &SyntheticGenerator{Size: 512}
}

func (s *SyntheticGenerator) Name() string {
	return "synthetic"
}

func (s *SyntheticGenerator) Generate(ctx context.Context, prompt string, input domain.ImageInput) (*domain.Image, error) {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	var inputDigest string
	if img, ok := input.Image(); ok {
		sum := sha256.Sum256(img.Data)
		inputDigest = hex.EncodeToString(sum[:4])
	}
	seed := deterministicSeed(prompt, input.Kind(), inputDigest)
	data, err := renderSyntheticImage(s.Size, s.Size, seed)
	if err != nil {
		return nil, err
	}
	img := domain.NewImage("image/png", data)
	return &img, nil
}

func renderSyntheticImage(width, height int, seed string) ([]byte, error) {
	if width <= 0 {
		width = 512
	}
	if height <= 0 {
		height = width
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{colorFromSeed(seed, 0)}, image.Point{}, draw.Src)

	accent := colorFromSeed(seed, 1)
	stripe := max(16, height/12)
	for y := 0; y < height; y += stripe * 2 {
		draw.Draw(img, image.Rect(0, y, width, min(height, y+stripe)), &image.Uniform{accent}, image.Point{}, draw.Over)
	}

	diagonal := colorFromSeed(seed, 2)
	step := max(16, width/32)
	for x := 0; x < width; x += step {
		for y := 0; y < height && x+y < width; y++ {
			img.Set(x+y, y, diagonal)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("image: encode synthetic png: %w", err)
	}
	return buf.Bytes(), nil
}

func colorFromSeed(seed string, shift int) color.RGBA {
	doubled := seed + seed
	start := (shift * 6) % len(seed)
	segment := doubled[start : start+6]
	return color.RGBA{R: hexByte(segment[0:2]), G: hexByte(segment[2:4]), B: hexByte(segment[4:6]), A: 255}
}

func hexByte(s string) uint8 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

func deterministicSeed(parts ...any) string {
	hasher := sha256.New()
	for _, part := range parts {
		fmt.Fprintf(hasher, "%v|", part)
	}
	return hex.EncodeToString(hasher.Sum(nil))[:16]
}

var _ Backend = (*SyntheticGenerator)(nil)
