// Package logo validates and normalises uploaded brand logos before they are
// attached to a design.
package logo

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"

	"mockupstudio/internal/domain"
)

const (
	// MaxBytes is the largest accepted upload.
	MaxBytes = 2 << 20
	// MaxDimension bounds the longest side of the stored logo.
	MaxDimension = 1024
	// MaxSide and MaxPixels bound the declared raster size. Both are checked
	// from the header before any pixel data is decoded.
	MaxSide   = 8192
	MaxPixels = 16_000_000
)

var (
	ErrTooLarge      = errors.New("logo: file exceeds 2 MiB")
	ErrEmpty         = errors.New("logo file is empty")
	ErrNotImage      = errors.New("logo is not a supported image")
	ErrTooManyPixels = errors.New("logo: image dimensions too large")
)

// Validate rejects uploads that must never reach prompt construction.
func Validate(data []byte) error {
	switch {
	case len(data) == 0:
		return ErrEmpty
	case len(data) > MaxBytes:
		return ErrTooLarge
	default:
		return nil
	}
}

// Prepare validates data, decodes it, bounds it to MaxDimension and re-encodes
// it as PNG. Blank placement and size default to LEFT_CHEST and MEDIUM.
func Prepare(data []byte, placement, size string) (domain.LogoConfig, error) {
	if err := Validate(data); err != nil {
		return domain.LogoConfig{}, err
	}

	p := domain.PlacementLeftChest
	if strings.TrimSpace(placement) != "" {
		parsed, ok := domain.ParseLogoPlacement(placement)
		if !ok {
			return domain.LogoConfig{}, fmt.Errorf("%w: unknown logo placement %q", domain.ErrInvalidInput, placement)
		}
		p = parsed
	}
	sz := domain.LogoMedium
	if strings.TrimSpace(size) != "" {
		parsed, ok := domain.ParseLogoSize(size)
		if !ok {
			return domain.LogoConfig{}, fmt.Errorf("%w: unknown logo size %q", domain.ErrInvalidInput, size)
		}
		sz = parsed
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.LogoConfig{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if cfg.Width > MaxSide || cfg.Height > MaxSide || cfg.Width*cfg.Height > MaxPixels {
		return domain.LogoConfig{}, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return domain.LogoConfig{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	b := img.Bounds()
	if b.Dx() > MaxDimension || b.Dy() > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return domain.LogoConfig{}, fmt.Errorf("encode logo: %w", err)
	}
	return domain.LogoConfig{
		Image:     domain.NewImage("image/png", buf.Bytes()),
		Placement: p,
		Size:      sz,
	}, nil
}

// DecodeDataURL accepts "data:<mime>;base64,<payload>" or bare base64.
func DecodeDataURL(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		comma := strings.IndexByte(s, ',')
		if comma < 0 || !strings.HasSuffix(s[:comma], ";base64") {
			return nil, fmt.Errorf("%w: malformed data url", ErrNotImage)
		}
		s = s[comma+1:]
	}
	// reject before decoding anything absurdly large
	if base64.StdEncoding.DecodedLen(len(s)) > MaxBytes+4 {
		return nil, ErrTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return data, nil
}
