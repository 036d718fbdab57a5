package domain

import "strings"

// DefaultImageMIME is assumed when a backend or upload omits the content type.
const DefaultImageMIME = "image/png"

// Image is a binary image with its MIME type.
type Image struct {
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"-"`
}

// NewImage copies data so the caller may reuse its buffer.
func NewImage(mimeType string, data []byte) Image {
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		mimeType = DefaultImageMIME
	}
	return Image{MIMEType: mimeType, Data: append([]byte(nil), data...)}
}

// ImageInputKind discriminates the optional image sent with a prompt.
type ImageInputKind int

const (
	InputNone ImageInputKind = iota
	InputLogo
	InputReference
)

func (k ImageInputKind) String() string {
	switch k {
	case InputLogo:
		return "logo"
	case InputReference:
		return "reference"
	default:
		return "none"
	}
}

// ImageInput is the single optional image accompanying a generation call:
// nothing, the uploaded brand logo, or a previously generated view.
type ImageInput struct {
	kind  ImageInputKind
	image Image
}

// NoImage is a prompt-only input.
func NoImage() ImageInput {
	return ImageInput{kind: InputNone}
}

// LogoImage wraps the uploaded brand logo.
func LogoImage(img Image) ImageInput {
	return ImageInput{kind: InputLogo, image: img}
}

// ReferenceImage wraps a previously generated view used to anchor consistency.
func ReferenceImage(img Image) ImageInput {
	return ImageInput{kind: InputReference, image: img}
}

// Kind reports which variant the input holds.
func (in ImageInput) Kind() ImageInputKind {
	return in.kind
}

// Image returns the carried image; ok is false for NoImage.
func (in ImageInput) Image() (Image, bool) {
	if in.kind == InputNone {
		return Image{}, false
	}
	return in.image, true
}
