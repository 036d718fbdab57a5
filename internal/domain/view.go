package domain

import "strings"

// View names one of the six image slots of a design.
type View string

const (
	ViewFront     View = "front"
	ViewRight     View = "right"
	ViewBack      View = "back"
	ViewLeft      View = "left"
	ViewFlatFront View = "flatFront"
	ViewFlatBack  View = "flatBack"
)

// RotationViews lists the modeled views in turntable order (0/90/180/270 degrees).
var RotationViews = []View{ViewFront, ViewRight, ViewBack, ViewLeft}

// PrintViews lists the model-free print art views.
var PrintViews = []View{ViewFlatFront, ViewFlatBack}

// AllViews lists every slot in a stable order.
var AllViews = []View{ViewFront, ViewRight, ViewBack, ViewLeft, ViewFlatFront, ViewFlatBack}

// IsFlat reports whether the view is print art rather than a modeled photo.
func (v View) IsFlat() bool {
	return v == ViewFlatFront || v == ViewFlatBack
}

// Valid reports whether v names a known slot.
func (v View) Valid() bool {
	switch v {
	case ViewFront, ViewRight, ViewBack, ViewLeft, ViewFlatFront, ViewFlatBack:
		return true
	default:
		return false
	}
}

// Angle returns the rotation angle in degrees for modeled views and -1 for print views.
func (v View) Angle() int {
	switch v {
	case ViewFront:
		return 0
	case ViewRight:
		return 90
	case ViewBack:
		return 180
	case ViewLeft:
		return 270
	default:
		return -1
	}
}

// ParseView accepts the canonical slot names case-insensitively, plus the
// kebab-case print aliases used in download URLs.
func ParseView(raw string) (View, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "front":
		return ViewFront, true
	case "right":
		return ViewRight, true
	case "back":
		return ViewBack, true
	case "left":
		return ViewLeft, true
	case "flatfront", "flat-front", "print-front":
		return ViewFlatFront, true
	case "flatback", "flat-back", "print-back":
		return ViewFlatBack, true
	default:
		return "", false
	}
}

// ViewSet holds the image for each slot. A nil field means the slot has not
// been generated yet.
type ViewSet struct {
	Front     *Image `json:"front"`
	Right     *Image `json:"right"`
	Back      *Image `json:"back"`
	Left      *Image `json:"left"`
	FlatFront *Image `json:"flatFront"`
	FlatBack  *Image `json:"flatBack"`
}

// Get returns the image stored in the slot, or nil.
func (s ViewSet) Get(v View) *Image {
	switch v {
	case ViewFront:
		return s.Front
	case ViewRight:
		return s.Right
	case ViewBack:
		return s.Back
	case ViewLeft:
		return s.Left
	case ViewFlatFront:
		return s.FlatFront
	case ViewFlatBack:
		return s.FlatBack
	default:
		return nil
	}
}

// With returns a copy of the set with the slot replaced by img (which may be nil).
func (s ViewSet) With(v View, img *Image) ViewSet {
	switch v {
	case ViewFront:
		s.Front = img
	case ViewRight:
		s.Right = img
	case ViewBack:
		s.Back = img
	case ViewLeft:
		s.Left = img
	case ViewFlatFront:
		s.FlatFront = img
	case ViewFlatBack:
		s.FlatBack = img
	}
	return s
}

// Has reports whether the slot is populated.
func (s ViewSet) Has(v View) bool {
	return s.Get(v) != nil
}

// Missing returns the subset of candidates whose slot is still empty, in the
// order given.
func (s ViewSet) Missing(candidates ...View) []View {
	var out []View
	for _, v := range candidates {
		if !s.Has(v) {
			out = append(out, v)
		}
	}
	return out
}

// Populated returns the views holding an image, in AllViews order.
func (s ViewSet) Populated() []View {
	var out []View
	for _, v := range AllViews {
		if s.Has(v) {
			out = append(out, v)
		}
	}
	return out
}

// IsEmpty reports whether no slot is populated.
func (s ViewSet) IsEmpty() bool {
	return len(s.Populated()) == 0
}

// Merge copies every populated slot of patch over s. Empty slots in patch
// never clear a populated slot in s.
func (s ViewSet) Merge(patch ViewSet) ViewSet {
	for _, v := range AllViews {
		if img := patch.Get(v); img != nil {
			s = s.With(v, img)
		}
	}
	return s
}

// RotationReady reports whether all four modeled views exist.
func (s ViewSet) RotationReady() bool {
	return len(s.Missing(RotationViews...)) == 0
}
