package domain

import "strings"

// Apparel enumerates the supported garments.
type Apparel string

const (
	ApparelTShirt Apparel = "TSHIRT"
	ApparelPolo   Apparel = "POLO"
	ApparelHoodie Apparel = "HOODIE"
)

// Apparels lists garments in display order.
var Apparels = []Apparel{ApparelTShirt, ApparelPolo, ApparelHoodie}

// ParseApparel normalises free-form input; unknown values fall back to a t-shirt.
func ParseApparel(raw string) Apparel {
	switch Apparel(strings.ToUpper(strings.TrimSpace(raw))) {
	case ApparelPolo:
		return ApparelPolo
	case ApparelHoodie:
		return ApparelHoodie
	default:
		return ApparelTShirt
	}
}

// Gender tags the human model wearing the garment.
type Gender string

const (
	GenderFemale Gender = "FEMALE"
	GenderMale   Gender = "MALE"
)

// Flip returns the opposite gender.
func (g Gender) Flip() Gender {
	if g == GenderMale {
		return GenderFemale
	}
	return GenderMale
}

// ParseGender defaults to MALE, matching the prompt builder default.
func ParseGender(raw string) Gender {
	if Gender(strings.ToUpper(strings.TrimSpace(raw))) == GenderFemale {
		return GenderFemale
	}
	return GenderMale
}

// TextEffect is a stylistic treatment applied to rendered text when a view
// is (re)generated. It is not stored on a design.
type TextEffect string

const (
	EffectNone         TextEffect = "NONE"
	EffectNeonGlow     TextEffect = "NEON_GLOW"
	EffectHeavyOutline TextEffect = "HEAVY_OUTLINE"
	EffectDropShadow   TextEffect = "DROP_SHADOW"
	EffectGlitch       TextEffect = "GLITCH"
)

// TextEffects lists effects in display order.
var TextEffects = []TextEffect{EffectNone, EffectNeonGlow, EffectHeavyOutline, EffectDropShadow, EffectGlitch}

// ParseTextEffect returns EffectNone for empty or unknown input.
func ParseTextEffect(raw string) TextEffect {
	switch e := TextEffect(strings.ToUpper(strings.TrimSpace(raw))); e {
	case EffectNeonGlow, EffectHeavyOutline, EffectDropShadow, EffectGlitch:
		return e
	default:
		return EffectNone
	}
}
