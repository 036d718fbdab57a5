package imagegen

import (
	"strings"

	"mockupstudio/internal/domain"
)

// DefaultStyle is used whenever a request names a style the catalog does not know.
const DefaultStyle = "NEURAL_GRAFFITI"

// Style is a named visual treatment for the concept artwork.
type Style struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
}

var styleOrder = []string{
	"NEURAL_GRAFFITI",
	"PURE_MATH",
	"ALGORITHMIC",
	"GPU_HARDWARE",
	"ABSTRACT_DATA",
	"BIO_DIGITAL",
	"RETRO_SYNTH",
}

var styles = map[string]Style{
	"NEURAL_GRAFFITI": {
		Label:  "Neural Graffiti",
		Prompt: "dense partial differential equations (Navier-Stokes) layered under neon wildstyle graffiti, paint drips and spray textures",
	},
	"PURE_MATH": {
		Label:  "Pure Equations",
		Prompt: "dense glowing formulas, integrals, tensor calculus and physics equations on a dark technical grid, like a chalkboard from the year 3000",
	},
	"ALGORITHMIC": {
		Label:  "Algorithmic Flow",
		Prompt: "Python code fragments, transformer attention maps, logic gates, decision trees and syntax highlighting with a cyberpunk finish",
	},
	"GPU_HARDWARE": {
		Label:  "GPU Hardware",
		Prompt: "GPU memory heatmaps, silicon die photography, circuit traces, gold pins and brushed metal hardware textures",
	},
	"ABSTRACT_DATA": {
		Label:  "Data Topology",
		Prompt: "Voronoi diagrams, neural network topology maps, nodes and edges, and 3D graph visualisations",
	},
	"BIO_DIGITAL": {
		Label:  "Bio-Digital Fusion",
		Prompt: "organic dendrites turning into fiber optic cables, DNA helixes built from binary code, bioluminescent cells fused with silicon logic gates",
	},
	"RETRO_SYNTH": {
		Label:  "Retro Synthwave",
		Prompt: "80s synthwave neon laser grids, chrome lettering, wireframe geometry, CRT scanlines and vaporwave glitches",
	},
}

// Styles returns the catalog in display order.
func Styles() []Style {
	out := make([]Style, 0, len(styleOrder))
	for _, key := range styleOrder {
		s := styles[key]
		s.Key = key
		out = append(out, s)
	}
	return out
}

// ResolveStyle looks up a style by key. Unknown keys resolve to DefaultStyle
// with ok=false so callers can log the fallback.
func ResolveStyle(key string) (Style, bool) {
	key = strings.ToUpper(strings.TrimSpace(key))
	if s, found := styles[key]; found {
		s.Key = key
		return s, true
	}
	s := styles[DefaultStyle]
	s.Key = DefaultStyle
	return s, false
}

func apparelDescription(a domain.Apparel) string {
	switch a {
	case domain.ApparelPolo:
		return "a premium textured pique polo shirt with a crisp collar and button placket"
	case domain.ApparelHoodie:
		return "a heavyweight premium streetwear hoodie with thick drawstrings and a kangaroo pocket"
	default:
		return "a high-quality round-neck cotton jersey t-shirt"
	}
}

func frontPlacement(a domain.Apparel) string {
	switch a {
	case domain.ApparelPolo:
		return "The main graphic spreads artistically across the torso and stays clear of the collar."
	case domain.ApparelHoodie:
		return "The main graphic sits bold across the chest and the kangaroo pocket."
	default:
		return "The main graphic is centered on the chest."
	}
}

func effectClause(e domain.TextEffect) string {
	switch e {
	case domain.EffectNeonGlow:
		return "CRITICAL EFFECT: give every text element, equation and line an intense radiant neon glow so the lettering appears to emit light."
	case domain.EffectHeavyOutline:
		return "CRITICAL EFFECT: wrap every character and mathematical symbol in a thick high-contrast outline, like die-cut stickers or comic book art."
	case domain.EffectDropShadow:
		return "CRITICAL EFFECT: cast deep hard-edged drop shadows from all text and design elements for strong 3D separation from the background."
	case domain.EffectGlitch:
		return "CRITICAL EFFECT: apply digital artifacting, chromatic aberration, signal noise and horizontal tearing to the text and equations."
	default:
		return ""
	}
}

func placementPhrase(p domain.LogoPlacement) string {
	switch p {
	case domain.PlacementLeftChest:
		return "on the left chest (over the heart)"
	case domain.PlacementRightChest:
		return "on the right chest"
	case domain.PlacementCenterChest:
		return "prominently in the center of the chest"
	case domain.PlacementRightSleeve:
		return "on the right sleeve"
	case domain.PlacementLeftSleeve:
		return "on the left sleeve"
	case domain.PlacementBackNeck:
		return "on the back of the neck (yoke area)"
	case domain.PlacementCenterBack:
		return "prominently in the center of the back"
	default:
		return "on the left chest (over the heart)"
	}
}

func sizePhrase(s domain.LogoSize) string {
	switch s {
	case domain.LogoSmall:
		return "small, subtle and tasteful"
	case domain.LogoLarge:
		return "oversized, bold, streetwear scale"
	default:
		return "standard commercial branding size"
	}
}

func genderTerms(g domain.Gender) (adjective, noun string) {
	if g == domain.GenderFemale {
		return "stylish", "female"
	}
	return "cool", "male"
}
