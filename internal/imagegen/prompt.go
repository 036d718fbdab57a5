package imagegen

import (
	"fmt"
	"strings"

	"mockupstudio/internal/domain"
)

const (
	// ContinuityMarker heads the clause emitted whenever a reference image
	// accompanies the prompt.
	ContinuityMarker = "STRICT VISUAL CONTINUITY"
	// IsolationMarker is the background instruction of every print file prompt.
	IsolationMarker = "SOLID WHITE BACKGROUND"
)

// PromptRequest carries everything the builder needs for one view.
type PromptRequest struct {
	Concept      string
	Style        string
	View         domain.View
	Apparel      domain.Apparel
	Logo         *domain.LogoConfig
	Effect       domain.TextEffect
	Gender       domain.Gender
	HasReference bool
	BackConcept  string
	// ModelSwap asks the backend to keep the garment from the reference and
	// replace only the person wearing it.
	ModelSwap bool
}

// BuildPrompt turns a request into the natural-language instruction for the
// image model. It has no side effects.
func BuildPrompt(req PromptRequest) string {
	style, _ := ResolveStyle(req.Style)
	switch req.View {
	case domain.ViewFlatFront:
		return joinLines(flatFrontLines(req, style))
	case domain.ViewFlatBack:
		return joinLines(flatBackLines(req, style))
	default:
		return joinLines(modeledLines(req, style))
	}
}

// TextClause is the mandatory lettering instruction shared by every view.
func TextClause(concept string) string {
	return fmt.Sprintf("The design must prominently feature the text: \"%s\". Spelling must be exact: \"%s\". Integrate it artistically but keep it legible.", concept, concept)
}

func baseDescription(concept string, style Style, effect domain.TextEffect) []string {
	lines := []string{fmt.Sprintf("Design concept: \"%s\" visualised as %s.", concept, style.Prompt)}
	if clause := effectClause(effect); clause != "" {
		lines = append(lines, clause)
	}
	return append(lines, TextClause(concept))
}

func flatFrontLines(req PromptRequest, style Style) []string {
	lines := []string{"Create a high-resolution, vector-style print file for the front artwork."}
	lines = append(lines, baseDescription(req.Concept, style, req.Effect)...)
	lines = append(lines, flatRequirements()...)
	lines = append(lines,
		"Detail: readable mathematical symbols, logic gates and data streams.",
		"Palette: neon cyan, magenta, electric purple, toxic green.",
		"Composition: centered, balanced, high contrast.",
	)
	if req.Logo != nil {
		lines = append(lines, "Logo: integrate the provided company logo into the artwork and blend it with the style.")
	}
	return lines
}

func flatBackLines(req PromptRequest, style Style) []string {
	lines := []string{"Create a high-resolution, vector-style print file for the back artwork."}
	if back := strings.TrimSpace(req.BackConcept); back != "" {
		lines = append(lines, fmt.Sprintf("Back design concept: \"%s\".", back))
	} else {
		lines = append(lines, fmt.Sprintf("Back design concept: a continuation of \"%s\" sized for the back panel.", req.Concept))
	}
	lines = append(lines, fmt.Sprintf("Style: %s.", style.Prompt))
	if clause := effectClause(req.Effect); clause != "" {
		lines = append(lines, clause)
	}
	lines = append(lines, TextClause(req.Concept))
	lines = append(lines, flatRequirements()...)
	lines = append(lines,
		"Content: a larger diagram of the concept with more whitespace than the front.",
		"Palette: matches the front artwork.",
	)
	if req.Logo != nil && req.Logo.Placement.OnBack() {
		lines = append(lines, "Logo: place the provided logo small at the neck area or in the center back as requested.")
	}
	return lines
}

func flatRequirements() []string {
	return []string{
		"Format: digital artwork isolated on a " + IsolationMarker + " (or transparent).",
		"No person, no mannequin, no fabric folds, no perspective. Only the graphic art.",
	}
}

func modeledLines(req PromptRequest, style Style) []string {
	garment := apparelDescription(req.Apparel)
	adjective, noun := genderTerms(req.Gender)

	lines := []string{"Generate a photorealistic fashion studio photograph."}
	lines = append(lines, angleLine(req.View, adjective, noun, garment))
	if req.HasReference {
		lines = append(lines, continuityLines(req)...)
	}
	lines = append(lines, "Garment: "+garment+".", "Graphic design:")
	lines = append(lines, baseDescription(req.Concept, style, req.Effect)...)
	lines = append(lines, placementOverride(req))
	if req.Logo != nil {
		lines = append(lines, logoLines(req, garment)...)
	}
	lines = append(lines,
		"Requirements:",
		"1. Coherence: model, lighting and background stay consistent across the whole set.",
		"2. Framing: medium shot from the waist up, subject vertically centered, head and face fully visible.",
		"3. Lighting: dramatic cyberpunk studio lighting with cyan and magenta rim lights.",
		"4. Material: realistic fabric texture, folds and drape for "+garment+".",
		"5. Backdrop: minimalist dark studio so the neon colors pop.",
	)
	return lines
}

func angleLine(view domain.View, adjective, noun, garment string) string {
	switch view {
	case domain.ViewRight:
		return fmt.Sprintf("Right side profile view (90 degrees rotation), medium shot of a %s %s model wearing %s. Centered, full head and torso visible.", adjective, noun, garment)
	case domain.ViewBack:
		return fmt.Sprintf("Direct back view (180 degrees rotation), medium shot of a %s %s model wearing %s. Centered, full head and torso visible.", adjective, noun, garment)
	case domain.ViewLeft:
		return fmt.Sprintf("Left side profile view (270 degrees rotation), medium shot of a %s %s model wearing %s. Centered, full head and torso visible.", adjective, noun, garment)
	default:
		return fmt.Sprintf("Front-facing portrait (0 degrees), medium shot of a %s %s streetwear model wearing %s. Centered; the full head, face and torso are visible, never crop the head.", adjective, noun, garment)
	}
}

func placementOverride(req PromptRequest) string {
	switch req.View {
	case domain.ViewRight:
		return "The design wraps from the chest around the side of the ribs; sleeve detail is visible. Keep continuity with the front."
	case domain.ViewBack:
		if back := strings.TrimSpace(req.BackConcept); back != "" {
			return fmt.Sprintf("Back design: feature the concept \"%s\" on the back.", back)
		}
		return "Back design: a related but distinct continuation of the front concept, such as a large schematic or data grid."
	case domain.ViewLeft:
		return "The design wraps from the chest around the side; a small identifier code or patch is visible on the sleeve. Keep continuity with the front."
	default:
		return frontPlacement(req.Apparel)
	}
}

func continuityLines(req PromptRequest) []string {
	lines := []string{
		"*** CRITICAL: " + ContinuityMarker + " REQUIRED ***",
		fmt.Sprintf("A reference image of the garment is provided. Render the exact same design from the requested angle (%s view); do not create a new version or variation.", req.View),
		"Preserve geometry: every shape of the artwork keeps its topology and side, adjusted only for perspective.",
		"Preserve color: reuse the exact hues of the reference without shifting them.",
		"Preserve logo: the logo stays fixed relative to the seams; hide it when the angle would hide it.",
		fmt.Sprintf("Before rendering, identify the lettering \"%s\", the dominant graphic element and the logo position, then apply them rigidly.", req.Concept),
	}
	if req.ModelSwap {
		lines = append(lines,
			"Model swap: keep the garment and its print 100% identical and change only the person wearing it.",
		)
	}
	return lines
}

func logoLines(req PromptRequest, garment string) []string {
	if req.HasReference {
		return []string{
			"Branding integrity:",
			"- The reference image already contains the brand logo; keep its appearance and placement.",
			"- Do not generate a new logo and do not duplicate it.",
			"- Transform the logo with the body rotation and omit it where the angle hides it.",
		}
	}
	return []string{
		"Branding instruction:",
		"- A logo image is provided as input.",
		fmt.Sprintf("- Placement: put the provided logo %s of %s.", placementPhrase(req.Logo.Placement), garment),
		fmt.Sprintf("- Size: %s.", sizePhrase(req.Logo.Size)),
		"- The logo looks screen-printed or embroidered; the artwork frames the logo instead of covering it.",
	}
}

func joinLines(lines []string) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
