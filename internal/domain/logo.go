package domain

import "strings"

// LogoPlacement is one of the seven anchor zones a logo can occupy.
type LogoPlacement string

const (
	PlacementLeftChest   LogoPlacement = "LEFT_CHEST"
	PlacementCenterChest LogoPlacement = "CENTER_CHEST"
	PlacementRightSleeve LogoPlacement = "RIGHT_SLEEVE"
	PlacementBackNeck    LogoPlacement = "BACK_NECK"
	PlacementLeftSleeve  LogoPlacement = "LEFT_SLEEVE"
	PlacementRightChest  LogoPlacement = "RIGHT_CHEST"
	PlacementCenterBack  LogoPlacement = "CENTER_BACK"
)

// LogoPlacements lists anchors in display order.
var LogoPlacements = []LogoPlacement{
	PlacementLeftChest,
	PlacementCenterChest,
	PlacementRightChest,
	PlacementLeftSleeve,
	PlacementRightSleeve,
	PlacementBackNeck,
	PlacementCenterBack,
}

// OnBack reports whether the placement sits on the back of the garment.
func (p LogoPlacement) OnBack() bool {
	return p == PlacementBackNeck || p == PlacementCenterBack
}

// ParseLogoPlacement reports false for unknown anchors.
func ParseLogoPlacement(raw string) (LogoPlacement, bool) {
	p := LogoPlacement(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range LogoPlacements {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// LogoSize is the size tier of the printed logo.
type LogoSize string

const (
	LogoSmall  LogoSize = "SMALL"
	LogoMedium LogoSize = "MEDIUM"
	LogoLarge  LogoSize = "LARGE"
)

// LogoSizes lists size tiers in display order.
var LogoSizes = []LogoSize{LogoSmall, LogoMedium, LogoLarge}

// ParseLogoSize reports false for unknown tiers.
func ParseLogoSize(raw string) (LogoSize, bool) {
	switch s := LogoSize(strings.ToUpper(strings.TrimSpace(raw))); s {
	case LogoSmall, LogoMedium, LogoLarge:
		return s, true
	default:
		return "", false
	}
}

// LogoConfig is the brand logo attached to a design at creation time.
type LogoConfig struct {
	Image     Image         `json:"image"`
	Placement LogoPlacement `json:"placement"`
	Size      LogoSize      `json:"size"`
}
