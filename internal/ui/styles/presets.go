package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset matches the values in styles.go (dark variants).
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default spotlight theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:       "#CCCCCC",
		TokenTextSecondary:     "#BBBBBB",
		TokenTextMuted:         "#696969",
		TokenBorderDefault:     "#696969",
		TokenBorderFocus:       "#54A0FF",
		TokenStatusSuccess:     "#73F59F",
		TokenStatusWarning:     "#FECA57",
		TokenStatusError:       "#FF8787",
		TokenButtonText:        "#FFFFFF",
		TokenButtonPrimaryBg:   "#1A5276",
		TokenButtonSecondaryBg: "#2D3436",
		TokenToastSuccess:      "#73F59F",
		TokenToastError:        "#FF8787",
		TokenToastInfo:         "#54A0FF",
		TokenToastWarn:         "#FECA57",
		TokenCoachScrim:        "#000000",
		TokenCoachRing:         "#FFFFFF",
		TokenCoachCardBg:       "#1E1E2E",
		TokenCoachCardBorder:   "#8C8C8C",
		TokenCoachTitle:        "#FFFFFF",
		TokenCoachProgress:     "#8C8C8C",
		TokenAccent:            "#7D56F4",
		TokenPoints:            "#FF9F43",
	},
}

// CatppuccinMochaPreset uses the Catppuccin Mocha palette.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:       "#CDD6F4",
		TokenTextSecondary:     "#BAC2DE",
		TokenTextMuted:         "#6C7086",
		TokenBorderDefault:     "#45475A",
		TokenBorderFocus:       "#89B4FA",
		TokenStatusSuccess:     "#A6E3A1",
		TokenStatusWarning:     "#F9E2AF",
		TokenStatusError:       "#F38BA8",
		TokenButtonText:        "#1E1E2E",
		TokenButtonPrimaryBg:   "#89B4FA",
		TokenButtonSecondaryBg: "#585B70",
		TokenToastSuccess:      "#A6E3A1",
		TokenToastError:        "#F38BA8",
		TokenToastInfo:         "#89B4FA",
		TokenToastWarn:         "#F9E2AF",
		TokenCoachScrim:        "#11111B",
		TokenCoachRing:         "#F5E0DC",
		TokenCoachCardBg:       "#313244",
		TokenCoachCardBorder:   "#B4BEFE",
		TokenCoachTitle:        "#F5E0DC",
		TokenCoachProgress:     "#9399B2",
		TokenAccent:            "#CBA6F7",
		TokenPoints:            "#FAB387",
	},
}

// DraculaPreset uses the Dracula palette.
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:       "#F8F8F2",
		TokenTextSecondary:     "#E2E2DC",
		TokenTextMuted:         "#6272A4",
		TokenBorderDefault:     "#44475A",
		TokenBorderFocus:       "#BD93F9",
		TokenStatusSuccess:     "#50FA7B",
		TokenStatusWarning:     "#F1FA8C",
		TokenStatusError:       "#FF5555",
		TokenButtonText:        "#282A36",
		TokenButtonPrimaryBg:   "#BD93F9",
		TokenButtonSecondaryBg: "#44475A",
		TokenToastSuccess:      "#50FA7B",
		TokenToastError:        "#FF5555",
		TokenToastInfo:         "#8BE9FD",
		TokenToastWarn:         "#F1FA8C",
		TokenCoachScrim:        "#191A21",
		TokenCoachRing:         "#FF79C6",
		TokenCoachCardBg:       "#282A36",
		TokenCoachCardBorder:   "#BD93F9",
		TokenCoachTitle:        "#FF79C6",
		TokenCoachProgress:     "#6272A4",
		TokenAccent:            "#BD93F9",
		TokenPoints:            "#FFB86C",
	},
}

// NordPreset uses the Nord palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:       "#ECEFF4",
		TokenTextSecondary:     "#E5E9F0",
		TokenTextMuted:         "#4C566A",
		TokenBorderDefault:     "#3B4252",
		TokenBorderFocus:       "#88C0D0",
		TokenStatusSuccess:     "#A3BE8C",
		TokenStatusWarning:     "#EBCB8B",
		TokenStatusError:       "#BF616A",
		TokenButtonText:        "#2E3440",
		TokenButtonPrimaryBg:   "#88C0D0",
		TokenButtonSecondaryBg: "#4C566A",
		TokenToastSuccess:      "#A3BE8C",
		TokenToastError:        "#BF616A",
		TokenToastInfo:         "#81A1C1",
		TokenToastWarn:         "#EBCB8B",
		TokenCoachScrim:        "#242933",
		TokenCoachRing:         "#8FBCBB",
		TokenCoachCardBg:       "#3B4252",
		TokenCoachCardBorder:   "#81A1C1",
		TokenCoachTitle:        "#88C0D0",
		TokenCoachProgress:     "#D8DEE9",
		TokenAccent:            "#B48EAD",
		TokenPoints:            "#D08770",
	},
}

// HighContrastPreset maximizes legibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:       "#FFFFFF",
		TokenTextSecondary:     "#FFFFFF",
		TokenTextMuted:         "#C0C0C0",
		TokenBorderDefault:     "#FFFFFF",
		TokenBorderFocus:       "#FFFF00",
		TokenStatusSuccess:     "#00FF00",
		TokenStatusWarning:     "#FFFF00",
		TokenStatusError:       "#FF0000",
		TokenButtonText:        "#000000",
		TokenButtonPrimaryBg:   "#FFFF00",
		TokenButtonSecondaryBg: "#FFFFFF",
		TokenToastSuccess:      "#00FF00",
		TokenToastError:        "#FF0000",
		TokenToastInfo:         "#00FFFF",
		TokenToastWarn:         "#FFFF00",
		TokenCoachScrim:        "#000000",
		TokenCoachRing:         "#FFFF00",
		TokenCoachCardBg:       "#000000",
		TokenCoachCardBorder:   "#FFFFFF",
		TokenCoachTitle:        "#FFFF00",
		TokenCoachProgress:     "#FFFFFF",
		TokenAccent:            "#00FFFF",
		TokenPoints:            "#FFFF00",
	},
}
