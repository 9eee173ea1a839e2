package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback run after ApplyTheme updates colors.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ApplyTheme starts from the default preset, layers the named preset and
// individual overrides on top, then rebuilds every style.
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !IsValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

func colorTargets() map[ColorToken]*lipgloss.AdaptiveColor {
	return map[ColorToken]*lipgloss.AdaptiveColor{
		TokenTextPrimary:       &TextPrimaryColor,
		TokenTextSecondary:     &TextSecondaryColor,
		TokenTextMuted:         &TextMutedColor,
		TokenBorderDefault:     &BorderDefaultColor,
		TokenBorderFocus:       &BorderFocusColor,
		TokenStatusSuccess:     &StatusSuccessColor,
		TokenStatusWarning:     &StatusWarningColor,
		TokenStatusError:       &StatusErrorColor,
		TokenButtonText:        &ButtonTextColor,
		TokenButtonPrimaryBg:   &ButtonPrimaryBgColor,
		TokenButtonSecondaryBg: &ButtonSecondaryBgColor,
		TokenToastSuccess:      &ToastBorderSuccessColor,
		TokenToastError:        &ToastBorderErrorColor,
		TokenToastInfo:         &ToastBorderInfoColor,
		TokenToastWarn:         &ToastBorderWarnColor,
		TokenCoachRing:         &CoachRingColor,
		TokenCoachCardBg:       &CoachCardBgColor,
		TokenCoachCardBorder:   &CoachCardBorderColor,
		TokenCoachTitle:        &CoachTitleColor,
		TokenCoachProgress:     &CoachProgressColor,
		TokenAccent:            &AccentColor,
		TokenPoints:            &PointsColor,
	}
}

func applyColors(colors map[ColorToken]string) {
	targets := colorTargets()
	for token, hex := range colors {
		if token == TokenCoachScrim {
			CoachScrimHex = hex
			continue
		}
		if dst, ok := targets[token]; ok {
			*dst = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		}
	}
}

// rebuildStyles recreates Style values; lipgloss captures colors at creation.
func rebuildStyles() {
	baseButtonStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	PrimaryButtonStyle = baseButtonStyle.Foreground(ButtonTextColor).Background(ButtonPrimaryBgColor)
	SecondaryButtonStyle = baseButtonStyle.Foreground(ButtonTextColor).Background(ButtonSecondaryBgColor)

	CoachCardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CoachCardBorderColor).
		Background(CoachCardBgColor).
		Padding(0, 1)
	CoachTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(CoachTitleColor)
	CoachTextStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	CoachProgressStyle = lipgloss.NewStyle().Foreground(CoachProgressColor)
	CoachRingStyle = lipgloss.NewStyle().Foreground(CoachRingColor)
	CoachArrowStyle = lipgloss.NewStyle().Foreground(CoachCardBorderColor)

	StatusBarStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor).Padding(0, 1)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true).Padding(1, 2)

	for _, fn := range styleRebuilders {
		fn()
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

// IsValidHexColor reports whether s is #RGB or #RRGGBB.
func IsValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
