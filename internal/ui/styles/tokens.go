// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Buttons
	TokenButtonText        ColorToken = "button.text"
	TokenButtonPrimaryBg   ColorToken = "button.primary.bg"
	TokenButtonSecondaryBg ColorToken = "button.secondary.bg"

	// Toast notifications
	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
	TokenToastInfo    ColorToken = "toast.info"
	TokenToastWarn    ColorToken = "toast.warn"

	// Coach marks
	TokenCoachScrim      ColorToken = "coach.scrim"
	TokenCoachRing       ColorToken = "coach.ring"
	TokenCoachCardBg     ColorToken = "coach.card.bg"
	TokenCoachCardBorder ColorToken = "coach.card.border"
	TokenCoachTitle      ColorToken = "coach.title"
	TokenCoachProgress   ColorToken = "coach.progress"

	// Home screen
	TokenAccent ColorToken = "accent"
	TokenPoints ColorToken = "points"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,

		TokenBorderDefault,
		TokenBorderFocus,

		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		TokenButtonText,
		TokenButtonPrimaryBg,
		TokenButtonSecondaryBg,

		TokenToastSuccess,
		TokenToastError,
		TokenToastInfo,
		TokenToastWarn,

		TokenCoachScrim,
		TokenCoachRing,
		TokenCoachCardBg,
		TokenCoachCardBorder,
		TokenCoachTitle,
		TokenCoachProgress,

		TokenAccent,
		TokenPoints,
	}
}
