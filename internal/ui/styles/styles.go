package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#696969"}

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Buttons
	ButtonTextColor        = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor   = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonSecondaryBgColor = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}

	// Toasts
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastBorderWarnColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}

	// Coach marks. The scrim is a plain hex so it can be blended.
	CoachScrimHex        = "#000000"
	CoachRingColor       = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	CoachCardBgColor     = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
	CoachCardBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}
	CoachTitleColor      = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#FFFFFF"}
	CoachProgressColor   = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#8C8C8C"}

	// Home screen
	AccentColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	PointsColor = lipgloss.AdaptiveColor{Light: "#FF9F43", Dark: "#FF9F43"}

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonPrimaryBgColor)

	SecondaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonSecondaryBgColor)

	CoachCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(CoachCardBorderColor).
			Background(CoachCardBgColor).
			Padding(0, 1)

	CoachTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(CoachTitleColor)
	CoachTextStyle     = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	CoachProgressStyle = lipgloss.NewStyle().Foreground(CoachProgressColor)
	CoachRingStyle     = lipgloss.NewStyle().Foreground(CoachRingColor)
	CoachArrowStyle    = lipgloss.NewStyle().Foreground(CoachCardBorderColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)
