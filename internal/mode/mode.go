// Package mode defines the screen controller interface and shared services.
package mode

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/spotlight/internal/config"
	"github.com/zjrosen/spotlight/internal/flags"
	"github.com/zjrosen/spotlight/internal/mode/shared"
	"github.com/zjrosen/spotlight/internal/tour"
	"github.com/zjrosen/spotlight/internal/ui/coachmark"
)

// Controller defines the interface all screens must implement.
type Controller interface {
	// Init returns initial commands for the screen.
	Init() tea.Cmd

	// Update handles messages and returns updated model and commands.
	Update(msg tea.Msg) (Controller, tea.Cmd)

	// View renders the screen. Tour targets are wrapped with Layout.Mark.
	View() string

	// SetSize handles terminal resize events.
	SetSize(width, height int) Controller

	// Targets lists the tour target IDs the screen marks.
	Targets() []string
}

// Services contains shared dependencies injected into screens.
type Services struct {
	Tours  *tour.Service
	Layout *coachmark.Layout
	Config *config.Config
	Flags  *flags.Registry
	Clock  shared.Clock
}
