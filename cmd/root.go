// Package cmd implements the spotlight command line.
package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/zjrosen/spotlight/internal/app"
	"github.com/zjrosen/spotlight/internal/config"
	"github.com/zjrosen/spotlight/internal/log"
	"github.com/zjrosen/spotlight/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var version = "dev"

// debugLogPath is relative to the working directory.
const debugLogPath = "debug.log"

// rootOptions holds persistent flag values and the config they resolve to.
type rootOptions struct {
	configFile string
	debug      bool
	user       string

	cfg     config.Config
	cfgPath string
}

// load reads the config and applies flag overrides. It runs before every
// subcommand.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, path, err := loadConfig(o.configFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("user") {
		cfg.UserID = o.user
	}
	o.cfg = cfg
	o.cfgPath = path
	return nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "spotlight",
		Short: "Guided tours for terminal apps",
		Long: `Spotlight runs a demo screen with coach-mark tours: a dimmed backdrop,
a cut-out around the highlighted element and a card with Next, Back and Skip.`,
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(opts)
		},
	}

	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "",
		"config file (default: ~/.config/spotlight/config.yaml)")
	root.PersistentFlags().StringVarP(&opts.user, "user", "u", "",
		"user ID for completion records (overrides user_id)")
	root.Flags().BoolVar(&opts.debug, "debug", false,
		"write debug logs to "+debugLogPath+" (also SPOTLIGHT_DEBUG=1)")

	root.AddCommand(newTourCmd(opts), newConfigCmd(opts))
	return root
}

func runApp(opts *rootOptions) error {
	debug := opts.debug || log.DebugRequested()
	if debug {
		cleanup, err := log.InitWithTeaLog(debugLogPath, "spotlight")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer cleanup()
		log.Info(log.CatConfig, "debug logging enabled", "config", opts.cfgPath)
	}

	cfg := opts.cfg
	if err := styles.ApplyTheme(cfg.Theme.Styles()); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	catalog, err := loadCatalog(cfg.ToursFile)
	if err != nil {
		return err
	}

	svc, _, closeService, err := openService(cfg)
	if err != nil {
		return err
	}

	zone.NewGlobal()
	model := app.NewWithConfig(svc, catalog, cfg, opts.cfgPath, debug)
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Release the watcher and listeners before the service they read from.
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if closeErr := closeService(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
}
