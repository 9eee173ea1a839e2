// Package app contains the root application model.
package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	bubbleshelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/spotlight/internal/config"
	"github.com/zjrosen/spotlight/internal/flags"
	"github.com/zjrosen/spotlight/internal/keys"
	"github.com/zjrosen/spotlight/internal/log"
	"github.com/zjrosen/spotlight/internal/mode"
	"github.com/zjrosen/spotlight/internal/mode/home"
	"github.com/zjrosen/spotlight/internal/mode/shared"
	"github.com/zjrosen/spotlight/internal/pubsub"
	"github.com/zjrosen/spotlight/internal/tour"
	"github.com/zjrosen/spotlight/internal/ui/coachmark"
	"github.com/zjrosen/spotlight/internal/ui/help"
	"github.com/zjrosen/spotlight/internal/ui/logoverlay"
	"github.com/zjrosen/spotlight/internal/ui/styles"
	"github.com/zjrosen/spotlight/internal/ui/toaster"
	"github.com/zjrosen/spotlight/internal/watcher"
)

// statusBarHeight is the row reserved under the screen for key hints.
const statusBarHeight = 1

// resetTimeout bounds the completion delete behind a replay.
const resetTimeout = 2 * time.Second

// TourFinishedMsg is delivered after a tour started by the app finishes.
type TourFinishedMsg struct {
	Key string
}

// ToursChangedMsg reports that the tours file was written.
type ToursChangedMsg struct {
	Path string
}

type replayMsg struct {
	key string
	err error
}

type catalogLoadedMsg struct {
	catalog tour.Catalog
	err     error
}

// Model is the root application state.
type Model struct {
	services mode.Services
	screen   mode.Controller
	coach    coachmark.Model
	catalog  tour.Catalog
	starters []*coachmark.AutoStarter

	keys       keys.AppKeyMap
	statusHelp bubbleshelp.Model

	width  int
	height int

	// Centralized toaster, owned by app rather than the screen
	toaster toaster.Model

	help     help.Model
	showHelp bool

	debugMode    bool
	logOverlay   logoverlay.Model
	logListenCmd tea.Cmd

	// Tour service events (registry and controller changes)
	tourCancel   context.CancelFunc
	tourListener *pubsub.ContinuousListener[tour.Event]

	// OnFinish callbacks run inside the controller; they post here.
	finished chan string

	// Tours file watcher for hot reload
	watcherHandle   *watcher.Watcher
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[string]
}

// NewWithConfig creates the application model. catalog holds the tour
// definitions, configPath is where the config was read from and debugMode
// enables the log overlay (ctrl+x).
func NewWithConfig(svc *tour.Service, catalog tour.Catalog, cfg config.Config, configPath string, debugMode bool) Model {
	fl := flags.New(cfg.Flags)
	layout := coachmark.NewLayout()

	services := mode.Services{
		Tours:  svc,
		Layout: layout,
		Config: &cfg,
		Flags:  fl,
		Clock:  shared.RealClock{},
	}
	log.Info(log.CatConfig, "starting", "config", configPath, "tours", len(catalog.Tours), "user", cfg.UserID)

	tourCtx, tourCancel := context.WithCancel(context.Background())

	m := Model{
		services:     services,
		screen:       home.New(services),
		coach:        coachmark.New(svc, layout, coachConfig(cfg, fl)),
		catalog:      catalog,
		keys:         keys.DefaultAppKeyMap(),
		statusHelp:   bubbleshelp.New(),
		help:         help.New(),
		debugMode:    debugMode,
		logOverlay:   logoverlay.New(),
		tourCancel:   tourCancel,
		tourListener: pubsub.NewContinuousListener(tourCtx, svc.Broker()),
		finished:     make(chan string, 8),
	}
	m.starters = m.buildStarters()

	if debugMode {
		m.logListenCmd = m.logOverlay.StartListening()
	}

	if cfg.ToursFile != "" {
		w, err := watcher.New(watcher.DefaultConfig(cfg.ToursFile))
		if err == nil {
			if err := w.Start(); err == nil {
				m.watcherHandle = w
				var watcherCtx context.Context
				watcherCtx, m.watcherCancel = context.WithCancel(context.Background())
				m.watcherListener = pubsub.NewContinuousListener(watcherCtx, w.Broker())
			} else {
				_ = w.Stop()
				log.ErrorErr(log.CatWatcher, "Failed to start tours watcher", err, "path", cfg.ToursFile)
			}
		} else {
			log.ErrorErr(log.CatWatcher, "Failed to create tours watcher", err, "path", cfg.ToursFile)
		}
		// The app works without hot reload.
	}

	return m
}

// coachConfig maps configuration and flags onto renderer settings.
func coachConfig(cfg config.Config, fl *flags.Registry) coachmark.Config {
	c := coachmark.DefaultConfig()
	c.Metrics = cfg.Tour.Metrics()
	c.SafeArea = cfg.Tour.SafeAreaInsets()
	c.SafeArea.Bottom += statusBarHeight
	c.FadeDuration = cfg.Tour.FadeDuration
	c.DimOpacity = cfg.Tour.DimOpacity
	c.ScrimColor = cfg.Tour.ScrimColor
	c.Ring = fl.Enabled(flags.FlagHighlightRing)
	c.BackdropAdvance = fl.Enabled(flags.FlagBackdropAdvance)
	c.Poller = tour.Poller{Attempts: cfg.Tour.MeasureAttempts, Interval: cfg.Tour.MeasureInterval}
	return c
}

// buildStarters creates an auto-starter for every auto_start tour whose
// targets are all on the current screen.
func (m Model) buildStarters() []*coachmark.AutoStarter {
	targets := m.screen.Targets()
	var starters []*coachmark.AutoStarter
	for _, d := range m.catalog.Tours {
		if !d.AutoStart {
			continue
		}
		onScreen := true
		for _, id := range d.Targets() {
			if !slices.Contains(targets, id) {
				onScreen = false
				break
			}
		}
		if !onScreen {
			log.Debug(log.CatTour, "auto-start tour targets another screen", "key", d.Key)
			continue
		}
		starters = append(starters, coachmark.NewAutoStarter(m.services.Tours, m.tourFor(d), m.services.Config.Tour.SettleDelay))
	}
	return starters
}

func (m Model) autoStartEnabled() bool {
	return m.services.Config.Tour.AutoStart && m.services.Flags.Enabled(flags.FlagAutoStart)
}

func (m Model) mountStarters() tea.Cmd {
	if !m.autoStartEnabled() {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.starters))
	for _, s := range m.starters {
		cmds = append(cmds, s.Mount())
	}
	return tea.Batch(cmds...)
}

// tourFor builds a runnable tour for the configured user. Finishing it posts
// a TourFinishedMsg.
func (m Model) tourFor(d tour.Definition) tour.Tour {
	finished := m.finished
	key := d.Key
	return d.Tour(m.services.Config.UserID, func() {
		select {
		case finished <- key:
		default:
		}
	})
}

func waitFinished(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		key, ok := <-ch
		if !ok {
			return nil
		}
		return TourFinishedMsg{Key: key}
	}
}

func (m Model) listenWatcher() tea.Cmd {
	if m.watcherListener == nil {
		return nil
	}
	listen := m.watcherListener.Listen()
	return func() tea.Msg {
		// Log entries are pubsub.Event[string] too; give file changes their own type.
		if ev, ok := listen().(pubsub.Event[string]); ok {
			return ToursChangedMsg{Path: ev.Payload}
		}
		return nil
	}
}

func loadCatalog(path string) tea.Cmd {
	return func() tea.Msg {
		c, err := tour.LoadCatalog(path)
		return catalogLoadedMsg{catalog: c, err: err}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.screen.Init(),
		m.tourListener.Listen(),
		waitFinished(m.finished),
		m.mountStarters(),
	}
	if m.watcherListener != nil {
		cmds = append(cmds, m.listenWatcher())
	}
	if m.logListenCmd != nil {
		cmds = append(cmds, m.logListenCmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.screen = m.screen.SetSize(msg.Width, max(msg.Height-statusBarHeight, 0))
		m.toaster = m.toaster.SetSize(msg.Width, msg.Height)
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)
		m.statusHelp.Width = msg.Width
		m.coach.Retain(m.screen.Targets())

		var cmd tea.Cmd
		m.coach, cmd = m.coach.Update(msg)
		return m, cmd

	case log.LogEvent:
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.showHelp || m.logOverlay.Visible() {
			return m, nil
		}
		if m.coach.Intercepts(msg) {
			var cmd tea.Cmd
			m.coach, cmd = m.coach.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.screen, cmd = m.screen.Update(msg)
		return m, cmd

	case pubsub.Event[tour.Event]:
		var cmd tea.Cmd
		m.coach, cmd = m.coach.Update(msg)
		return m, tea.Batch(cmd, m.tourListener.Listen())

	case coachmark.AutoStartMsg:
		for _, s := range m.starters {
			if s.Update(msg) {
				return m.sync()
			}
		}
		return m, nil

	case home.UpgradeRequestedMsg:
		return m.startTour("upgrade")

	case TourFinishedMsg:
		log.Info(log.CatTour, "tour finished", "key", msg.Key)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Flash(m.tourName(msg.Key)+" complete", toaster.StyleSuccess, toaster.DefaultDuration)
		return m, tea.Batch(cmd, waitFinished(m.finished))

	case replayMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatStore, "Failed to reset tour", msg.err, "key", msg.key)
			var cmd tea.Cmd
			m.toaster, cmd = m.toaster.Flash("Could not reset tour", toaster.StyleError, toaster.DefaultDuration)
			return m, cmd
		}
		return m.startTour(msg.key)

	case ToursChangedMsg:
		log.Debug(log.CatWatcher, "tours file changed, reloading", "path", msg.Path)
		return m, tea.Batch(loadCatalog(msg.Path), m.listenWatcher())

	case catalogLoadedMsg:
		return m.applyCatalog(msg)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil
	}

	// Measurements and animation frames belong to the coach; everything else
	// is the screen's.
	var coachCmd, screenCmd tea.Cmd
	m.coach, coachCmd = m.coach.Update(msg)
	m.screen, screenCmd = m.screen.Update(msg)
	return m, tea.Batch(coachCmd, screenCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debugMode && key.Matches(msg, m.keys.Logs) {
		m.logOverlay.Toggle()
		return m, nil
	}

	// If the debug log overlay is visible it takes precedence for updates
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	// Tour keys win over screen keys only while a tour runs.
	if m.coach.Intercepts(msg) {
		var cmd tea.Cmd
		m.coach, cmd = m.coach.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Replay):
		return m.replay()
	case key.Matches(msg, m.keys.Upgrade):
		return m.startTour("upgrade")
	}

	var cmd tea.Cmd
	m.screen, cmd = m.screen.Update(msg)
	return m, cmd
}

// sync redraws the coach after the service was driven directly.
func (m Model) sync() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.coach, cmd = m.coach.Sync()
	return m, cmd
}

// startTour starts the catalog tour with key. A start while another tour runs
// is ignored by the service.
func (m Model) startTour(key string) (tea.Model, tea.Cmd) {
	d, ok := m.catalog.Find(key)
	if !ok {
		log.Warn(log.CatTour, "unknown tour", "key", key)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Flash(fmt.Sprintf("No tour named %q", key), toaster.StyleWarn, toaster.DefaultDuration)
		return m, cmd
	}
	if !m.services.Tours.Start(m.tourFor(d)) {
		return m, nil
	}
	return m.sync()
}

// replay clears the primary tour's completion record off the update
// goroutine, then starts it.
func (m Model) replay() (tea.Model, tea.Cmd) {
	key := m.primaryTour()
	if key == "" || m.services.Tours.Active() {
		return m, nil
	}
	svc, user := m.services.Tours, m.services.Config.UserID
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), resetTimeout)
		defer cancel()
		return replayMsg{key: key, err: svc.Reset(ctx, key, user)}
	}
}

// primaryTour is the screen's first auto-start tour, or the first tour in
// the catalog.
func (m Model) primaryTour() string {
	if len(m.starters) > 0 {
		return m.starters[0].Tour().Key
	}
	if len(m.catalog.Tours) > 0 {
		return m.catalog.Tours[0].Key
	}
	return ""
}

func (m Model) tourName(key string) string {
	if d, ok := m.catalog.Find(key); ok && d.Name != "" {
		return d.Name
	}
	return "Tour"
}

// applyCatalog swaps in reloaded definitions. A running tour keeps the steps
// it started with.
func (m Model) applyCatalog(msg catalogLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to reload tours", msg.err)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Flash("Tours file has errors, keeping previous tours", toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}

	for _, s := range m.starters {
		s.Unmount()
	}
	m.catalog = msg.catalog
	m.starters = m.buildStarters()
	log.Info(log.CatWatcher, "tours reloaded", "count", len(m.catalog.Tours))

	var toast tea.Cmd
	m.toaster, toast = m.toaster.Flash("Tours reloaded", toaster.StyleInfo, toaster.DefaultDuration)
	return m, tea.Batch(toast, m.mountStarters())
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	rows := max(m.height-statusBarHeight, 0)
	lines := strings.Split(m.screen.View(), "\n")
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	lines = append(lines, m.renderStatusBar())

	// Scan before compositing so target rects are in screen coordinates.
	view := m.services.Layout.Scan(strings.Join(lines, "\n"))
	view = m.coach.View(view)

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view)
	}
	if m.showHelp {
		view = m.help.Overlay(view)
	}
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	return zone.Scan(view)
}

func (m Model) renderStatusBar() string {
	var hints string
	if m.services.Tours.Active() {
		hints = m.statusHelp.ShortHelpView(keys.DefaultTourKeyMap().ShortHelp())
	} else {
		hints = m.statusHelp.View(m.keys)
	}
	return styles.StatusBarStyle.Render(styles.TruncateString(hints, max(m.width-2, 0)))
}

// Catalog returns the loaded tour definitions.
func (m Model) Catalog() tour.Catalog {
	return m.catalog
}

// Close releases resources held by the application and waits for pending
// completion writes.
func (m *Model) Close() error {
	m.logOverlay.StopListening()

	for _, s := range m.starters {
		s.Unmount()
	}
	m.coach.Close()

	if m.tourCancel != nil {
		m.tourCancel()
	}

	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}

	m.services.Tours.Flush()
	m.services.Layout.Close()
	return nil
}
