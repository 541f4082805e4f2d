package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-party/internal/config"
	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/party"
	"github.com/vovakirdan/tui-party/internal/registry"
	"github.com/vovakirdan/tui-party/internal/storage"
)

// SessionOptions configures a menu-driven session.
type SessionOptions struct {
	Config   config.Config
	Runtime  core.RuntimeConfig
	Store    *storage.Store
	Player   party.Player // Shared by every party of the session
	User     string
	Origin   string
	Renderer *lipgloss.Renderer
	Logger   *log.Logger
}

// activeParty holds the party currently on screen. It is shared between
// copies of SessionModel so a disconnect handler can tear the party down.
type activeParty struct {
	mu    sync.Mutex
	model *Model
}

func (a *activeParty) set(m *Model) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.model = m
}

func (a *activeParty) finish() {
	a.mu.Lock()
	m := a.model
	a.model = nil
	a.mu.Unlock()
	if m != nil {
		m.Finish()
	}
}

// SessionModel manages the full session flow: menu -> party -> menu,
// with the history view one key away from the menu.
type SessionModel struct {
	opts     SessionOptions
	config   core.RuntimeConfig
	menu     MenuModel
	history  *HistoryModel
	party    *Model
	active   *activeParty
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Player == nil {
		opts.Player = NewPlayer(opts.Config, opts.Logger)
	}
	return SessionModel{
		opts:   opts,
		config: opts.Runtime,
		menu:   NewMenuModel(opts.Runtime, opts.Config.Theme),
		active: &activeParty{},
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.party != nil:
		return m.updateParty(msg)
	case m.history != nil:
		return m.updateHistory(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsHistory() {
		h := NewHistoryModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.history = &h
		return m, h.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		theme, err := registry.Create(selected.ThemeID)
		if err != nil {
			// Shouldn't happen since menu only shows registered themes
			m.opts.Logger.Warn("could not create theme", "theme", selected.ThemeID, "error", err)
			m.menu = NewMenuModel(m.config, m.opts.Config.Theme)
			return m, nil
		}

		model := NewModel(ModelOptions{
			Scene:    SceneOptions(m.opts.Config, theme, m.opts.Player, m.opts.Logger),
			Runtime:  m.config,
			Store:    m.opts.Store,
			User:     m.opts.User,
			Origin:   m.opts.Origin,
			Renderer: m.opts.Renderer,
			Logger:   m.opts.Logger,
			Embedded: true,
		})
		m.party = &model
		m.active.set(&model)
		return m, model.Init()
	}

	return m, cmd
}

// updateParty handles updates while a party is on screen.
func (m SessionModel) updateParty(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.party.Update(msg)
	if pm, ok := newModel.(Model); ok {
		m.party = &pm
	}

	if m.party.BackToMenu() {
		m.active.finish()
		theme := m.menuTheme()
		m.party = nil
		m.menu = NewMenuModel(m.config, theme)
		return m, m.menu.Init()
	}

	if m.party.IsQuitting() {
		m.active.finish()
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// menuTheme keeps the menu cursor on the theme that was just played.
func (m SessionModel) menuTheme() string {
	if sel := m.menu.Selected(); sel != nil {
		return sel.ThemeID
	}
	return m.opts.Config.Theme
}

// updateHistory handles updates while the history view is open.
func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newHistory, cmd := m.history.Update(msg)
	if hm, ok := newHistory.(HistoryModel); ok {
		m.history = &hm
	}

	if m.history.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.history.IsGoingBack() {
		m.history = nil
		m.menu = NewMenuModel(m.config, m.opts.Config.Theme)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch {
	case m.party != nil:
		return m.party.View()
	case m.history != nil:
		return m.history.View()
	}
	return m.menu.View()
}

// Finish tears down the party on screen, if any. Safe to call from another
// goroutine.
func (m SessionModel) Finish() {
	m.active.finish()
}

// InParty reports whether a party is on screen.
func (m SessionModel) InParty() bool {
	return m.party != nil
}

// InHistory reports whether the history view is open.
func (m SessionModel) InHistory() bool {
	return m.history != nil
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(opts SessionOptions) error {
	model := NewSessionModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	model.Finish()
	return err
}
