package tui

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/party"
	"github.com/vovakirdan/tui-party/internal/storage"
)

// ModelOptions configures a party Model.
type ModelOptions struct {
	Scene    party.Options
	Runtime  core.RuntimeConfig // Initial size and tick rate
	Store    *storage.Store     // Optional session history
	User     string
	Origin   string             // "local" or "ssh"
	Renderer *lipgloss.Renderer // Nil uses the local terminal
	Logger   *log.Logger
	Embedded bool // Back returns to a menu instead of quitting
}

// sessionRecord tears the scene down and saves its session exactly once,
// whichever of quit, back or disconnect gets there first.
type sessionRecord struct {
	once    sync.Once
	store   *storage.Store
	logger  *log.Logger
	base    storage.Session
	started time.Time
}

func (r *sessionRecord) finish(scene *party.Scene) {
	r.once.Do(func() {
		scene.Teardown()
		st := scene.Stats()
		r.logger.Info("party ended",
			"duration", st.Duration,
			"started", st.PartyStarted,
			"audio_errors", st.AudioErrors,
		)
		if r.store == nil {
			return
		}

		sess := r.base
		sess.StartedAt = r.started
		sess.Duration = st.Duration
		sess.PartyStarted = st.PartyStarted
		sess.AudioToggles = st.AudioToggles
		sess.AudioErrors = st.AudioErrors
		sess.Resizes = st.Resizes
		sess.ConfettiSpawned = st.ConfettiSpawned

		id, err := r.store.SaveSession(sess)
		if err != nil {
			r.logger.Warn("could not save session", "error", err)
			return
		}
		r.logger.Debug("session saved", "id", id)
	})
}

// Model is the Bubble Tea model for the party display.
type Model struct {
	id       int64
	scene    *party.Scene
	screen   *core.Screen
	record   *sessionRecord
	renderer *lipgloss.Renderer
	keys     KeyMap
	help     help.Model
	config   core.RuntimeConfig
	embedded bool
	last     time.Time
	quitting bool
	back     bool
}

// NewModel creates a party model. The scene is mounted by Init.
func NewModel(opts ModelOptions) Model {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Scene.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Scene.Logger == nil {
		opts.Scene.Logger = logger
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := Model{
		id:       nextModelID(),
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer: renderer,
		keys:     DefaultKeyMap(),
		help:     h,
		config:   cfg,
		embedded: opts.Embedded,
		record: &sessionRecord{
			store:  opts.Store,
			logger: logger,
			base: storage.Session{
				User:          opts.User,
				Origin:        opts.Origin,
				Theme:         opts.Scene.Theme.ID,
				ReducedMotion: opts.Scene.ReducedMotion,
			},
			started: time.Now(),
		},
	}
	m.scene = party.NewScene(opts.Scene, cfg.ScreenW, m.sceneRows())
	return m
}

// Init mounts the scene and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.scene.Mount()
	return tickCmd(m.id, m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.ID != m.id {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		if m.embedded {
			m.Finish()
			m.back = true
			return m, nil
		}
		return m.quit()
	}

	switch m.keys.Action(msg) {
	case core.ActionQuit:
		return m.quit()
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.scene.Resize(m.config.ScreenW, m.sceneRows())
	case core.ActionStartParty:
		m.scene.Press(party.ButtonStart)
	case core.ActionToggleAudio:
		m.scene.Press(party.ButtonMusic)
	case core.ActionFocusNext:
		m.scene.FocusNext()
	case core.ActionFocusPrev:
		m.scene.FocusPrev()
	case core.ActionPress:
		m.scene.PressFocused()
	}
	return m, nil
}

// handleMouse presses a button on left click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if b, ok := m.scene.ButtonAt(msg.X, msg.Y); ok {
		m.scene.Press(b)
	}
	return m, nil
}

// handleResize processes window resize events. The scene rebuilds its
// layout for the new size; the help footer keeps its rows.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.scene.Resize(msg.Width, m.sceneRows())
	return m, nil
}

// handleTick advances the scene clock by the real time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.back {
		return m, nil
	}
	m.scene.Advance(step(m.last, now))
	m.last = now
	return m, tickCmd(m.id, m.config.TickRate)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Finish()
	m.quitting = true
	return m, tea.Quit
}

// footerRows is the height of the help footer.
func (m Model) footerRows() int {
	return lipgloss.Height(m.help.View(m.keys))
}

// sceneRows is the height left for the scene above the footer.
func (m Model) sceneRows() int {
	return max(m.config.ScreenH-m.footerRows(), 0)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.scene.Render(m.screen)
	helpStyle := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen, m.renderer) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Finish tears the scene down and records the session. Safe to call more
// than once and from another goroutine.
func (m Model) Finish() {
	m.record.finish(m.scene)
}

// Scene returns the scene driven by this model.
func (m Model) Scene() *party.Scene {
	return m.scene
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run starts the Bubble Tea program with a party model and blocks until the
// user quits. The session is recorded even if the program fails.
func Run(opts ModelOptions) error {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	model.Finish()
	return err
}
