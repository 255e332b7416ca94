package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var logger = log.New(io.Discard)

// SetLogger sets the logger used for run persistence and session events.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for running a game.
type Model struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	player string

	keys GameKeyMap
	help help.Model
	held *HeldKeys
	now  func() time.Time

	width  int
	height int

	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	embedded   bool // Running inside a SessionModel; Back returns to the menu
}

// NewModel creates a new Bubble Tea model for the given game. Finished runs
// are saved to store under player's name; store may be nil.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	m := Model{
		game:       game,
		store:      store,
		config:     cfg,
		player:     player,
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
		held:       NewHeldKeys(0),
		now:        time.Now,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	m.config.ScreenH = m.gameHeight()
	m.screen = core.NewScreen(cfg.ScreenW, m.config.ScreenH)
	return m
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	if hk, ok := m.game.(registry.HeldKeyGame); ok {
		m.held.SetWindow(hk.ReleaseWindow())
	}
	logger.Debug("game started", "game", m.game.ID(), "player", m.player, "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused {
			return m, nil
		}
		m.backToMenu = true
		if !m.embedded {
			return m, tea.Quit
		}
		return m, nil

	case core.ActionPause, core.ActionRestart:
		m.held.Reset()
	}

	if !m.held.Press(action, m.now(), &m.inputFrame) {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// gameHeight is the terminal height left for the game after the help bar.
func (m Model) gameHeight() int {
	return max(m.height-lipgloss.Height(m.help.View(m.keys)), 0)
}

// relayout resizes the screen buffer and tells the game about it. Games that
// cannot resize in place are restarted.
func (m *Model) relayout() {
	m.config.ScreenW = m.width
	m.config.ScreenH = m.gameHeight()
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
		return
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.held.Expire(m.now(), &m.inputFrame)

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Finished {
		m.saveRun(result.State)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveRun stores a finished run. Storage errors are logged, never fatal.
func (m *Model) saveRun(st core.GameState) {
	logger.Info("run finished",
		"game", m.game.ID(),
		"player", m.player,
		"outcome", st.Outcome,
		"score", st.Score,
		"lines", st.Lines,
		"pieces", st.Pieces,
	)
	if m.store == nil {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		GameID:   m.game.ID(),
		Player:   m.player,
		Outcome:  st.Outcome.String(),
		Score:    st.Score,
		Lines:    st.Lines,
		Level:    st.Level,
		Ticks:    st.Ticks,
		TickRate: m.config.TickRate,
	})
	if err != nil {
		logger.Error("could not save run", "err", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) error {
	model := NewModel(game, store, cfg, player)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
