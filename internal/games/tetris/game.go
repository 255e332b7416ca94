// Package tetris adapts the engine to the platform game contract: it turns
// input frames into engine intents, advances the session once per step and
// draws the playfield into a screen buffer.
package tetris

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeMarathon Mode = "marathon" // Play until the stack tops out
	ModeSprint   Mode = "sprint"   // Clear the line goal as fast as possible
)

// Registered game IDs.
const (
	IDMarathon = "tetris"
	IDSprint   = "tetris_sprint"
)

// Package-level settings applied on the next Reset, set from the CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLogger routes engine debug events to l. A nil logger discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// LoadConfig returns the configuration a new game would use.
func LoadConfig() config.TetrisConfig {
	return loadConfig(difficultyPreset)
}

func loadConfig(preset config.DifficultyPreset) config.TetrisConfig {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultTetrisConfig()
	}
	config.ApplyPreset(&cfg, preset)
	return cfg
}

// Game implements registry.Game on top of an engine session.
type Game struct {
	mode    Mode
	runtime core.RuntimeConfig
	cfg     config.TetrisConfig
	timings config.Timings
	session *engine.Session

	// preset overrides the package-level difficulty when set.
	preset config.DifficultyPreset

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a new marathon game.
func New() *Game {
	return &Game{mode: ModeMarathon}
}

// NewSprint creates a new sprint game.
func NewSprint() *Game {
	return &Game{mode: ModeSprint}
}

func init() {
	registry.Register(IDMarathon, func() registry.Game {
		return New()
	})
	registry.Register(IDSprint, func() registry.Game {
		return NewSprint()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeSprint {
		return IDSprint
	}
	return IDMarathon
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeSprint {
		return "Tetris (Sprint)"
	}
	return "Tetris (Marathon)"
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Timed reports whether runs are ranked by completion time rather than score.
func (g *Game) Timed() bool {
	return g.mode == ModeSprint
}

// SetDifficulty selects the preset for this game only, taking effect on the
// next Reset. Used by the menu so concurrent SSH sessions do not share it.
func (g *Game) SetDifficulty(p config.DifficultyPreset) {
	g.preset = p
}

// ReleaseWindow reports how long a terminal key counts as held after its
// last press.
func (g *Game) ReleaseWindow() time.Duration {
	if g.session == nil {
		return config.DefaultTetrisConfig().Timings(60).Release
	}
	return g.timings.Release
}

// Reset loads the configuration and starts a new session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	g.runtime = runtime
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	g.cfg = loadConfig(preset)
	g.timings = g.cfg.Timings(runtime.TickRate)

	opts := engine.Options{
		Seed:         runtime.Seed,
		StartLevel:   g.cfg.Game.StartLevel,
		LockDelay:    g.timings.LockDelay,
		DASDelay:     g.timings.DASDelay,
		AutoRepeat:   g.timings.AutoRepeat,
		SoftDropRate: g.timings.SoftDropRate,
		Logger:       logger.With("game", g.ID()),
	}
	if g.mode == ModeSprint {
		opts.LineGoal = g.cfg.Sprint.LineGoal
	}
	g.session = engine.New(opts)
	g.paused = false
	g.Resize(runtime.ScreenW, runtime.ScreenH)
}

// Resize updates the layout without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
}

// Step applies the frame's intents in a fixed order and advances the
// session by one tick. Paused games and games in a too-small window do not
// advance.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.session

	if in.Has(core.ActionRestart) {
		s.Reset()
		g.paused = false
	}
	if in.Has(core.ActionPause) && s.Active() {
		g.paused = !g.paused
		if g.paused {
			g.releaseAll()
		}
	}
	if g.paused || g.tooSmall || !s.Active() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionMoveLeft) {
		s.MoveLeft()
	}
	if in.Has(core.ActionMoveRight) {
		s.MoveRight()
	}
	if in.Has(core.ActionDasLeft) {
		s.StartDasLeft()
	}
	if in.Has(core.ActionDasRight) {
		s.StartDasRight()
	}
	if in.Has(core.ActionRotateCW) {
		s.RotateCW()
	}
	if in.Has(core.ActionRotateCCW) {
		s.RotateCCW()
	}
	if in.Has(core.ActionRotate180) {
		s.Rotate180()
	}
	if in.Has(core.ActionHold) {
		s.Hold()
	}
	if in.Has(core.ActionSoftDrop) {
		s.StartSoftDrop()
	}
	if in.Has(core.ActionHardDrop) {
		s.HardDrop()
	}
	if in.Has(core.ActionReleaseLeft) {
		s.StopDasLeft()
	}
	if in.Has(core.ActionReleaseRight) {
		s.StopDasRight()
	}
	if in.Has(core.ActionReleaseSoftDrop) {
		s.StopSoftDrop()
	}

	s.Tick()

	// The session was active on entry, so this reports the end exactly once.
	return core.StepResult{
		State:    g.State(),
		Finished: !s.Active(),
	}
}

// releaseAll drops held-key state so a key released while paused does not
// keep shifting after resume.
func (g *Game) releaseAll() {
	g.session.StopDasLeft()
	g.session.StopDasRight()
	g.session.StopSoftDrop()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.session
	if s == nil {
		return core.GameState{}
	}
	outcome := core.OutcomePlaying
	switch s.Phase() {
	case engine.PhaseGameOver:
		outcome = core.OutcomeGameOver
	case engine.PhaseCompleted:
		outcome = core.OutcomeCompleted
	}
	return core.GameState{
		Score:    s.Score(),
		Lines:    s.Lines(),
		Level:    s.Level(),
		Pieces:   s.PiecesLocked(),
		Ticks:    s.Ticks(),
		Outcome:  outcome,
		GameOver: !s.Active(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Mode   Mode
	Paused bool
	Engine engine.Snapshot
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Mode:   g.mode,
		Paused: g.paused,
		Engine: g.session.Snapshot(),
	}
}
