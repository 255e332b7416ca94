package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// fakeGame records the frames it is stepped with.
type fakeGame struct {
	resets   int
	frames   []core.InputFrame
	w, h     int
	finishAt uint64
	state    core.GameState
	window   time.Duration
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.w, g.h = cfg.ScreenW, cfg.ScreenH
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	g.state.Ticks++
	finished := false
	if g.state.Ticks == g.finishAt {
		g.state.GameOver = true
		g.state.Outcome = core.OutcomeGameOver
		g.state.Score = 1200
		g.state.Lines = 12
		g.state.Level = 2
		finished = true
	}
	return core.StepResult{State: g.state, Finished: finished}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake board") }

func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) Resize(w, h int) { g.w, g.h = w, h }

func (g *fakeGame) ReleaseWindow() time.Duration { return g.window }

func (g *fakeGame) lastFrame() core.InputFrame {
	return g.frames[len(g.frames)-1]
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestModel(g *fakeGame, store *storage.Store) (Model, *clock) {
	c := &clock{t: time.Unix(1000, 0)}
	m := NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, "alice")
	m.now = c.now
	m.Init()
	return m, c
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func tick(m Model) Model {
	m, _ = send(m, TickMsg(time.Time{}))
	return m
}

func TestGameKeyMapActions(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		key      string
		expected core.Action
	}{
		{"left", core.ActionMoveLeft},
		{"h", core.ActionMoveLeft},
		{"right", core.ActionMoveRight},
		{"l", core.ActionMoveRight},
		{"down", core.ActionSoftDrop},
		{"j", core.ActionSoftDrop},
		{"space", core.ActionHardDrop},
		{"up", core.ActionRotateCW},
		{"x", core.ActionRotateCW},
		{"k", core.ActionRotateCW},
		{"z", core.ActionRotateCCW},
		{"a", core.ActionRotate180},
		{"c", core.ActionHold},
		{"p", core.ActionPause},
		{"r", core.ActionRestart},
		{"esc", core.ActionBack},
		{"q", core.ActionQuit},
		{"y", core.ActionNone},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := keys.Action(keyMsg(tc.key)); got != tc.expected {
				t.Errorf("Action(%q) = %s, expected %s", tc.key, got, tc.expected)
			}
		})
	}
}

func TestModelPressThenHold(t *testing.T) {
	g := &fakeGame{window: 120 * time.Millisecond}
	m, c := newTestModel(g, nil)

	m, _ = send(m, keyMsg("left"))
	m = tick(m)
	if f := g.lastFrame(); !f.Has(core.ActionMoveLeft) || f.Has(core.ActionDasLeft) {
		t.Fatalf("first press should move once, got %v", actions(f))
	}

	c.advance(30 * time.Millisecond)
	m, _ = send(m, keyMsg("left"))
	m = tick(m)
	if f := g.lastFrame(); !f.Has(core.ActionDasLeft) {
		t.Fatalf("repeat should start auto-shift, got %v", actions(f))
	}

	c.advance(50 * time.Millisecond)
	m = tick(m)
	if f := g.lastFrame(); !f.Empty() {
		t.Errorf("key still held, got %v", actions(f))
	}

	c.advance(100 * time.Millisecond)
	tick(m)
	if f := g.lastFrame(); !f.Has(core.ActionReleaseLeft) {
		t.Errorf("silence should release the key, got %v", actions(f))
	}
}

func TestModelPassesOtherKeys(t *testing.T) {
	g := &fakeGame{window: 120 * time.Millisecond}
	m, _ := newTestModel(g, nil)

	m, _ = send(m, keyMsg("space"))
	m, _ = send(m, keyMsg("c"))
	tick(m)

	f := g.lastFrame()
	if !f.Has(core.ActionHardDrop) || !f.Has(core.ActionHold) {
		t.Errorf("expected hard drop and hold in one frame, got %v", actions(f))
	}
}

func TestModelSavesFinishedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	g := &fakeGame{finishAt: 3}
	m, _ := newTestModel(g, store)
	for range 6 {
		m = tick(m)
	}

	runs, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatalf("TopScores() error = %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected exactly one saved run, got %d", len(runs))
	}
	r := runs[0]
	if r.Player != "alice" || r.Outcome != "game_over" || r.Score != 1200 || r.Lines != 12 || r.Level != 2 {
		t.Errorf("unexpected run: %+v", r)
	}
	if r.Ticks != 3 || r.TickRate != 60 {
		t.Errorf("run timing = %d ticks at %d Hz, expected 3 at 60", r.Ticks, r.TickRate)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(g, nil)
	if g.h != 23 {
		t.Errorf("game height = %d, expected one row left for help", g.h)
	}

	send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.resets != 1 {
		t.Errorf("resize should not restart a resizable game, resets = %d", g.resets)
	}
	if g.w != 100 || g.h != 39 {
		t.Errorf("game size = %dx%d, expected 100x39", g.w, g.h)
	}
}

func TestModelBackAndQuit(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(g, nil)
	m = tick(m)

	m, cmd := send(m, keyMsg("esc"))
	if m.BackToMenu() || cmd != nil {
		t.Error("back must be ignored while playing")
	}

	g.state.Paused = true
	m = tick(m)
	m, cmd = send(m, keyMsg("esc"))
	if !m.BackToMenu() || cmd == nil {
		t.Error("back while paused should leave a standalone game")
	}

	m, cmd = send(m, keyMsg("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelView(t *testing.T) {
	g := &fakeGame{}
	m, _ := newTestModel(g, nil)

	view := m.View()
	if !strings.Contains(view, "fake board") {
		t.Errorf("view should contain the game render:\n%s", view)
	}
	if !strings.Contains(view, "hard drop") {
		t.Errorf("view should contain the help bar:\n%s", view)
	}

	m, _ = send(m, keyMsg("?"))
	if !strings.Contains(m.View(), "rotate 180") {
		t.Error("? should expand the help")
	}
	if g.h != 24-lines(m.help.View(m.keys)) {
		t.Errorf("full help should shrink the game area, got height %d", g.h)
	}
}

func lines(s string) int {
	return strings.Count(s, "\n") + 1
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "abc", core.ColorCyan)
	s.DrawText(3, 0, "def")
	s.SetColored(0, 1, '█', core.Color(200))

	out := RenderScreen(s)
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("expected 2 rows, got %d", got+1)
	}
	for _, want := range []string{"abc", "def", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}
