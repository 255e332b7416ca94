package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sendSession(m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(SessionModel), cmd
}

func TestMenuListsModes(t *testing.T) {
	isolate(t)
	store := openStore(t)
	if _, err := store.SaveRun(storage.Run{GameID: tetris.IDMarathon, Player: "p", Outcome: "game_over", Score: 4200}); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(store, core.DefaultConfig())
	view := m.View()
	for _, want := range []string{"Tetris (Marathon)", "Tetris (Sprint)", "best 4200", "default"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu missing %q:\n%s", want, view)
		}
	}
}

func TestMenuSelection(t *testing.T) {
	isolate(t)
	m := NewMenuModel(nil, core.DefaultConfig())

	next, _ := m.Update(keyMsg("right"))
	next, _ = next.Update(keyMsg("right"))
	next, _ = next.Update(keyMsg("right"))
	next, _ = next.Update(keyMsg("down"))
	next, cmd := next.Update(keyMsg("enter"))
	m = next.(MenuModel)

	if cmd == nil || m.Selected() == nil {
		t.Fatal("enter should select and close the menu")
	}
	if m.Selected().GameID != tetris.IDSprint {
		t.Errorf("selected %q, expected the sprint mode", m.Selected().GameID)
	}
	if m.Difficulty() != config.DifficultyHard {
		t.Errorf("difficulty = %q, expected hard", m.Difficulty())
	}
}

func TestCreateGameAppliesDifficulty(t *testing.T) {
	isolate(t)
	g, err := CreateGame(tetris.IDMarathon, config.DifficultyNormal)
	if err != nil {
		t.Fatalf("CreateGame() error = %v", err)
	}
	g.Reset(core.DefaultConfig())
	if lvl := g.State().Level; lvl != 5 {
		t.Errorf("normal preset should start at level 5, got %d", lvl)
	}

	if _, err := CreateGame("pong", ""); err == nil {
		t.Error("unknown game should fail")
	}
}

func TestScoreboardRanksSprintByTime(t *testing.T) {
	isolate(t)
	store := openStore(t)
	runs := []storage.Run{
		{GameID: tetris.IDSprint, Player: "slow", Outcome: "completed", Score: 9000, Ticks: 6000, TickRate: 60},
		{GameID: tetris.IDSprint, Player: "fast", Outcome: "completed", Score: 100, Ticks: 3000, TickRate: 60},
		{GameID: tetris.IDSprint, Player: "quit", Outcome: "game_over", Score: 50000, Ticks: 100, TickRate: 60},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoreboardModel(store, 100, 30)
	for m.games[m.gameCursor].ID != tetris.IDSprint {
		next, _ := m.Update(keyMsg("tab"))
		m = next.(ScoreboardModel)
	}

	if len(m.runs) != 2 || m.runs[0].Player != "fast" {
		t.Fatalf("sprint board should list completed runs fastest first, got %+v", m.runs)
	}
	view := m.View()
	if !strings.Contains(view, "FASTEST CLEARS") || !strings.Contains(view, "0:50.00") {
		t.Errorf("sprint board view:\n%s", view)
	}
}

func TestScoreboardEmpty(t *testing.T) {
	isolate(t)
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Errorf("expected empty message:\n%s", m.View())
	}
}

func TestSessionFlow(t *testing.T) {
	isolate(t)
	store := openStore(t)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}

	m := NewSessionModel(store, cfg, "bob")
	m, _ = sendSession(m, keyMsg("tab"))
	if m.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}
	m, _ = sendSession(m, keyMsg("esc"))
	if m.scoreboard != nil {
		t.Fatal("esc should return to the menu")
	}

	m, cmd := sendSession(m, keyMsg("enter"))
	if m.gameModel == nil || cmd == nil {
		t.Fatal("enter should start a game and its tick loop")
	}
	if !m.gameModel.embedded || m.gameModel.player != "bob" {
		t.Error("session games should return to the menu and record the SSH user")
	}

	m, _ = sendSession(m, TickMsg{})
	m, _ = sendSession(m, keyMsg("p"))
	m, _ = sendSession(m, TickMsg{})
	m, cmd = sendSession(m, keyMsg("esc"))
	if m.gameModel != nil {
		t.Fatal("back while paused should return to the menu")
	}
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Error("returning to the menu must not end the session")
		}
	}

	m, cmd = sendSession(m, keyMsg("q"))
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
}
