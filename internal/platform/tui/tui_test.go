package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/meteor-arcade/internal/config"
	"github.com/vovakirdan/meteor-arcade/internal/core"
	"github.com/vovakirdan/meteor-arcade/internal/games/dodge"
	"github.com/vovakirdan/meteor-arcade/internal/meteor"
	"github.com/vovakirdan/meteor-arcade/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{" ", core.ActionTap, false},
		{"w", core.ActionTap, false},
		{"enter", core.ActionTap, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"esc", core.ActionBack, false},
		{"q", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(keyMsg(tt.key))
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.key, action, quit, tt.action, tt.quit)
		}
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()

	frame := core.NewInputFrame()
	km.MapMouseToFrame(tea.MouseMsg{Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}, &frame)
	if frame.Has(core.ActionTap) {
		t.Error("motion should not tap")
	}

	km.MapMouseToFrame(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	if !frame.Has(core.ActionTap) {
		t.Error("left click should tap")
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig(), "hard")
	if m.Preset() != config.DifficultyHard {
		t.Fatalf("Preset() = %v, expected hard", m.Preset())
	}

	step := func(key string) {
		next, _ := m.Update(keyMsg(key))
		m = next.(MenuModel)
	}

	step("down")
	step("right")
	if m.Preset() != config.DifficultyFixed {
		t.Errorf("Preset() = %v after right, expected fixed", m.Preset())
	}
	step("right")
	if m.Preset() != config.DifficultyEasy {
		t.Errorf("Preset() = %v should wrap to easy", m.Preset())
	}

	step("up")
	step("enter")
	if m.Choice() != ChoicePlay {
		t.Errorf("Choice() = %v, expected play", m.Choice())
	}
}

func TestMenuShowsBest(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	store.SaveRun(storage.Run{Score: 12300 * time.Millisecond})

	m := NewMenuModel(store, core.DefaultConfig(), "")
	if out := m.View(); !strings.Contains(out, "Best: 12.3s") {
		t.Errorf("menu view missing best time:\n%s", out)
	}
}

func TestModelRecordsFinishedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 50, Seed: 9}
	game := dodge.New()
	m := NewModel(game, store, cfg)
	game.Reset(m.config)

	for range 50 {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Model)
	}

	s := game.Session()
	for s.State() != meteor.StateEnded {
		s.OnOverlap(s.PlayerID(), s.SpawnMeteor())
	}
	next, _ := m.Update(TickMsg(time.Now()))
	m = next.(Model)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, expected exactly one", len(runs))
	}
	if runs[0].Score != time.Second || runs[0].Seed != 9 || runs[0].Strikes != 3 {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestModelBackPausesThenLeaves(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 50, Seed: 1}
	game := dodge.New()
	m := NewModel(game, nil, cfg)
	m.embedded = true
	game.Reset(m.config)

	next, _ := m.Update(keyMsg("esc"))
	m = next.(Model)
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Model)
	if !m.gameState.Paused || m.BackToMenu() {
		t.Fatalf("first esc should pause: paused=%v back=%v", m.gameState.Paused, m.BackToMenu())
	}

	next, _ = m.Update(keyMsg("esc"))
	m = next.(Model)
	if !m.BackToMenu() {
		t.Error("esc while paused should go back to the menu")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(10, 2)
	scr.DrawTextColor(0, 0, "HELLO", core.ColorOrange)
	scr.DrawText(0, 1, "world")

	out := RenderScreen(scr)
	if !strings.Contains(out, "HELLO") || !strings.Contains(out, "world") {
		t.Errorf("RenderScreen() = %q", out)
	}
}

func TestScoreboardSwitchesViews(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	store.SaveRun(storage.Run{Seed: 1, Score: 9 * time.Second})
	store.SaveRun(storage.Run{Seed: 2, Score: 2 * time.Second})

	m := NewScoreboardModel(store, 100, 30)
	if m.runs[0].Seed != 1 {
		t.Errorf("top view starts with seed %d", m.runs[0].Seed)
	}

	next, _ := m.Update(keyMsg("tab"))
	m = next.(ScoreboardModel)
	if m.view != viewRecent || m.runs[0].Seed != 2 {
		t.Errorf("recent view starts with seed %d", m.runs[0].Seed)
	}
	if out := m.View(); !strings.Contains(out, "RECENT RUNS") || !strings.Contains(out, "2 runs") {
		t.Errorf("scoreboard view:\n%s", out)
	}
}

func TestSessionModelFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 50, Seed: 1}
	m := NewSessionModel(nil, cfg, dodge.ID, "easy")

	update := func(msg tea.Msg) tea.Cmd {
		next, cmd := m.Update(msg)
		m = next.(SessionModel)
		return cmd
	}

	update(keyMsg("enter"))
	if m.screen != screenGame {
		t.Fatalf("screen = %v, expected game", m.screen)
	}
	if g, ok := m.game.game.(*dodge.Game); !ok || g.Difficulty() != "easy" {
		t.Errorf("game difficulty not applied")
	}

	update(keyMsg("p"))
	update(TickMsg(time.Now()))
	update(keyMsg("esc"))
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, expected menu after leaving a paused game", m.screen)
	}

	update(keyMsg("tab"))
	if m.screen != screenScores {
		t.Fatalf("screen = %v, expected scores", m.screen)
	}
	update(keyMsg("esc"))
	if m.screen != screenMenu {
		t.Errorf("screen = %v, expected menu", m.screen)
	}
}

func TestSSHServerRejectsUnknownGame(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.GameID = "tetris"

	_, err := NewSSHServer(cfg)
	if err == nil {
		t.Fatal("NewSSHServer() should fail for an unregistered game")
	}
	if !strings.Contains(err.Error(), dodge.ID) {
		t.Errorf("error %q should name the registered games", err)
	}
}
