package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockbench/internal/config"
	"github.com/vovakirdan/blockbench/internal/core"
	"github.com/vovakirdan/blockbench/internal/games/blockaway"
	bacore "github.com/vovakirdan/blockbench/internal/games/blockaway/core"
	"github.com/vovakirdan/blockbench/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func rowLevel() bacore.Level {
	pieces := []bacore.Piece{
		{ID: 1, Coord: bacore.RC(0, 0), Facing: bacore.Single(bacore.Right)},
		{ID: 2, Coord: bacore.RC(0, 1), Facing: bacore.Single(bacore.Right)},
		{ID: 3, Coord: bacore.RC(0, 2), Facing: bacore.Single(bacore.Right)},
	}
	return bacore.Level{
		ID:       "row",
		Name:     "Row",
		Board:    bacore.NewBoard(bacore.NewSquare(1, 3)),
		Pieces:   bacore.NewOccupancy(pieces),
		Metadata: map[string]string{},
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runeKey("j"), core.ActionDown, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{runeKey("l"), core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionTap, false},
		{runeKey("t"), core.ActionRotate, false},
		{runeKey("u"), core.ActionUndo, false},
		{runeKey("?"), core.ActionHint, false},
		{runeKey("r"), core.ActionRestart, false},
		{runeKey("n"), core.ActionNext, false},
		{runeKey("p"), core.ActionPrev, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runeKey("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runeKey("x"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}

	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyEnter}); got != MenuActionSelect {
		t.Errorf("enter in menu = %v, want select", got)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(20, 2)
	s.DrawTextColored(0, 0, "hello", core.ColorBrightGreen)
	s.DrawText(0, 1, "world")

	out := RenderScreen(s)
	if !strings.Contains(out, "hello") || !strings.Contains(out, "world") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("expected 2 lines, got %d newlines", got)
	}
}

func TestThemeByName(t *testing.T) {
	if ThemeByName("mono").SelectedBg != MonochromeTheme().SelectedBg {
		t.Error("mono should select the monochrome theme")
	}
	if ThemeByName("nope").SelectedBg != DefaultTheme().SelectedBg {
		t.Error("unknown names should fall back to the default theme")
	}
}

// step feeds a key and one tick to a game model.
func step(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	m = next.(Model)
	next, _ = m.Update(TickMsg(time.Now()))
	return next.(Model)
}

func TestModelRecordsFinishedAttempt(t *testing.T) {
	store := openStore(t)
	env := Env{Store: store, Config: config.DefaultConfig(), Player: "ann"}

	m := NewModel(blockaway.New("test", "Test", rowLevel()), env, core.DefaultConfig())
	m.Init()

	for n := 0; n < 3; n++ {
		m = step(m, runeKey("?"))
		m = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	if !m.State().Won {
		t.Fatalf("expected a win, got %+v", m.State())
	}
	// Further ticks must not record the same attempt again.
	m = step(m, runeKey("x"))

	stats, err := store.LevelStats("row")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Plays != 1 || stats.Wins != 1 || stats.BestMoves != 3 {
		t.Errorf("stats = %+v, want one won attempt in 3 moves", stats)
	}
	if n, _ := store.SolvedCount("ann"); n != 1 {
		t.Errorf("SolvedCount(ann) = %d, want 1", n)
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m := NewModel(blockaway.New("test", "Test", rowLevel()), Env{Config: config.DefaultConfig()}, core.DefaultConfig())
	m.Init()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() {
		t.Error("esc should ask for the menu")
	}

	next, cmd := m.Update(runeKey("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	env := Env{Config: config.DefaultConfig()}
	m := NewSessionModel(env, core.DefaultConfig())

	view := m.View()
	for _, want := range []string{"Block Away", "Random puzzle"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Level library") {
		t.Error("the library entry needs a store")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)
	if m.screen != screenGame {
		t.Fatalf("enter should start the first game, screen = %v", m.screen)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	if m.screen != screenMenu {
		t.Fatalf("esc should return to the menu, screen = %v", m.screen)
	}
}

func TestSessionRandomPuzzle(t *testing.T) {
	env := Env{Config: config.DefaultConfig()}
	m := NewSessionModel(env, core.DefaultConfig())

	// Random puzzle follows the registered campaigns.
	for range m.menu.items {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(SessionModel)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)
	if m.screen != screenGame {
		t.Fatalf("random puzzle should start a game, notice = %q", m.notice)
	}
	if m.gameModel.game.ID() != "generated" {
		t.Errorf("game id = %s", m.gameModel.game.ID())
	}
}

func TestLibraryModel(t *testing.T) {
	store := openStore(t)

	rec, err := blockaway.Archive(rowLevel(), blockaway.SourceImported)
	if err != nil {
		t.Fatalf("Archive() failed: %v", err)
	}
	if _, err := store.SaveLevel(rec); err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}
	store.SaveAttempt(storage.Attempt{LevelRef: "row", Moves: 3, Won: true})

	m := NewLibraryModel(store, DefaultTheme(), 120, 30)
	if len(m.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(m.records))
	}
	view := m.View()
	for _, want := range []string{"LEVEL LIBRARY", "Row", "1/1"} {
		if !strings.Contains(view, want) {
			t.Errorf("library view missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	picked := next.(LibraryModel).Selected()
	if picked == nil || picked.ID != "row" || len(picked.Pieces) != 3 {
		t.Fatalf("enter should select the stored level, got %+v", picked)
	}

	next, _ = m.Update(runeKey("x"))
	m = next.(LibraryModel)
	if len(m.records) != 0 {
		t.Errorf("x should delete the level, %d left", len(m.records))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(LibraryModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}

func TestLevelPicker(t *testing.T) {
	m := NewLevelPickerModel("CAMPAIGN", []string{"One", "Two"}, DefaultTheme(), 80, 24)
	if !strings.Contains(m.View(), "Two") {
		t.Errorf("picker should list levels:\n%s", m.View())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(LevelPickerModel).Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(LevelPickerModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	idx, ok := next.(LevelPickerModel).Choice()
	if !ok || idx != 1 || cmd == nil {
		t.Errorf("Choice() = %d, %v; want 1, true", idx, ok)
	}
}
