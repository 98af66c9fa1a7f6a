package blockaway

import (
	"strings"
	"testing"

	platformcore "github.com/vovakirdan/blockbench/internal/core"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
	"github.com/vovakirdan/blockbench/internal/registry"
)

func rowLevel() core.Level {
	pieces := []core.Piece{
		{ID: 1, Coord: core.RC(0, 0), Facing: core.Single(core.Right)},
		{ID: 2, Coord: core.RC(0, 1), Facing: core.Single(core.Right)},
		{ID: 3, Coord: core.RC(0, 2), Facing: core.Single(core.Right)},
	}
	return core.Level{
		ID:       "row",
		Name:     "Row",
		Board:    core.NewBoard(core.NewSquare(1, 3)),
		Pieces:   core.NewOccupancy(pieces),
		Metadata: map[string]string{},
	}
}

func newRowGame(t *testing.T) *Game {
	t.Helper()
	g := New("test", "Test", rowLevel())
	g.Reset(platformcore.DefaultConfig())
	return g
}

func press(g *Game, actions ...platformcore.Action) platformcore.StepResult {
	return g.Step(platformcore.FrameOf(actions...))
}

func TestGameTapFlow(t *testing.T) {
	g := newRowGame(t)

	if g.Cursor() != core.RC(0, 0) {
		t.Fatalf("cursor should start on the first piece, got %v", g.Cursor())
	}

	res := press(g, platformcore.ActionTap)
	if res.State.Moves != 0 || res.Finished {
		t.Fatalf("blocked tap should not move: %+v", res.State)
	}
	if !strings.Contains(res.State.Status, "blocked by piece 2") {
		t.Errorf("status = %q", res.State.Status)
	}

	press(g, platformcore.ActionRight)
	press(g, platformcore.ActionRight)
	if g.Cursor() != core.RC(0, 2) {
		t.Fatalf("cursor = %v, want (0,2)", g.Cursor())
	}
	// Moving past the edge keeps the cursor in place.
	press(g, platformcore.ActionRight)
	if g.Cursor() != core.RC(0, 2) {
		t.Fatalf("cursor left the board: %v", g.Cursor())
	}

	res = press(g, platformcore.ActionTap)
	if res.State.Moves != 1 || !strings.Contains(res.State.Status, "piece 3 cleared") {
		t.Fatalf("unexpected state after clearing: %+v", res.State)
	}

	press(g, platformcore.ActionLeft)
	press(g, platformcore.ActionTap)
	press(g, platformcore.ActionLeft)
	res = press(g, platformcore.ActionTap)
	if !res.State.Won || !res.State.GameOver {
		t.Fatalf("expected a win, got %+v", res.State)
	}
	if !res.Finished {
		t.Error("the winning step should report Finished")
	}

	res = press(g)
	if res.Finished {
		t.Error("Finished should be reported once per attempt")
	}
}

func TestGameHintAndUndo(t *testing.T) {
	g := newRowGame(t)

	press(g, platformcore.ActionHint)
	if g.Cursor() != core.RC(0, 2) {
		t.Fatalf("hint should move the cursor to (0,2), got %v", g.Cursor())
	}

	press(g, platformcore.ActionTap)
	if n := len(g.Session().State().Pieces); n != 2 {
		t.Fatalf("expected 2 pieces, got %d", n)
	}

	res := press(g, platformcore.ActionUndo)
	if res.State.Moves != 0 || len(g.Session().State().Pieces) != 3 {
		t.Errorf("undo should restore the board: %+v", res.State)
	}

	res = press(g, platformcore.ActionUndo)
	if res.State.Status != "nothing to undo" {
		t.Errorf("status = %q", res.State.Status)
	}
}

func TestGameRestartAfterLoss(t *testing.T) {
	lvl := rowLevel()
	lvl.MistakeLimit = 1
	g := New("test", "Test", lvl)
	g.Reset(platformcore.DefaultConfig())

	res := press(g, platformcore.ActionTap)
	if !res.State.GameOver || res.State.Won || !res.Finished {
		t.Fatalf("one mistake should end the attempt: %+v", res)
	}
	if !strings.Contains(res.State.Status, "too many mistakes") {
		t.Errorf("status = %q", res.State.Status)
	}

	res = press(g, platformcore.ActionRestart)
	if res.State.GameOver || res.State.Mistakes != 0 {
		t.Errorf("restart should start a fresh attempt: %+v", res.State)
	}
}

func TestGameRender(t *testing.T) {
	g := newRowGame(t)
	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"TEST", "Row (1/1)", "moves 0", "[", "]", "esc menu"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	small := platformcore.NewScreen(10, 4)
	g.Render(small)
	if !strings.Contains(small.String(), "too small") {
		t.Errorf("expected a too-small notice:\n%s", small.String())
	}
}

func TestGameWithoutLevels(t *testing.T) {
	g := New("empty", "Empty")
	g.Reset(platformcore.DefaultConfig())

	res := press(g, platformcore.ActionTap)
	if !res.State.GameOver || res.State.Status != "no levels to play" {
		t.Errorf("unexpected state: %+v", res.State)
	}
}

func TestCampaignGamesRegistered(t *testing.T) {
	for _, id := range []string{"blockaway", "blockaway-hex"} {
		if !registry.Exists(id) {
			t.Fatalf("%s is not registered", id)
		}
		game, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%s) failed: %v", id, err)
		}
		bg, ok := game.(*Game)
		if !ok {
			t.Fatalf("%s is %T", id, game)
		}
		if len(bg.Levels()) == 0 {
			t.Errorf("%s has no levels", id)
		}
		for _, l := range bg.Levels() {
			want := core.KindSquare
			if id == "blockaway-hex" {
				want = core.KindHex
			}
			if l.Kind() != want {
				t.Errorf("%s contains %s level %s", id, l.Kind(), l.ID)
			}
		}
	}
}

func TestGameLevelSwitching(t *testing.T) {
	second := rowLevel()
	second.ID, second.Name = "row-2", "Row 2"
	g := New("test", "Test", rowLevel(), second)
	g.Reset(platformcore.DefaultConfig())

	res := press(g, platformcore.ActionNext)
	if res.State.Level != "row-2" {
		t.Errorf("next: level = %s", res.State.Level)
	}
	res = press(g, platformcore.ActionNext)
	if res.State.Level != "row" {
		t.Errorf("next should wrap around: level = %s", res.State.Level)
	}
	res = press(g, platformcore.ActionPrev)
	if res.State.Level != "row-2" {
		t.Errorf("prev should wrap around: level = %s", res.State.Level)
	}
}

func TestGameHintPointsAtCarousel(t *testing.T) {
	lvl := core.Level{
		ID:   "swap",
		Name: "Swap",
		Board: core.NewBoard(core.NewHex(1)).
			WithCarousel(core.Carousel{Center: core.QR(0, 0), Arms: []core.Dir{core.HexE, core.HexW}}),
		Pieces: core.NewOccupancy([]core.Piece{
			{ID: 1, Coord: core.QR(1, 0), Facing: core.Single(core.HexW)},
			{ID: 2, Coord: core.QR(-1, 0), Facing: core.Single(core.HexE)},
		}),
		Metadata: map[string]string{},
	}
	g := New("test", "Test", lvl)
	g.Reset(platformcore.DefaultConfig())

	res := press(g, platformcore.ActionHint)
	if g.Cursor() != core.QR(0, 0) || res.State.Status != "press t to rotate the carousel" {
		t.Fatalf("cursor %v, status %q", g.Cursor(), res.State.Status)
	}
	res = press(g, platformcore.ActionRotate)
	if res.State.Status != "carousel rotated" {
		t.Errorf("status = %q", res.State.Status)
	}
}
