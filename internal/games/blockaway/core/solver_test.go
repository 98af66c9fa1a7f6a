package core_test

import (
	"testing"

	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
)

func TestSolvableRow(t *testing.T) {
	b := square(1, 3)
	occ := occupancy(
		piece(1, core.RC(0, 0), core.Right),
		piece(2, core.RC(0, 1), core.Right),
		piece(3, core.RC(0, 2), core.Right),
	)

	res := core.CheckSolvable(b, occ)
	if !res.Solvable || res.StuckCount != 0 {
		t.Fatalf("expected solvable with 0 stuck, got %+v", res)
	}
	want := []int{3, 2, 1}
	for i, id := range want {
		if res.Order[i] != id {
			t.Errorf("order[%d] = %d, want %d", i, res.Order[i], id)
		}
	}
	if res.Depth != 3 {
		t.Errorf("depth = %d, want 3", res.Depth)
	}
	if len(occ) != 3 {
		t.Error("CheckSolvable must not modify its input")
	}
}

func TestFacingPairIsUnsolvable(t *testing.T) {
	b := square(1, 3)
	occ := occupancy(piece(1, core.RC(0, 0), core.Right), piece(2, core.RC(0, 1), core.Left))

	res := core.CheckSolvable(b, occ)
	if res.Solvable || res.StuckCount != 2 {
		t.Errorf("expected 2 stuck pieces, got %+v", res)
	}
	if core.ComputeClearable(b, occ, 0).Size() != 0 {
		t.Error("no piece should be clearable")
	}
}

func TestSolverTreatsAllLocksAsNeighborGates(t *testing.T) {
	b := square(1, 2)
	a := piece(1, core.RC(0, 0), core.Up)
	a.Locked = true
	a.UnlockAfterMoves = 5
	c := piece(2, core.RC(0, 1), core.Up)
	c.IceCount = 9

	res := core.CheckSolvable(b, occupancy(a, c))
	if !res.Solvable {
		t.Fatal("ice and timers are ignored by the solver")
	}
	if res.Order[0] != 2 || res.Depth != 2 {
		t.Errorf("locked piece should wait for its neighbour, got order %v depth %d", res.Order, res.Depth)
	}
}

func TestSolverSlidesThroughPause(t *testing.T) {
	b := hex(2).WithPauses(core.QR(0, 0))
	occ := occupancy(piece(1, core.QR(-2, 0), core.HexE))

	res := core.CheckSolvable(b, occ)
	if !res.Solvable {
		t.Fatalf("expected solvable, got %+v", res)
	}
	if res.Slides != 1 || res.Depth != 1 {
		t.Errorf("slides = %d depth = %d, want 1 and 1", res.Slides, res.Depth)
	}
	if len(res.Taps) != 2 || res.Taps[0] != core.QR(-2, 0) || res.Taps[1] != core.QR(0, 0) {
		t.Errorf("unexpected taps %v", res.Taps)
	}
}

func TestRemovalMonotonicity(t *testing.T) {
	rng := core.NewRNG(2024)
	checked := 0
	for i := 0; i < 300; i++ {
		b, occ := randomBoard(rng, 4, 4, true)
		if !core.CheckSolvable(b, occ).Solvable {
			continue
		}
		clearable := core.ComputeClearable(b, occ, 0)
		for _, c := range occ.Coords() {
			if !clearable.Has(c) {
				continue
			}
			next := occ.Clone()
			delete(next, c)
			if !core.CheckSolvable(b, next).Solvable {
				t.Fatalf("board %d: removing clearable %v made it unsolvable\n%s", i, c, core.RenderASCII(b, occ))
			}
			checked++
		}
	}
	if checked == 0 {
		t.Fatal("no removals were checked")
	}
}

// A push can close the exit of a piece that was about to clear.
// A slides right next to B and now sits in E's column, closing a four-cycle.
func TestPushCanCreateDeadlock(t *testing.T) {
	b := square(6, 4)
	a := piece(1, core.RC(2, 0), core.Right)
	occ := occupancy(
		a,
		piece(2, core.RC(2, 3), core.Down),
		piece(3, core.RC(4, 3), core.Left),
		piece(4, core.RC(4, 2), core.Up),
	)
	if !core.CheckSolvable(b, occ).Solvable {
		t.Fatalf("starting board should be solvable\n%s", core.RenderASCII(b, occ))
	}

	level := core.Level{Board: b, Pieces: occ, Mode: core.ModePush}
	next, res := core.Step(level, core.NewState(level), core.TapAt(a.Coord))
	if res.Kind != core.ResultPushed || res.To != core.RC(2, 2) {
		t.Fatalf("expected push to (2,2), got %s to %v", res.Kind, res.To)
	}

	if core.CheckSolvable(b, next.Pieces).Solvable {
		t.Fatal("push should have produced a deadlock")
	}
	info := core.ComputeDeadlock(b, next.Pieces, next.Moves)
	if r := info.Reasons[core.RC(2, 2)]; r.Kind != core.CircularChain || len(r.Chain) != 5 {
		t.Errorf("expected a four-piece circular chain, got %s %v", r.Kind, r.Chain)
	}
}

func TestPushKeepsOwnBlocker(t *testing.T) {
	rng := core.NewRNG(31)
	pushes := 0
	for i := 0; i < 200; i++ {
		b, occ := randomBoard(rng, 5, 5, false)
		level := core.Level{Board: b, Pieces: occ, Mode: core.ModePush}
		for _, p := range occ.Sorted() {
			if p.Facing.Axis {
				continue
			}
			before := core.ResolvePiece(b, occ, p)
			blocker, blocked := before.Blocker()
			if !blocked || before.Len() == 0 {
				continue
			}
			next, res := core.Step(level, core.NewState(level), core.TapAt(p.Coord))
			if res.Kind != core.ResultPushed {
				t.Fatalf("expected a push, got %s", res.Kind)
			}
			after := core.ResolvePiece(b, next.Pieces, next.Pieces[res.To])
			if got, ok := after.Blocker(); !ok || got != blocker || after.Len() != 0 {
				t.Fatalf("board %d: pushed piece lost its blocker %v (now %s at %v)", i, blocker, after.Stop, after.At)
			}
			pushes++
		}
	}
	if pushes == 0 {
		t.Fatal("no pushes were checked")
	}
}

func TestSolverTurnsCarousels(t *testing.T) {
	l := swapLevel()

	res := core.CheckSolvable(l.Board, l.Pieces)
	if !res.Solvable || res.Rotations != 1 {
		t.Fatalf("expected a solution with one turn, got %+v", res)
	}
	if len(res.Order) != 2 {
		t.Errorf("order = %v", res.Order)
	}

	if err := core.ValidateLevel(l, true); err != nil {
		t.Errorf("a level solved by a turn is valid: %v", err)
	}
}
