package core_test

import (
	"testing"

	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
)

func TestNeighborGate(t *testing.T) {
	b := square(1, 3)
	locked := piece(1, core.RC(0, 0), core.Up)
	locked.Locked = true
	occ := occupancy(locked, piece(2, core.RC(0, 1), core.Up))

	if core.IsClearable(b, occ, locked, 0) {
		t.Fatal("locked piece with a neighbour should not be clearable")
	}
	if got := core.Gate(b, occ, locked, 0); got != core.GateNeighbors {
		t.Errorf("gate = %s, want %s", got, core.GateNeighbors)
	}

	delete(occ, core.RC(0, 1))
	if !core.IsClearable(b, occ, locked, 0) {
		t.Error("locked piece should clear once its neighbour is gone")
	}
}

func TestTimedGateAndIce(t *testing.T) {
	b := square(3, 3)

	timed := piece(1, core.RC(1, 1), core.Up)
	timed.Locked = true
	timed.UnlockAfterMoves = 2

	iced := piece(2, core.RC(2, 2), core.Right)
	iced.IceCount = 3

	occ := occupancy(timed, iced, piece(3, core.RC(1, 2), core.Right))

	tests := []struct {
		name  string
		p     core.Piece
		moves int
		gate  core.GateState
	}{
		{"timed before threshold", timed, 1, core.GateTimer},
		{"timed at threshold ignores neighbours", timed, 2, core.GateOpen},
		{"iced", iced, 2, core.GateIce},
		{"melted", iced, 3, core.GateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.Gate(b, occ, tt.p, tt.moves); got != tt.gate {
				t.Errorf("gate = %s, want %s", got, tt.gate)
			}
			want := tt.gate == core.GateOpen
			if got := core.IsClearable(b, occ, tt.p, tt.moves); got != want {
				t.Errorf("IsClearable = %v, want %v", got, want)
			}
		})
	}
}

func TestClearabilityConsistency(t *testing.T) {
	rng := core.NewRNG(99)
	for i := 0; i < 100; i++ {
		b, occ := randomBoard(rng, 5, 5, true)
		// Sprinkle timers and ice so every gate kind shows up.
		for _, c := range occ.Coords() {
			p := occ[c]
			switch rng.Intn(8) {
			case 0:
				p.Locked, p.UnlockAfterMoves = true, 1+rng.Intn(3)
			case 1:
				p.IceCount = 1 + rng.Intn(3)
			}
			occ[c] = p
		}
		moves := rng.Intn(4)

		clearable := core.ComputeClearable(b, occ, moves)
		for _, p := range occ.Sorted() {
			path := core.ResolvePiece(b, occ, p)
			gate := core.Gate(b, occ, p, moves)
			want := gate == core.GateOpen && path.CanExit()
			if clearable.Has(p.Coord) != want {
				t.Fatalf("board %d piece %v: in set = %v, gate %s, path %s",
					i, p.Coord, clearable.Has(p.Coord), gate, path.Stop)
			}
			if core.IsClearable(b, occ, p, moves) != want {
				t.Fatalf("board %d piece %v: IsClearable disagrees with set", i, p.Coord)
			}
		}
	}
}
