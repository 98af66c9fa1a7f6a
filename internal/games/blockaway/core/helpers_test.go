package core_test

import (
	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
)

// square builds a rows x cols board with the given voids.
func square(rows, cols int, voids ...core.Coord) core.Board {
	return core.NewBoard(core.NewSquare(rows, cols), voids...)
}

// hex builds a hex board of the given radius.
func hex(radius int, voids ...core.Coord) core.Board {
	return core.NewBoard(core.NewHex(radius), voids...)
}

// piece builds a single-facing piece.
func piece(id int, c core.Coord, d core.Dir) core.Piece {
	return core.Piece{ID: id, Coord: c, Facing: core.Single(d)}
}

func occupancy(pieces ...core.Piece) core.Occupancy {
	return core.NewOccupancy(pieces)
}

// randomBoard fills a square board with random pieces. Locks are neighbour
// gates only, so gameplay and solver rules agree.
func randomBoard(rng *core.SimpleRNG, rows, cols int, withLocks bool) (core.Board, core.Occupancy) {
	g := core.NewSquare(rows, cols)
	b := core.NewBoard(g)
	occ := make(core.Occupancy)
	id := 1
	for _, c := range g.Cells() {
		switch roll := rng.Intn(10); {
		case roll == 0:
			b.Voids.Put(c)
		case roll < 7:
			p := core.Piece{ID: id, Coord: c, Facing: core.Single(core.Dir(rng.Intn(4)))}
			if rng.Intn(8) == 0 {
				p.Facing = g.Axis(p.Facing.Dir)
			}
			if rng.Intn(10) == 0 {
				p.Mirror = true
			}
			if withLocks && rng.Intn(6) == 0 {
				p.Locked = true
			}
			occ[c] = p
			id++
		}
	}
	return b, occ
}
