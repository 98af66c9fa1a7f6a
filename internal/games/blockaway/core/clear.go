package core

import "github.com/zyedidia/generic/mapset"

// GateState tells why a piece cannot be tapped regardless of its path.
type GateState uint8

const (
	GateOpen GateState = iota
	// GateNeighbors: locked and at least one neighbour is occupied.
	GateNeighbors
	// GateTimer: locked until the move counter reaches UnlockAfterMoves.
	GateTimer
	// GateIce: still frozen.
	GateIce
)

// String returns the string representation of a gate state.
func (s GateState) String() string {
	switch s {
	case GateOpen:
		return "open"
	case GateNeighbors:
		return "locked by neighbours"
	case GateTimer:
		return "locked by timer"
	case GateIce:
		return "frozen"
	default:
		return "unknown"
	}
}

// Gate evaluates the lock and ice state of p after the given number of moves.
func Gate(b Board, occ Occupancy, p Piece, moves int) GateState {
	switch {
	case p.NeighborGated() && hasOccupiedNeighbor(b.Geometry, occ, p.Coord):
		return GateNeighbors
	case p.TimedGated() && moves < p.UnlockAfterMoves:
		return GateTimer
	case p.FrozenAt(moves):
		return GateIce
	default:
		return GateOpen
	}
}

// IsClearable reports whether tapping p right now removes it.
func IsClearable(b Board, occ Occupancy, p Piece, moves int) bool {
	if Gate(b, occ, p, moves) != GateOpen {
		return false
	}
	return ResolvePiece(b, occ, p).CanExit()
}

// ComputeClearable returns the cells of every piece that can be cleared now.
func ComputeClearable(b Board, occ Occupancy, moves int) mapset.Set[Coord] {
	out := mapset.New[Coord]()
	for c, p := range occ {
		if IsClearable(b, occ, p, moves) {
			out.Put(c)
		}
	}
	return out
}

func hasOccupiedNeighbor(g Geometry, occ Occupancy, c Coord) bool {
	for _, n := range g.Neighbors(c) {
		if occ.Occupied(n) {
			return true
		}
	}
	return false
}
