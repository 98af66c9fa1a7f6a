package core

import "sort"

// Piece is a directional block occupying one cell.
type Piece struct {
	ID     int
	Coord  Coord
	Facing Facing

	// Locked gates the piece. With UnlockAfterMoves > 0 the gate is timed and
	// opens once the move counter reaches it; otherwise the piece waits until
	// none of its neighbours is occupied. UnlockAfterMoves on an unlocked
	// piece has no effect and is not saved.
	Locked           bool
	UnlockAfterMoves int

	// IceCount freezes the piece while IceCount - moves > 0.
	IceCount int

	// Mirror makes the piece exit opposite to its stored facing.
	Mirror bool

	// Paused is set when a slide stopped on a pause cell.
	Paused bool
}

// NeighborGated reports whether the piece waits for its neighbours to clear.
func (p Piece) NeighborGated() bool {
	return p.Locked && p.UnlockAfterMoves <= 0
}

// TimedGated reports whether the piece waits for a move count.
func (p Piece) TimedGated() bool {
	return p.Locked && p.UnlockAfterMoves > 0
}

// FrozenAt reports whether the piece is still iced after the given number of moves.
func (p Piece) FrozenAt(moves int) bool {
	return p.IceCount-moves > 0
}

// Occupancy maps a cell to the piece standing on it.
type Occupancy map[Coord]Piece

// NewOccupancy builds an occupancy from a piece list. A later piece on the
// same cell replaces an earlier one.
func NewOccupancy(pieces []Piece) Occupancy {
	occ := make(Occupancy, len(pieces))
	for _, p := range pieces {
		occ[p.Coord] = p
	}
	return occ
}

// Clone returns an independent copy.
func (o Occupancy) Clone() Occupancy {
	out := make(Occupancy, len(o))
	for c, p := range o {
		out[c] = p
	}
	return out
}

// Coords returns occupied cells in row-major order.
func (o Occupancy) Coords() []Coord {
	coords := make([]Coord, 0, len(o))
	for c := range o {
		coords = append(coords, c)
	}
	sortCoords(coords)
	return coords
}

// Sorted returns pieces in row-major order of their cells.
func (o Occupancy) Sorted() []Piece {
	coords := o.Coords()
	out := make([]Piece, len(coords))
	for i, c := range coords {
		out[i] = o[c]
	}
	return out
}

// Occupied reports whether c holds a piece.
func (o Occupancy) Occupied(c Coord) bool {
	_, ok := o[c]
	return ok
}

// NextID returns an id larger than any in use.
func (o Occupancy) NextID() int {
	next := 1
	for _, p := range o {
		if p.ID >= next {
			next = p.ID + 1
		}
	}
	return next
}

// Equal reports whether both occupancies hold the same pieces on the same cells.
func (o Occupancy) Equal(other Occupancy) bool {
	if len(o) != len(other) {
		return false
	}
	for c, p := range o {
		q, ok := other[c]
		if !ok || q != p {
			return false
		}
	}
	return true
}

func sortCoords(coords []Coord) {
	sort.Slice(coords, func(i, j int) bool {
		return coords[i].Less(coords[j])
	})
}
