package core

// Stop describes how a slide ended.
type Stop uint8

const (
	// StopExit means the piece left the grid.
	StopExit Stop = iota
	// StopHole means the piece fell into a void cell.
	StopHole
	// StopBlocked means another piece is in the way.
	StopBlocked
	// StopPause means the slide halts on a pause cell.
	StopPause
	// StopEdge means the piece has no usable direction at all.
	StopEdge
)

// String returns the string representation of a stop.
func (s Stop) String() string {
	switch s {
	case StopExit:
		return "exit"
	case StopHole:
		return "hole"
	case StopBlocked:
		return "blocked"
	case StopPause:
		return "pause"
	case StopEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// Path is the outcome of sliding a piece in one direction.
type Path struct {
	Dir Dir
	// Cells are the traversed cells in order. A hole or pause cell is the
	// last element; a blocker is never included.
	Cells []Coord
	Stop  Stop
	// At is the blocker, hole or pause cell. Unset for exits.
	At Coord
	// LastFree is the last free cell reached before the stop, or the start
	// cell when the piece cannot move at all.
	LastFree Coord
}

// CanExit reports whether the slide removes the piece.
// Pause stops do not count.
func (p Path) CanExit() bool {
	return p.Stop == StopExit || p.Stop == StopHole
}

// Blocked reports whether the slide ended against a piece or the edge.
func (p Path) Blocked() bool {
	return p.Stop == StopBlocked || p.Stop == StopEdge
}

// Blocker returns the blocking piece's cell.
func (p Path) Blocker() (Coord, bool) {
	return p.At, p.Stop == StopBlocked
}

// Hole returns the void cell the piece falls into.
func (p Path) Hole() (Coord, bool) {
	return p.At, p.Stop == StopHole
}

// Pause returns the pause cell the piece stops on.
func (p Path) Pause() (Coord, bool) {
	return p.At, p.Stop == StopPause
}

// Len is the number of traversed cells.
func (p Path) Len() int {
	return len(p.Cells)
}

// Resolve slides from start in direction d over the given occupancy.
// The start cell itself is never inspected.
func Resolve(b Board, occ Occupancy, start Coord, d Dir) Path {
	g := b.Geometry
	path := Path{Dir: d, LastFree: start}
	if !ValidDir(g, d) {
		path.Stop = StopEdge
		return path
	}

	cur := start
	for {
		next := g.Add(cur, d)
		switch {
		case !g.InBounds(next):
			path.Stop = StopExit
			return path
		case b.IsVoid(next):
			path.Cells = append(path.Cells, next)
			path.Stop = StopHole
			path.At = next
			return path
		case occ.Occupied(next):
			path.Stop = StopBlocked
			path.At = next
			return path
		}

		path.Cells = append(path.Cells, next)
		path.LastFree = next
		if b.IsPause(next) {
			path.Stop = StopPause
			path.At = next
			return path
		}
		cur = next
	}
}

// ExitDirs returns the candidate directions a piece tries, mirror applied.
func ExitDirs(g Geometry, p Piece) []Dir {
	dirs := g.Components(p.Facing)
	if p.Mirror {
		for i, d := range dirs {
			dirs[i] = g.Opposite(d)
		}
	}
	return dirs
}

// ResolvePiece resolves every candidate direction of p and picks one:
//  1. the only candidate that can exit,
//  2. the shorter one when both can exit,
//  3. the longer one when neither can.
//
// Equal lengths keep the first candidate.
func ResolvePiece(b Board, occ Occupancy, p Piece) Path {
	dirs := ExitDirs(b.Geometry, p)
	best := Resolve(b, occ, p.Coord, dirs[0])
	for _, d := range dirs[1:] {
		best = preferPath(best, Resolve(b, occ, p.Coord, d))
	}
	return best
}

func preferPath(a, b Path) Path {
	aExit, bExit := a.CanExit(), b.CanExit()
	switch {
	case aExit != bExit:
		if aExit {
			return a
		}
		return b
	case aExit:
		if b.Len() < a.Len() {
			return b
		}
		return a
	default:
		if b.Len() > a.Len() {
			return b
		}
		return a
	}
}
