package core

// Solvability is the result of the greedy removal check.
type Solvability struct {
	Solvable   bool
	StuckCount int
	// Taps lists the cells tapped in removal order, pause slides included.
	Taps []Coord
	// Order lists piece ids in the order they left the board.
	Order []int
	// Depth counts removal waves; every clearable piece of a wave goes at once.
	Depth int
	// Slides counts pause stops taken when nothing was clearable.
	Slides int
	// Rotations counts carousel turns taken when nothing else could move.
	Rotations int
}

// CheckSolvable greedily removes pieces until the board is empty or nothing
// can move. Every lock is treated as a neighbour gate and ice is ignored.
// Removing a piece never closes another piece's exit, so the greedy order is
// complete for classic play. When nothing can leave, a pause slide is taken,
// then the first carousel turn that frees a piece.
func CheckSolvable(b Board, occ Occupancy) Solvability {
	cur := occ.Clone()
	res := Solvability{}
	budget := len(occ) * (len(b.Geometry.Cells()) + 1)

	for steps := 0; len(cur) > 0 && steps < budget; steps++ {
		wave := structurallyClearable(b, cur)
		if len(wave) > 0 {
			for _, p := range wave {
				delete(cur, p.Coord)
				res.Taps = append(res.Taps, p.Coord)
				res.Order = append(res.Order, p.ID)
			}
			res.Depth++
			continue
		}

		if p, path, ok := firstPauseSlide(b, cur); ok {
			delete(cur, p.Coord)
			res.Taps = append(res.Taps, p.Coord)
			p.Coord = path.At
			p.Paused = true
			cur[p.Coord] = p
			res.Slides++
			continue
		}

		i, turns, ok := firstUsefulRotation(b, cur)
		if !ok {
			break
		}
		for t := 0; t < turns; t++ {
			cur, _ = rotateRiders(b, cur, i)
		}
		res.Rotations += turns
	}

	res.StuckCount = len(cur)
	res.Solvable = res.StuckCount == 0
	return res
}

// structurallyClearable returns pieces that can leave using paths and
// neighbour gates only, in row-major order.
func structurallyClearable(b Board, occ Occupancy) []Piece {
	var out []Piece
	for _, p := range occ.Sorted() {
		if p.Locked && hasOccupiedNeighbor(b.Geometry, occ, p.Coord) {
			continue
		}
		if ResolvePiece(b, occ, p).CanExit() {
			out = append(out, p)
		}
	}
	return out
}

func firstPauseSlide(b Board, occ Occupancy) (Piece, Path, bool) {
	for _, p := range occ.Sorted() {
		if p.Locked && hasOccupiedNeighbor(b.Geometry, occ, p.Coord) {
			continue
		}
		path := ResolvePiece(b, occ, p)
		if _, ok := path.Pause(); ok {
			return p, path, true
		}
	}
	return Piece{}, Path{}, false
}

// firstUsefulRotation returns the first carousel and the number of turns
// after which a piece can leave or slide to a pause.
func firstUsefulRotation(b Board, occ Occupancy) (idx, turns int, ok bool) {
	for i := range b.Carousels {
		if n := rotationTurns(b, occ, i); n > 0 {
			return i, n, true
		}
	}
	return 0, 0, false
}

// rotationTurns returns how many turns of carousel idx free a piece, or 0
// when no turn short of a full circle does.
func rotationTurns(b Board, occ Occupancy, idx int) int {
	cur := occ
	for turns := 1; turns < len(b.Carousels[idx].Arms); turns++ {
		next, ok := rotateRiders(b, cur, idx)
		if !ok {
			return 0
		}
		if len(structurallyClearable(b, next)) > 0 {
			return turns
		}
		if _, _, slide := firstPauseSlide(b, next); slide {
			return turns
		}
		cur = next
	}
	return 0
}
