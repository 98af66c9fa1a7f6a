package core

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ValidateLevel checks that a level is well formed. With requireSolvable it
// also runs the greedy solver.
// Checks:
//   - pieces, voids and pauses are on the grid
//   - no piece sits on a void or a carousel center
//   - piece ids are unique and facings are valid
//   - pauses and carousels only appear on hex boards
//   - carousels have 2+ distinct arms on playable cells
func ValidateLevel(l Level, requireSolvable bool) error {
	b := l.Board
	g := b.Geometry
	if g == nil {
		return ValidationError{Code: "NO_GEOMETRY", Message: "level has no grid"}
	}

	for _, c := range b.VoidCells() {
		if !g.InBounds(c) {
			return ValidationError{Code: "OUT_OF_BOUNDS", Message: fmt.Sprintf("void %s is off the grid", g.Key(c))}
		}
	}

	if g.Kind() == KindSquare && (b.Pauses.Size() > 0 || len(b.Carousels) > 0) {
		return ValidationError{Code: "PAUSE_ON_SQUARE", Message: "pause cells and carousels need a hex grid"}
	}
	for _, c := range b.PauseCells() {
		if !g.InBounds(c) {
			return ValidationError{Code: "OUT_OF_BOUNDS", Message: fmt.Sprintf("pause %s is off the grid", g.Key(c))}
		}
		if b.IsVoid(c) {
			return ValidationError{Code: "ON_VOID", Message: fmt.Sprintf("pause %s is a void", g.Key(c))}
		}
	}

	for i, car := range b.Carousels {
		if err := validateCarousel(b, i, car); err != nil {
			return err
		}
	}

	ids := mapset.New[int]()
	for _, p := range l.Pieces.Sorted() {
		key := g.Key(p.Coord)
		switch {
		case !g.InBounds(p.Coord):
			return ValidationError{Code: "OUT_OF_BOUNDS", Message: fmt.Sprintf("piece %d at %s is off the grid", p.ID, key)}
		case b.IsVoid(p.Coord):
			return ValidationError{Code: "ON_VOID", Message: fmt.Sprintf("piece %d at %s sits on a void", p.ID, key)}
		case b.CarouselAt(p.Coord) >= 0:
			return ValidationError{Code: "BAD_CAROUSEL", Message: fmt.Sprintf("piece %d at %s sits on a carousel center", p.ID, key)}
		case ids.Has(p.ID):
			return ValidationError{Code: "DUPLICATE_ID", Message: fmt.Sprintf("piece id %d is used twice", p.ID)}
		case !ValidDir(g, p.Facing.Dir):
			return ValidationError{Code: "BAD_FACING", Message: fmt.Sprintf("piece %d at %s has no valid direction", p.ID, key)}
		}
		ids.Put(p.ID)
	}

	if requireSolvable {
		if res := CheckSolvable(b, l.Pieces); !res.Solvable {
			return ValidationError{
				Code:    "NOT_SOLVABLE",
				Message: fmt.Sprintf("greedy solver leaves %d pieces stuck", res.StuckCount),
			}
		}
	}

	return nil
}

func validateCarousel(b Board, i int, car Carousel) error {
	g := b.Geometry
	bad := func(format string, args ...any) error {
		return ValidationError{Code: "BAD_CAROUSEL", Message: fmt.Sprintf("carousel %d: ", i) + fmt.Sprintf(format, args...)}
	}
	if !g.InBounds(car.Center) || b.IsVoid(car.Center) {
		return bad("center %s is not playable", g.Key(car.Center))
	}
	if len(car.Arms) < 2 {
		return bad("needs at least 2 arms, has %d", len(car.Arms))
	}
	seen := mapset.New[Dir]()
	for _, d := range car.Arms {
		if !ValidDir(g, d) || seen.Has(d) {
			return bad("arm %d is invalid or repeated", d)
		}
		seen.Put(d)
		cell := g.Add(car.Center, d)
		if !g.InBounds(cell) || b.IsVoid(cell) {
			return bad("arm %s is not playable", g.DirName(d))
		}
	}
	return nil
}

// LevelStats holds summary figures about a level.
type LevelStats struct {
	Pieces    int
	Locked    int
	Timed     int
	Iced      int
	Mirrored  int
	Axes      int
	Voids     int
	Pauses    int
	Carousels int
	Solvable  bool
	Depth     int
}

// ComputeLevelStats calculates statistics for a level.
func ComputeLevelStats(l Level) LevelStats {
	stats := LevelStats{
		Pieces:    len(l.Pieces),
		Voids:     l.Board.Voids.Size(),
		Pauses:    l.Board.Pauses.Size(),
		Carousels: len(l.Board.Carousels),
	}
	for _, p := range l.Pieces {
		if p.NeighborGated() {
			stats.Locked++
		}
		if p.TimedGated() {
			stats.Timed++
		}
		if p.IceCount > 0 {
			stats.Iced++
		}
		if p.Mirror {
			stats.Mirrored++
		}
		if p.Facing.Axis {
			stats.Axes++
		}
	}
	res := CheckSolvable(l.Board, l.Pieces)
	stats.Solvable = res.Solvable
	stats.Depth = res.Depth
	return stats
}
