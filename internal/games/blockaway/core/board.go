package core

import (
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Mode selects what a tap on a blocked piece does.
type Mode uint8

const (
	// ModeClassic leaves blocked pieces in place.
	ModeClassic Mode = iota
	// ModePush slides blocked pieces up to their blocker.
	ModePush
)

// String returns the string representation of a mode.
func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModePush:
		return "push"
	default:
		return "unknown"
	}
}

// ParseMode parses "classic" or "push". Empty means classic.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "classic":
		return ModeClassic, true
	case "push":
		return ModePush, true
	default:
		return ModeClassic, false
	}
}

// Carousel rotates the pieces on its arm cells one step clockwise.
// Arms are listed in clockwise order around the center.
type Carousel struct {
	Center Coord
	Arms   []Dir
}

// ArmCells returns the ring cells in arm order.
func (c Carousel) ArmCells(g Geometry) []Coord {
	cells := make([]Coord, len(c.Arms))
	for i, d := range c.Arms {
		cells[i] = g.Add(c.Center, d)
	}
	return cells
}

// Board holds the static features of a level.
type Board struct {
	Geometry  Geometry
	Voids     mapset.Set[Coord]
	Pauses    mapset.Set[Coord]
	Carousels []Carousel
}

// NewBoard creates a board with the given void cells and no other features.
func NewBoard(g Geometry, voids ...Coord) Board {
	b := Board{
		Geometry: g,
		Voids:    mapset.New[Coord](),
		Pauses:   mapset.New[Coord](),
	}
	for _, v := range voids {
		b.Voids.Put(v)
	}
	return b
}

// WithPauses returns a copy of b with the given pause cells added.
func (b Board) WithPauses(pauses ...Coord) Board {
	out := b.Clone()
	for _, p := range pauses {
		out.Pauses.Put(p)
	}
	return out
}

// WithCarousel returns a copy of b with one more carousel.
func (b Board) WithCarousel(c Carousel) Board {
	out := b.Clone()
	out.Carousels = append(out.Carousels, c)
	return out
}

// Clone deep-copies the feature sets.
func (b Board) Clone() Board {
	out := Board{
		Geometry:  b.Geometry,
		Voids:     mapset.New[Coord](),
		Pauses:    mapset.New[Coord](),
		Carousels: make([]Carousel, len(b.Carousels)),
	}
	b.Voids.Each(func(c Coord) { out.Voids.Put(c) })
	b.Pauses.Each(func(c Coord) { out.Pauses.Put(c) })
	for i, c := range b.Carousels {
		out.Carousels[i] = Carousel{Center: c.Center, Arms: append([]Dir(nil), c.Arms...)}
	}
	return out
}

// IsVoid reports whether c is a hole.
func (b Board) IsVoid(c Coord) bool {
	return b.Voids.Has(c)
}

// IsPause reports whether c is a pause cell.
func (b Board) IsPause(c Coord) bool {
	return b.Pauses.Has(c)
}

// VoidCells returns the holes in row-major order.
func (b Board) VoidCells() []Coord {
	var out []Coord
	b.Voids.Each(func(c Coord) { out = append(out, c) })
	sortCoords(out)
	return out
}

// PauseCells returns the pause cells in row-major order.
func (b Board) PauseCells() []Coord {
	var out []Coord
	b.Pauses.Each(func(c Coord) { out = append(out, c) })
	sortCoords(out)
	return out
}

// PlayableCells returns every in-bounds cell that is not a hole.
func (b Board) PlayableCells() []Coord {
	cells := b.Geometry.Cells()
	out := make([]Coord, 0, len(cells))
	for _, c := range cells {
		if !b.IsVoid(c) {
			out = append(out, c)
		}
	}
	return out
}

// CarouselAt returns the index of the carousel centered on c, or -1.
func (b Board) CarouselAt(c Coord) int {
	for i, car := range b.Carousels {
		if car.Center == c {
			return i
		}
	}
	return -1
}
