package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Coord identifies a cell.
// On square grids X is the column and Y the row; on hex grids (X, Y) are the
// axial coordinates (q, r).
type Coord struct {
	X int
	Y int
}

// RC builds a square-grid coordinate from a row and a column.
func RC(row, col int) Coord {
	return Coord{X: col, Y: row}
}

// QR builds an axial hex coordinate.
func QR(q, r int) Coord {
	return Coord{X: q, Y: r}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Offset returns the sum of two coordinates.
func (c Coord) Offset(v Coord) Coord {
	return Coord{X: c.X + v.X, Y: c.Y + v.Y}
}

// Less orders coordinates row-major (Y first, then X).
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// Kind names a grid topology.
type Kind uint8

const (
	KindSquare Kind = iota
	KindHex
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindSquare:
		return "square"
	case KindHex:
		return "hex"
	default:
		return "unknown"
	}
}

// ParseKind parses "square" or "hex".
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "square":
		return KindSquare, true
	case "hex", "hexagon":
		return KindHex, true
	default:
		return KindSquare, false
	}
}

// Dir indexes a unit movement vector of a geometry.
// Square grids have four directions, hex grids six; Opposite is always d + n/2.
type Dir uint8

// Square directions.
const (
	Up Dir = iota
	Right
	Down
	Left
)

// Hex directions (axial).
const (
	HexE Dir = iota
	HexNE
	HexNW
	HexW
	HexSW
	HexSE
)

// Facing is a piece's heading: a single direction, or a bidirectional axis
// that may exit through Dir or its opposite. Axis facings keep Dir canonical
// (the lower index of the pair); use Geometry.Axis to build them.
type Facing struct {
	Dir  Dir
	Axis bool
}

// Single returns a one-way facing.
func Single(d Dir) Facing {
	return Facing{Dir: d}
}

// Geometry is the coordinate system a board lives on.
type Geometry interface {
	Kind() Kind
	// InBounds reports whether c is a cell of the grid.
	InBounds(c Coord) bool
	// Add returns the neighbour of c in direction d. The result may be out of bounds.
	Add(c Coord, d Dir) Coord
	// Neighbors returns the in-bounds neighbours of c in direction order.
	Neighbors(c Coord) []Coord
	// Cells returns every in-bounds cell in row-major order.
	Cells() []Coord
	NumDirs() int
	Opposite(d Dir) Dir
	// Axis returns the canonical bidirectional facing containing d.
	Axis(d Dir) Facing
	// Components returns the exit directions of a facing in fixed order.
	Components(f Facing) []Dir
	// Key returns the canonical "a,b" key of c ("row,col" or "q,r").
	Key(c Coord) string
	DirName(d Dir) string
	ParseDir(s string) (Dir, bool)
}

// dirTable is the direction bookkeeping shared by both topologies.
type dirTable struct {
	vectors []Coord
	names   []string
}

func (t dirTable) NumDirs() int {
	return len(t.vectors)
}

func (t dirTable) Add(c Coord, d Dir) Coord {
	if int(d) >= len(t.vectors) {
		return c
	}
	return c.Offset(t.vectors[d])
}

func (t dirTable) Opposite(d Dir) Dir {
	n := len(t.vectors)
	return Dir((int(d) + n/2) % n)
}

func (t dirTable) Axis(d Dir) Facing {
	half := len(t.vectors) / 2
	return Facing{Dir: Dir(int(d) % half), Axis: true}
}

func (t dirTable) Components(f Facing) []Dir {
	if !f.Axis {
		return []Dir{f.Dir}
	}
	canonical := t.Axis(f.Dir).Dir
	return []Dir{canonical, t.Opposite(canonical)}
}

func (t dirTable) DirName(d Dir) string {
	if int(d) >= len(t.names) {
		return "unknown"
	}
	return t.names[d]
}

func (t dirTable) ParseDir(s string) (Dir, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range t.names {
		if name == s {
			return Dir(i), true
		}
	}
	return 0, false
}

// Square is a rows x cols grid with four-neighbour connectivity.
type Square struct {
	Rows int
	Cols int
}

var squareDirs = dirTable{
	vectors: []Coord{{0, -1}, {1, 0}, {0, 1}, {-1, 0}},
	names:   []string{"up", "right", "down", "left"},
}

// NewSquare creates a square geometry.
func NewSquare(rows, cols int) Square {
	return Square{Rows: rows, Cols: cols}
}

func (s Square) NumDirs() int                    { return squareDirs.NumDirs() }
func (s Square) Add(c Coord, d Dir) Coord        { return squareDirs.Add(c, d) }
func (s Square) Opposite(d Dir) Dir              { return squareDirs.Opposite(d) }
func (s Square) Axis(d Dir) Facing               { return squareDirs.Axis(d) }
func (s Square) Components(f Facing) []Dir       { return squareDirs.Components(f) }
func (s Square) DirName(d Dir) string            { return squareDirs.DirName(d) }
func (s Square) ParseDir(str string) (Dir, bool) { return squareDirs.ParseDir(str) }

// Kind returns KindSquare.
func (s Square) Kind() Kind {
	return KindSquare
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (s Square) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < s.Cols && c.Y >= 0 && c.Y < s.Rows
}

// Neighbors returns the orthogonal neighbours of c that lie on the grid.
func (s Square) Neighbors(c Coord) []Coord {
	return neighbors(s, c)
}

// Cells returns all coordinates ordered by row then column.
func (s Square) Cells() []Coord {
	coords := make([]Coord, 0, s.Rows*s.Cols)
	for y := 0; y < s.Rows; y++ {
		for x := 0; x < s.Cols; x++ {
			coords = append(coords, Coord{X: x, Y: y})
		}
	}
	return coords
}

// Key returns "row,col".
func (s Square) Key(c Coord) string {
	return fmt.Sprintf("%d,%d", c.Y, c.X)
}

// Hex is a hexagon-shaped axial grid of the given radius.
type Hex struct {
	Radius int
}

var hexDirs = dirTable{
	vectors: []Coord{{1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1}, {0, 1}},
	names:   []string{"e", "ne", "nw", "w", "sw", "se"},
}

// NewHex creates a hex geometry. Radius 0 is a single cell.
func NewHex(radius int) Hex {
	return Hex{Radius: radius}
}

func (h Hex) NumDirs() int                    { return hexDirs.NumDirs() }
func (h Hex) Add(c Coord, d Dir) Coord        { return hexDirs.Add(c, d) }
func (h Hex) Opposite(d Dir) Dir              { return hexDirs.Opposite(d) }
func (h Hex) Axis(d Dir) Facing               { return hexDirs.Axis(d) }
func (h Hex) Components(f Facing) []Dir       { return hexDirs.Components(f) }
func (h Hex) DirName(d Dir) string            { return hexDirs.DirName(d) }
func (h Hex) ParseDir(str string) (Dir, bool) { return hexDirs.ParseDir(str) }

// Kind returns KindHex.
func (h Hex) Kind() Kind {
	return KindHex
}

// InBounds reports whether the axial coordinate lies within the radius.
func (h Hex) InBounds(c Coord) bool {
	s := -c.X - c.Y
	return abs(c.X) <= h.Radius && abs(c.Y) <= h.Radius && abs(s) <= h.Radius
}

// Neighbors returns the in-bounds axial neighbours of c.
func (h Hex) Neighbors(c Coord) []Coord {
	return neighbors(h, c)
}

// Cells returns all coordinates ordered by r then q.
func (h Hex) Cells() []Coord {
	coords := make([]Coord, 0)
	for r := -h.Radius; r <= h.Radius; r++ {
		qMin := max(-h.Radius, -r-h.Radius)
		qMax := min(h.Radius, -r+h.Radius)
		for q := qMin; q <= qMax; q++ {
			coords = append(coords, Coord{X: q, Y: r})
		}
	}
	return coords
}

// Key returns "q,r".
func (h Hex) Key(c Coord) string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

func neighbors(g Geometry, c Coord) []Coord {
	out := make([]Coord, 0, g.NumDirs())
	for d := 0; d < g.NumDirs(); d++ {
		n := g.Add(c, Dir(d))
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Facings lists every facing a geometry supports: single directions first,
// then axes when withAxes is set.
func Facings(g Geometry, withAxes bool) []Facing {
	out := make([]Facing, 0, g.NumDirs()+g.NumDirs()/2)
	for d := 0; d < g.NumDirs(); d++ {
		out = append(out, Single(Dir(d)))
	}
	if withAxes {
		for d := 0; d < g.NumDirs()/2; d++ {
			out = append(out, g.Axis(Dir(d)))
		}
	}
	return out
}

// FacingName renders a facing as "right" or "right_left".
func FacingName(g Geometry, f Facing) string {
	dirs := g.Components(f)
	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = g.DirName(d)
	}
	return strings.Join(names, "_")
}

// ParseFacing parses the output of FacingName. Axes are accepted in either
// order ("left_right" and "right_left" are the same axis).
func ParseFacing(g Geometry, s string) (Facing, bool) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "_")
	switch len(parts) {
	case 1:
		d, ok := g.ParseDir(parts[0])
		return Single(d), ok
	case 2:
		a, okA := g.ParseDir(parts[0])
		b, okB := g.ParseDir(parts[1])
		if !okA || !okB || g.Opposite(a) != b {
			return Facing{}, false
		}
		return g.Axis(a), true
	default:
		return Facing{}, false
	}
}

// ParseKey parses the output of Geometry.Key.
func ParseKey(g Geometry, s string) (Coord, bool) {
	a, b, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Coord{}, false
	}
	x, errA := strconv.Atoi(strings.TrimSpace(a))
	y, errB := strconv.Atoi(strings.TrimSpace(b))
	if errA != nil || errB != nil {
		return Coord{}, false
	}
	if g.Kind() == KindSquare {
		return RC(x, y), true
	}
	return QR(x, y), true
}

// DistanceToEdge counts the in-bounds cells between c and the grid boundary
// when walking in direction d.
func DistanceToEdge(g Geometry, c Coord, d Dir) int {
	if !ValidDir(g, d) {
		return 0
	}
	n := 0
	for cur := g.Add(c, d); g.InBounds(cur); cur = g.Add(cur, d) {
		n++
	}
	return n
}

// ValidDir reports whether d is one of g's directions.
func ValidDir(g Geometry, d Dir) bool {
	return int(d) < g.NumDirs()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
