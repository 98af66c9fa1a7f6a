package core

import "strings"

// RenderASCII draws the board as text, two characters per cell: a marker
// followed by a glyph. Used for debugging, tests and the CLI.
//
// Markers: '#' locked, '+' timed lock, '*' iced, '~' mirror.
// Glyphs: '.' empty, 'o' void, ':' pause, '@' carousel center.
// Square pieces use ^ > v < and | - for axes. Hex pieces use the numpad
// layout (> 9 7 < 1 3) and = / \ for axes; hex rows are indented by |r|.
func RenderASCII(b Board, occ Occupancy) string {
	g := b.Geometry
	var sb strings.Builder
	var line strings.Builder
	row, first := 0, true

	flush := func() {
		sb.WriteString(strings.TrimRight(line.String(), " "))
		sb.WriteByte('\n')
		line.Reset()
	}

	for _, c := range g.Cells() {
		if first || c.Y != row {
			if !first {
				flush()
			}
			row, first = c.Y, false
			if g.Kind() == KindHex {
				line.WriteString(strings.Repeat(" ", abs(row)))
			}
		}
		line.WriteString(CellToken(b, occ, c))
	}
	if !first {
		flush()
	}
	return sb.String()
}

// CellToken returns the two characters RenderASCII draws for cell c.
func CellToken(b Board, occ Occupancy, c Coord) string {
	p, ok := occ[c]
	switch {
	case ok:
		return string([]byte{pieceMarker(p), FacingGlyph(b.Geometry, p.Facing)})
	case b.IsVoid(c):
		return " o"
	case b.IsPause(c):
		return " :"
	case b.CarouselAt(c) >= 0:
		return " @"
	default:
		return " ."
	}
}

func pieceMarker(p Piece) byte {
	switch {
	case p.TimedGated():
		return '+'
	case p.Locked:
		return '#'
	case p.IceCount > 0:
		return '*'
	case p.Mirror:
		return '~'
	default:
		return ' '
	}
}

var (
	squareGlyphs     = []byte{'^', '>', 'v', '<'}
	squareAxisGlyphs = []byte{'|', '-'}
	hexGlyphs        = []byte{'>', '9', '7', '<', '1', '3'}
	hexAxisGlyphs    = []byte{'=', '/', '\\'}
)

// FacingGlyph returns the single-character glyph for a facing.
func FacingGlyph(g Geometry, f Facing) byte {
	singles, axes := squareGlyphs, squareAxisGlyphs
	if g.Kind() == KindHex {
		singles, axes = hexGlyphs, hexAxisGlyphs
	}
	if f.Axis {
		return axes[int(g.Axis(f.Dir).Dir)]
	}
	if int(f.Dir) >= len(singles) {
		return '?'
	}
	return singles[f.Dir]
}

// TextLayout returns where RenderASCII puts each cell: X is the column of the
// cell's marker character and Y its line. The glyph sits at X+1.
func TextLayout(g Geometry) map[Coord]Coord {
	out := make(map[Coord]Coord)
	line, col, row, first := -1, 0, 0, true
	for _, c := range g.Cells() {
		if first || c.Y != row {
			row, first = c.Y, false
			line++
			col = 0
			if g.Kind() == KindHex {
				col = abs(row)
			}
		}
		out[c] = Coord{X: col, Y: line}
		col += 2
	}
	return out
}
