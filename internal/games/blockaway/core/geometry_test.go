package core_test

import (
	"testing"

	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
)

func TestSquareInBounds(t *testing.T) {
	g := core.NewSquare(2, 3)

	tests := []struct {
		c    core.Coord
		want bool
	}{
		{core.RC(0, 0), true},
		{core.RC(1, 2), true},
		{core.RC(2, 0), false},
		{core.RC(0, 3), false},
		{core.RC(-1, 0), false},
	}

	for _, tt := range tests {
		if got := g.InBounds(tt.c); got != tt.want {
			t.Errorf("InBounds(%s) = %v, want %v", g.Key(tt.c), got, tt.want)
		}
	}
	if n := len(g.Cells()); n != 6 {
		t.Errorf("expected 6 cells, got %d", n)
	}
}

func TestHexCellsAndBounds(t *testing.T) {
	g := core.NewHex(2)

	if n := len(g.Cells()); n != 19 {
		t.Errorf("radius 2 should have 19 cells, got %d", n)
	}
	for _, c := range g.Cells() {
		if !g.InBounds(c) {
			t.Errorf("cell %s reported out of bounds", g.Key(c))
		}
	}
	if g.InBounds(core.QR(2, 1)) {
		t.Error("(2,1) has s=-3 and should be out of bounds")
	}
	if got := len(g.Neighbors(core.QR(0, 0))); got != 6 {
		t.Errorf("center should have 6 neighbours, got %d", got)
	}
	if got := len(g.Neighbors(core.QR(2, 0))); got != 3 {
		t.Errorf("corner should have 3 neighbours, got %d", got)
	}
}

func TestOppositeAndComponents(t *testing.T) {
	sq := core.NewSquare(3, 3)
	hx := core.NewHex(1)

	tests := []struct {
		name string
		g    core.Geometry
		d    core.Dir
		opp  core.Dir
	}{
		{"square up", sq, core.Up, core.Down},
		{"square left", sq, core.Left, core.Right},
		{"hex e", hx, core.HexE, core.HexW},
		{"hex ne", hx, core.HexNE, core.HexSW},
		{"hex se", hx, core.HexSE, core.HexNW},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.Opposite(tt.d); got != tt.opp {
				t.Errorf("Opposite = %s, want %s", tt.g.DirName(got), tt.g.DirName(tt.opp))
			}
			axis := tt.g.Axis(tt.d)
			if axis != tt.g.Axis(tt.opp) {
				t.Error("a direction and its opposite should share an axis")
			}
			comps := tt.g.Components(axis)
			if len(comps) != 2 || comps[1] != tt.g.Opposite(comps[0]) || comps[0] > comps[1] {
				t.Errorf("unexpected components %v", comps)
			}
		})
	}
}

func TestParseFacing(t *testing.T) {
	sq := core.NewSquare(3, 3)
	hx := core.NewHex(1)

	tests := []struct {
		g    core.Geometry
		in   string
		want core.Facing
		ok   bool
	}{
		{sq, "right", core.Single(core.Right), true},
		{sq, "LEFT", core.Single(core.Left), true},
		{sq, "right_left", sq.Axis(core.Right), true},
		{sq, "left_right", sq.Axis(core.Right), true},
		{sq, "up_left", core.Facing{}, false},
		{sq, "ne", core.Facing{}, false},
		{hx, "ne_sw", hx.Axis(core.HexNE), true},
		{hx, "se", core.Single(core.HexSE), true},
	}

	for _, tt := range tests {
		got, ok := core.ParseFacing(tt.g, tt.in)
		if ok != tt.ok {
			t.Errorf("ParseFacing(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseFacing(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if ok {
			back, _ := core.ParseFacing(tt.g, core.FacingName(tt.g, got))
			if back != got {
				t.Errorf("FacingName round trip failed for %q", tt.in)
			}
		}
	}
}

func TestDistanceToEdge(t *testing.T) {
	sq := core.NewSquare(5, 5)
	if d := core.DistanceToEdge(sq, core.RC(1, 3), core.Up); d != 1 {
		t.Errorf("up from (1,3): got %d, want 1", d)
	}
	if d := core.DistanceToEdge(sq, core.RC(1, 3), core.Left); d != 3 {
		t.Errorf("left from (1,3): got %d, want 3", d)
	}

	hx := core.NewHex(2)
	if d := core.DistanceToEdge(hx, core.QR(0, 0), core.HexNE); d != 2 {
		t.Errorf("ne from center: got %d, want 2", d)
	}
	if d := core.DistanceToEdge(hx, core.QR(0, 0), core.Dir(9)); d != 0 {
		t.Errorf("invalid direction should have distance 0, got %d", d)
	}
}

func TestParseKey(t *testing.T) {
	sq := core.NewSquare(3, 3)
	hx := core.NewHex(2)

	for _, c := range sq.Cells() {
		got, ok := core.ParseKey(sq, sq.Key(c))
		if !ok || got != c {
			t.Errorf("square key %q parsed to %v", sq.Key(c), got)
		}
	}
	for _, c := range hx.Cells() {
		got, ok := core.ParseKey(hx, hx.Key(c))
		if !ok || got != c {
			t.Errorf("hex key %q parsed to %v", hx.Key(c), got)
		}
	}
	if got, _ := core.ParseKey(sq, " 2, 1 "); got != core.RC(2, 1) {
		t.Errorf("square key is row,col: got %v", got)
	}
	if _, ok := core.ParseKey(sq, "2;1"); ok {
		t.Error("malformed key should fail")
	}
}
