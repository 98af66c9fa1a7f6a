// Package formats provides the level file codecs for Block Away.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
// Cells are written as geometry keys: "row,col" on square grids and "q,r"
// on hex grids.
type YAMLLevel struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Grid         string            `yaml:"grid,omitempty"` // square (default) or hex
	Size         *YAMLSize         `yaml:"size,omitempty"`
	Radius       int               `yaml:"radius,omitempty"`
	Mode         string            `yaml:"mode,omitempty"`
	MoveBudget   int               `yaml:"move_budget,omitempty"`
	MistakeLimit int               `yaml:"mistake_limit,omitempty"`
	Voids        []string          `yaml:"voids,omitempty"`
	Pauses       []string          `yaml:"pauses,omitempty"`
	Carousels    []YAMLCarousel    `yaml:"carousels,omitempty"`
	Pieces       []YAMLPiece       `yaml:"pieces"`
	Metadata     map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents square grid dimensions.
type YAMLSize struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// YAMLCarousel represents a rotating fixture.
type YAMLCarousel struct {
	Center string   `yaml:"center"`
	Arms   []string `yaml:"arms,flow"`
}

// YAMLPiece represents a single piece in YAML format.
type YAMLPiece struct {
	ID          int    `yaml:"id,omitempty"`
	At          string `yaml:"at"`
	Dir         string `yaml:"dir"` // "right", or an axis such as "right_left"
	Locked      bool   `yaml:"locked,omitempty"`
	UnlockAfter int    `yaml:"unlock_after,omitempty"`
	Ice         int    `yaml:"ice,omitempty"`
	Mirror      bool   `yaml:"mirror,omitempty"`
	Paused      bool   `yaml:"paused,omitempty"`
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (core.Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return core.Level{}, fmt.Errorf("formats: yaml unmarshal: %w", err)
	}
	return yl.ToLevel()
}

// ToLevel converts the file representation into an engine level.
func (yl YAMLLevel) ToLevel() (core.Level, error) {
	g, err := yl.geometry()
	if err != nil {
		return core.Level{}, err
	}
	mode, ok := core.ParseMode(yl.Mode)
	if !ok {
		return core.Level{}, fmt.Errorf("formats: unknown mode %q", yl.Mode)
	}

	b := core.NewBoard(g)
	for _, key := range yl.Voids {
		c, err := parseCell(g, "void", key)
		if err != nil {
			return core.Level{}, err
		}
		b.Voids.Put(c)
	}
	for _, key := range yl.Pauses {
		c, err := parseCell(g, "pause", key)
		if err != nil {
			return core.Level{}, err
		}
		b.Pauses.Put(c)
	}
	for i, yc := range yl.Carousels {
		center, err := parseCell(g, "carousel center", yc.Center)
		if err != nil {
			return core.Level{}, err
		}
		car := core.Carousel{Center: center}
		for _, name := range yc.Arms {
			d, ok := g.ParseDir(name)
			if !ok {
				return core.Level{}, fmt.Errorf("formats: carousel %d: unknown arm %q", i, name)
			}
			car.Arms = append(car.Arms, d)
		}
		b.Carousels = append(b.Carousels, car)
	}

	pieces := make(core.Occupancy, len(yl.Pieces))
	nextID := 1
	for _, yp := range yl.Pieces {
		if yp.ID >= nextID {
			nextID = yp.ID + 1
		}
	}
	for _, yp := range yl.Pieces {
		c, err := parseCell(g, "piece", yp.At)
		if err != nil {
			return core.Level{}, err
		}
		facing, ok := core.ParseFacing(g, yp.Dir)
		if !ok {
			return core.Level{}, fmt.Errorf("formats: piece at %s: unknown direction %q", yp.At, yp.Dir)
		}
		if _, dup := pieces[c]; dup {
			return core.Level{}, fmt.Errorf("formats: two pieces at %s", yp.At)
		}
		id := yp.ID
		if id <= 0 {
			id = nextID
			nextID++
		}
		pieces[c] = core.Piece{
			ID:               id,
			Coord:            c,
			Facing:           facing,
			Locked:           yp.Locked || yp.UnlockAfter > 0,
			UnlockAfterMoves: yp.UnlockAfter,
			IceCount:         yp.Ice,
			Mirror:           yp.Mirror,
			Paused:           yp.Paused,
		}
	}

	return core.Level{
		ID:           yl.ID,
		Name:         yl.Name,
		Board:        b,
		Pieces:       pieces,
		Mode:         mode,
		MoveBudget:   yl.MoveBudget,
		MistakeLimit: yl.MistakeLimit,
		Metadata:     yl.Metadata,
	}, nil
}

func (yl YAMLLevel) geometry() (core.Geometry, error) {
	kind, ok := core.ParseKind(yl.Grid)
	if !ok {
		return nil, fmt.Errorf("formats: unknown grid %q", yl.Grid)
	}
	if kind == core.KindHex {
		if yl.Radius < 0 {
			return nil, fmt.Errorf("formats: negative hex radius %d", yl.Radius)
		}
		return core.NewHex(yl.Radius), nil
	}
	if yl.Size == nil || yl.Size.Rows <= 0 || yl.Size.Cols <= 0 {
		return nil, fmt.Errorf("formats: square grid needs a positive size")
	}
	return core.NewSquare(yl.Size.Rows, yl.Size.Cols), nil
}

func parseCell(g core.Geometry, what, key string) (core.Coord, error) {
	c, ok := core.ParseKey(g, key)
	if !ok {
		return core.Coord{}, fmt.Errorf("formats: bad %s cell %q", what, key)
	}
	return c, nil
}

// FromLevel converts an engine level into its file representation.
// Pieces, voids and pauses are written in row-major order.
func FromLevel(l core.Level) YAMLLevel {
	g := l.Board.Geometry
	yl := YAMLLevel{
		ID:           l.ID,
		Name:         l.Name,
		Grid:         g.Kind().String(),
		Mode:         l.Mode.String(),
		MoveBudget:   l.MoveBudget,
		MistakeLimit: l.MistakeLimit,
		Metadata:     l.Metadata,
	}
	switch geo := g.(type) {
	case core.Square:
		yl.Size = &YAMLSize{Rows: geo.Rows, Cols: geo.Cols}
	case core.Hex:
		yl.Radius = geo.Radius
	}

	for _, c := range l.Board.VoidCells() {
		yl.Voids = append(yl.Voids, g.Key(c))
	}
	for _, c := range l.Board.PauseCells() {
		yl.Pauses = append(yl.Pauses, g.Key(c))
	}
	for _, car := range l.Board.Carousels {
		yc := YAMLCarousel{Center: g.Key(car.Center)}
		for _, d := range car.Arms {
			yc.Arms = append(yc.Arms, g.DirName(d))
		}
		yl.Carousels = append(yl.Carousels, yc)
	}
	for _, p := range l.Pieces.Sorted() {
		// A timer only means something on a locked piece.
		unlockAfter := 0
		if p.Locked {
			unlockAfter = max(p.UnlockAfterMoves, 0)
		}
		yl.Pieces = append(yl.Pieces, YAMLPiece{
			ID:          p.ID,
			At:          g.Key(p.Coord),
			Dir:         core.FacingName(g, p.Facing),
			Locked:      p.Locked && unlockAfter == 0,
			UnlockAfter: unlockAfter,
			Ice:         p.IceCount,
			Mirror:      p.Mirror,
			Paused:      p.Paused,
		})
	}
	return yl
}

// EncodeYAML renders a level as YAML.
func EncodeYAML(l core.Level) ([]byte, error) {
	data, err := yaml.Marshal(FromLevel(l))
	if err != nil {
		return nil, fmt.Errorf("formats: yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

// IsSupported reports whether a file name has a level extension.
func IsSupported(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range FormatExtensions() {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
