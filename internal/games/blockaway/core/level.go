package core

// Level is a complete, immutable puzzle definition. Runtime state lives in
// State; nothing here changes during play.
type Level struct {
	ID           string
	Name         string
	Board        Board
	Pieces       Occupancy
	Mode         Mode
	MoveBudget   int // 0 = unlimited
	MistakeLimit int // 0 = invalid taps are free
	Metadata     map[string]string
}

// Kind returns the level's grid topology.
func (l Level) Kind() Kind {
	return l.Board.Geometry.Kind()
}

// NewGeneratedLevel wraps a generator result as a level.
func NewGeneratedLevel(id, name string, b Board, mode Mode, res GenResult) Level {
	return Level{
		ID:     id,
		Name:   name,
		Board:  b,
		Pieces: res.Pieces.Clone(),
		Mode:   mode,
		Metadata: map[string]string{
			"generated": "true",
		},
	}
}
