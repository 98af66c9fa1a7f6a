package blockaway

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/levels/formats"
	"github.com/vovakirdan/blockbench/internal/storage"
)

// Level sources recorded in the library.
const (
	SourceGenerated = "generated"
	SourceImported  = "imported"
)

// Archive encodes a level for the library with its solvability summary.
func Archive(l core.Level, source string) (storage.LevelRecord, error) {
	data, err := formats.EncodeYAML(l)
	if err != nil {
		return storage.LevelRecord{}, err
	}
	sol := core.CheckSolvable(l.Board, l.Pieces)
	seed, _ := strconv.ParseInt(l.Metadata["seed"], 10, 64)

	return storage.LevelRecord{
		LevelID:  l.ID,
		Name:     l.Name,
		Grid:     l.Kind().String(),
		Mode:     l.Mode.String(),
		Source:   source,
		Seed:     seed,
		Pieces:   len(l.Pieces),
		Solvable: sol.Solvable,
		Depth:    sol.Depth,
		YAML:     data,
	}, nil
}

// Restore decodes a library record back into a level.
func Restore(rec storage.LevelRecord) (core.Level, error) {
	l, err := formats.ParseYAML(rec.YAML)
	if err != nil {
		return core.Level{}, fmt.Errorf("library level %s: %w", rec.ID, err)
	}
	return l, nil
}
