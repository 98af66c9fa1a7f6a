package blockaway

import (
	"fmt"

	"github.com/vovakirdan/blockbench/internal/config"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
)

// Blueprint describes a level to generate.
type Blueprint struct {
	Kind   core.Kind
	Rows   int // square grids
	Cols   int
	Radius int // hex grids
	Voids  int

	Params core.GenParams

	MistakeLimit int
	// BudgetSlack adds a move budget of (greedy solution length + slack).
	// Zero leaves the level without a budget.
	BudgetSlack int
}

// BlueprintFor derives a blueprint from the workbench settings, scaled by
// the number of levels the player has solved.
func BlueprintFor(cfg config.WorkbenchConfig, solved int, seed uint64) (Blueprint, error) {
	gen := cfg.Generator
	kind, ok := core.ParseKind(gen.Grid)
	if !ok {
		return Blueprint{}, fmt.Errorf("unknown grid %q", gen.Grid)
	}
	if _, ok := core.ParseMode(gen.Mode); !ok {
		return Blueprint{}, fmt.Errorf("unknown mode %q", gen.Mode)
	}

	dm := config.NewDifficultyManager(cfg.Difficulty)
	return Blueprint{
		Kind:         kind,
		Rows:         gen.Rows,
		Cols:         gen.Cols,
		Radius:       gen.Radius,
		Voids:        dm.Voids(gen.Voids, solved),
		Params:       dm.Params(gen, solved, seed),
		MistakeLimit: cfg.Gameplay.MistakeLimit,
		BudgetSlack:  cfg.Gameplay.BudgetSlack,
	}, nil
}

// Geometry returns the grid described by the blueprint.
func (bp Blueprint) Geometry() core.Geometry {
	if bp.Kind == core.KindHex {
		return core.NewHex(max(bp.Radius, 1))
	}
	return core.NewSquare(max(bp.Rows, 1), max(bp.Cols, 1))
}

// BuildLevel scatters voids, generates the pieces and wraps them as a level.
// The same blueprint always yields the same level.
func BuildLevel(bp Blueprint) (core.Level, core.GenResult) {
	rng := core.NewRNG(bp.Params.Seed)
	g := bp.Geometry()
	b := core.NewBoard(g, core.ScatterVoids(g, bp.Voids, rng)...)
	res := core.Generate(b, bp.Params, rng)

	id := fmt.Sprintf("gen-%s-%d", g.Kind(), bp.Params.Seed)
	name := fmt.Sprintf("Generated %s #%d", g.Kind(), bp.Params.Seed)
	lvl := core.NewGeneratedLevel(id, name, b, bp.Params.Mode, res)
	lvl.MistakeLimit = bp.MistakeLimit
	if bp.BudgetSlack > 0 {
		sol := core.CheckSolvable(b, res.Pieces)
		lvl.MoveBudget = len(sol.Taps) + sol.Rotations + bp.BudgetSlack
	}
	lvl.Metadata["seed"] = fmt.Sprint(bp.Params.Seed)
	lvl.Metadata["flipped"] = fmt.Sprint(res.Flipped)
	lvl.Metadata["locked"] = fmt.Sprint(res.Locked)
	return lvl, res
}
