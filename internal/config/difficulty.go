package config

import (
	"math"

	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
)

// DifficultyManager turns the difficulty settings into generator parameters
// that grow with the number of levels a player has solved.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) after solved levels.
func (d *DifficultyManager) Level(solved int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "solved" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := clampF(float64(solved)/maxAt, 0.0, 1.0)

	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// FlipFraction scales the base flip fraction by the difficulty level.
func (d *DifficultyManager) FlipFraction(base float64, solved int) float64 {
	return clampF(base+d.Level(solved)*d.cfg.Scaling.FlipBoost, 0.0, 1.0)
}

// LockFraction scales the base lock fraction by the difficulty level.
func (d *DifficultyManager) LockFraction(base float64, solved int) float64 {
	return clampF(base+d.Level(solved)*d.cfg.Scaling.LockBoost, 0.0, 1.0)
}

// Voids returns the number of void cells to scatter.
func (d *DifficultyManager) Voids(base, solved int) int {
	return base + int(math.Round(d.Level(solved)*float64(d.cfg.Scaling.VoidBoost)))
}

// Params builds generator parameters for the next level.
// An unknown mode falls back to classic.
func (d *DifficultyManager) Params(gen GeneratorConfig, solved int, seed uint64) core.GenParams {
	p := core.DefaultGenParams()
	if mode, ok := core.ParseMode(gen.Mode); ok {
		p.Mode = mode
	}
	p.Seed = seed
	p.FlipFraction = d.FlipFraction(gen.FlipFraction, solved)
	p.LockFraction = d.LockFraction(gen.LockFraction, solved)
	if gen.Pivot > 0 {
		p.Pivot = gen.Pivot
	}
	if gen.AttemptFactor > 0 {
		p.AttemptFactor = gen.AttemptFactor
	}
	return p
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
