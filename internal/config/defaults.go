package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/blockbench.yaml
var defaultWorkbenchYAML []byte

// DefaultConfig returns the hardcoded configuration. It matches the embedded
// defaults/blockbench.yaml and is used when that file cannot be parsed.
func DefaultConfig() WorkbenchConfig {
	return WorkbenchConfig{
		Generator: GeneratorConfig{
			Grid:          "square",
			Rows:          6,
			Cols:          6,
			Radius:        3,
			Voids:         2,
			Mode:          "classic",
			FlipFraction:  0.6,
			LockFraction:  0.15,
			Pivot:         36,
			AttemptFactor: 4,
		},
		Gameplay: GameplayConfig{
			MistakeLimit:  3,
			ShowClearable: true,
			ShowDeadlock:  true,
			Theme:         "default",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.3,
			Progression: ProgressionConfig{
				Type:  "solved",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				FlipBoost: 0.3,
				LockBoost: 0.2,
				VoidBoost: 2,
			},
		},
		Library: LibraryConfig{
			DBPath: "~/.blockbench/library.db",
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultWorkbenchYAML
}
