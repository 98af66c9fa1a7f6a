// Package config provides YAML-based workbench configuration and the
// difficulty presets used when generating levels.
package config

import (
	"strings"
	"time"
)

// WorkbenchConfig is the full blockbench configuration file.
type WorkbenchConfig struct {
	Generator  GeneratorConfig  `yaml:"generator"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Library    LibraryConfig    `yaml:"library"`
	Server     ServerConfig     `yaml:"server"`
}

// GeneratorConfig sets the board shape and perturbation targets for
// generated levels.
type GeneratorConfig struct {
	Grid          string  `yaml:"grid"` // "square" or "hex"
	Rows          int     `yaml:"rows"`
	Cols          int     `yaml:"cols"`
	Radius        int     `yaml:"radius"`
	Voids         int     `yaml:"voids"`
	Mode          string  `yaml:"mode"` // "classic" or "push"
	FlipFraction  float64 `yaml:"flip_fraction"`
	LockFraction  float64 `yaml:"lock_fraction"`
	Pivot         int     `yaml:"pivot"`
	AttemptFactor int     `yaml:"attempt_factor"`
}

// GameplayConfig defines limits applied to generated levels and play aids.
type GameplayConfig struct {
	MistakeLimit  int    `yaml:"mistake_limit"`  // 0 = mistakes are free
	BudgetSlack   int    `yaml:"budget_slack"`   // extra moves over the greedy solution; 0 = no budget
	ShowClearable bool   `yaml:"show_clearable"` // highlight pieces that can leave now
	ShowDeadlock  bool   `yaml:"show_deadlock"`  // show the deadlock explanation
	Theme         string `yaml:"theme"`          // menu and library styles: default, neon, mono
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty rises as levels are solved.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "solved" or "none"
	MaxAt int    `yaml:"max_at"` // solved levels at which max difficulty is reached
}

// ScalingConfig defines how much the generator targets grow at max difficulty.
type ScalingConfig struct {
	FlipBoost float64 `yaml:"flip_boost"`
	LockBoost float64 `yaml:"lock_boost"`
	VoidBoost int     `yaml:"void_boost"`
}

// LibraryConfig locates the sqlite level library.
type LibraryConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig configures the SSH play server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset parses a preset name; the empty string means normal.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return DifficultyNormal, false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
