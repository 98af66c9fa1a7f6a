// Package levels provides level loading for Block Away.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/levels/formats"
)

//go:embed campaign/*.yaml
var campaignFS embed.FS

// ErrLevelNotFound is returned when no level has the requested ID.
var ErrLevelNotFound = errors.New("level not found")

// Level is a loaded level plus the file it came from.
type Level struct {
	core.Level
	FilePath string
}

// Loader handles loading levels from a file tree.
type Loader struct {
	fsys   fs.FS
	root   string
	logger *log.Logger
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), root: root}
}

// NewFSLoader creates a loader over any file system.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, root: "."}
}

// Campaign returns a loader over the built-in levels.
func Campaign() *Loader {
	sub, err := fs.Sub(campaignFS, "campaign")
	if err != nil {
		// campaign/ is embedded at build time.
		panic(err)
	}
	return &Loader{fsys: sub, root: "campaign"}
}

// WithLogger makes the loader report skipped files.
func (l *Loader) WithLogger(logger *log.Logger) *Loader {
	l.logger = logger
	return l
}

// LoadAll recursively scans and loads all level files. Files that fail to
// parse or validate are skipped. Returns levels sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !formats.IsSupported(p) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			if l.logger != nil {
				l.logger.Warn("skipping level file", "path", path.Join(l.root, p), "error", err)
			}
			return nil
		}

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads and validates a single level file. The path is relative to
// the loader's root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}
	if parsed.ID == "" {
		return Level{}, fmt.Errorf("parsing file %s: missing id", p)
	}
	if err := core.ValidateLevel(parsed, false); err != nil {
		return Level{}, fmt.Errorf("validating file %s: %w", p, err)
	}

	return Level{Level: parsed, FilePath: path.Join(l.root, p)}, nil
}

// LoadPath loads a single level file from anywhere on disk.
func LoadPath(p string) (Level, error) {
	lvl, err := NewLoader(filepath.Dir(p)).LoadFile(filepath.Base(p))
	if err != nil {
		return Level{}, err
	}
	lvl.FilePath = p
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Filter returns the levels of one grid kind.
func Filter(levels []Level, kind core.Kind) []Level {
	var out []Level
	for _, lvl := range levels {
		if lvl.Kind() == kind {
			out = append(out, lvl)
		}
	}
	return out
}
