// Package storage provides SQLite persistence for the level library and
// play attempts. Uses the pure-Go modernc.org/sqlite driver to avoid CGO.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a stored level does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// LevelRecord is a level saved in the library. The level itself is kept as
// its YAML document; the other fields are a summary for listing.
type LevelRecord struct {
	ID        string // library id (uuid)
	LevelID   string // id inside the YAML document
	Name      string
	Grid      string // "square" or "hex"
	Mode      string
	Source    string // "generated" or "imported"
	Seed      int64
	Pieces    int
	Solvable  bool
	Depth     int
	YAML      []byte
	CreatedAt time.Time
}

// ListOptions filters ListLevels. Zero values match everything.
type ListOptions struct {
	Grid   string
	Source string
	Limit  int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS levels (
			id TEXT PRIMARY KEY,
			level_id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			grid TEXT NOT NULL,
			mode TEXT NOT NULL,
			source TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			pieces INTEGER NOT NULL DEFAULT 0,
			solvable INTEGER NOT NULL DEFAULT 0,
			depth INTEGER NOT NULL DEFAULT 0,
			yaml TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_levels_grid ON levels(grid);
		CREATE INDEX IF NOT EXISTS idx_levels_created ON levels(created_at DESC);

		CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			level_ref TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			moves INTEGER NOT NULL DEFAULT 0,
			mistakes INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_attempts_level ON attempts(level_ref);
		CREATE INDEX IF NOT EXISTS idx_attempts_player ON attempts(player);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveLevel stores a level and returns its library id.
// A new uuid is assigned when rec.ID is empty; an existing id is replaced.
func (s *Store) SaveLevel(rec LevelRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO levels
		 (id, level_id, name, grid, mode, source, seed, pieces, solvable, depth, yaml)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.LevelID,
		rec.Name,
		rec.Grid,
		rec.Mode,
		rec.Source,
		rec.Seed,
		rec.Pieces,
		rec.Solvable,
		rec.Depth,
		string(rec.YAML),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save level: %w", err)
	}

	return rec.ID, nil
}

const levelColumns = `id, level_id, name, grid, mode, source, seed, pieces, solvable, depth, yaml, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanLevel(row scanner) (LevelRecord, error) {
	var rec LevelRecord
	var yamlText string
	var createdAt any
	err := row.Scan(
		&rec.ID,
		&rec.LevelID,
		&rec.Name,
		&rec.Grid,
		&rec.Mode,
		&rec.Source,
		&rec.Seed,
		&rec.Pieces,
		&rec.Solvable,
		&rec.Depth,
		&yamlText,
		&createdAt,
	)
	if err != nil {
		return rec, err
	}
	rec.YAML = []byte(yamlText)
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// LevelByID retrieves a stored level. It returns ErrNotFound if the id is unknown.
func (s *Store) LevelByID(id string) (LevelRecord, error) {
	rec, err := scanLevel(s.db.QueryRow(
		`SELECT `+levelColumns+` FROM levels WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return LevelRecord{}, fmt.Errorf("storage: level %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return LevelRecord{}, fmt.Errorf("storage: cannot query level: %w", err)
	}
	return rec, nil
}

// ListLevels returns stored levels, newest first.
func (s *Store) ListLevels(opts ListOptions) ([]LevelRecord, error) {
	var where []string
	var args []any
	if opts.Grid != "" {
		where = append(where, "grid = ?")
		args = append(args, opts.Grid)
	}
	if opts.Source != "" {
		where = append(where, "source = ?")
		args = append(args, opts.Source)
	}

	query := `SELECT ` + levelColumns + ` FROM levels`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var records []LevelRecord
	for rows.Next() {
		rec, err := scanLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// DeleteLevel removes a stored level. Attempts on its level id go with it
// unless another stored copy still carries that id. Both happen in one
// transaction.
func (s *Store) DeleteLevel(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	var levelID string
	err = tx.QueryRow("SELECT level_id FROM levels WHERE id = ?", id).Scan(&levelID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("storage: level %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot delete level: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM levels WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete level: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM attempts WHERE level_ref = ?
		 AND NOT EXISTS (SELECT 1 FROM levels WHERE level_id = ?)`,
		levelID, levelID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot delete attempts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// parseTime handles DATETIME values returned either as time.Time or as text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
