package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Attempt is one finished play of a level. LevelRef is the level's own id,
// the same for campaign files and library copies.
type Attempt struct {
	ID        string
	LevelRef  string
	Player    string
	Moves     int
	Mistakes  int
	Won       bool
	Duration  time.Duration
	CreatedAt time.Time
}

// AttemptStats aggregates the attempts on one level.
type AttemptStats struct {
	LevelRef    string
	Plays       int
	Wins        int
	BestMoves   int // fewest moves in a won attempt; 0 if never won
	AvgMistakes float64
	LastPlayed  time.Time
}

// SaveAttempt records a finished attempt and returns its id.
func (s *Store) SaveAttempt(a Attempt) (string, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO attempts (id, level_ref, player, moves, mistakes, won, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.LevelRef,
		a.Player,
		a.Moves,
		a.Mistakes,
		a.Won,
		int64(a.Duration/time.Second),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save attempt: %w", err)
	}

	return a.ID, nil
}

// Attempts returns the latest attempts on a level, newest first.
func (s *Store) Attempts(levelRef string, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_ref, player, moves, mistakes, won, duration_secs, created_at
		 FROM attempts
		 WHERE level_ref = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		levelRef, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query attempts: %w", err)
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var secs int64
		var createdAt any
		if err := rows.Scan(&a.ID, &a.LevelRef, &a.Player, &a.Moves, &a.Mistakes, &a.Won, &secs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a.Duration = time.Duration(secs) * time.Second
		a.CreatedAt = parseTime(createdAt)
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return attempts, nil
}

// LevelStats aggregates the attempts on a level. A level nobody played
// yields zero counts, not an error.
func (s *Store) LevelStats(levelRef string) (AttemptStats, error) {
	stats := AttemptStats{LevelRef: levelRef}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(won), 0),
		        COALESCE(MIN(CASE WHEN won = 1 THEN moves END), 0),
		        COALESCE(AVG(mistakes), 0),
		        MAX(created_at)
		 FROM attempts WHERE level_ref = ?`,
		levelRef,
	).Scan(&stats.Plays, &stats.Wins, &stats.BestMoves, &stats.AvgMistakes, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// SolvedCount returns how many distinct levels a player has won.
// An empty player counts every player.
func (s *Store) SolvedCount(player string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT level_ref) FROM attempts
		 WHERE won = 1 AND (? = '' OR player = ?)`,
		player, player,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count solved levels: %w", err)
	}
	return n, nil
}
