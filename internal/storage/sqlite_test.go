package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndLoadLevel(t *testing.T) {
	store := openTestStore(t)

	rec := LevelRecord{
		LevelID:  "gen-42",
		Name:     "Generated 42",
		Grid:     "square",
		Mode:     "classic",
		Source:   "generated",
		Seed:     42,
		Pieces:   9,
		Solvable: true,
		Depth:    4,
		YAML:     []byte("id: gen-42\n"),
	}
	id, err := store.SaveLevel(rec)
	if err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}
	if id == "" {
		t.Fatal("SaveLevel() should assign an id")
	}

	got, err := store.LevelByID(id)
	if err != nil {
		t.Fatalf("LevelByID() failed: %v", err)
	}
	if got.ID != id || got.LevelID != "gen-42" || got.Seed != 42 || !got.Solvable || got.Depth != 4 {
		t.Errorf("LevelByID() = %+v", got)
	}
	if string(got.YAML) != "id: gen-42\n" {
		t.Errorf("YAML = %q", got.YAML)
	}

	// Saving with the same id replaces the record.
	got.Name = "Renamed"
	if _, err := store.SaveLevel(got); err != nil {
		t.Fatalf("SaveLevel() replace failed: %v", err)
	}
	again, _ := store.LevelByID(id)
	if again.Name != "Renamed" {
		t.Errorf("Name after replace = %q", again.Name)
	}
}

func TestStoreLevelNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LevelByID("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LevelByID() error = %v, expected ErrNotFound", err)
	}
	if err := store.DeleteLevel("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteLevel() error = %v, expected ErrNotFound", err)
	}
}

func TestStoreListLevels(t *testing.T) {
	store := openTestStore(t)

	for _, rec := range []LevelRecord{
		{LevelID: "a", Grid: "square", Mode: "classic", Source: "generated"},
		{LevelID: "b", Grid: "hex", Mode: "classic", Source: "generated"},
		{LevelID: "c", Grid: "square", Mode: "push", Source: "imported"},
	} {
		if _, err := store.SaveLevel(rec); err != nil {
			t.Fatalf("SaveLevel() failed: %v", err)
		}
	}

	all, err := store.ListLevels(ListOptions{})
	if err != nil {
		t.Fatalf("ListLevels() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 levels, got %d", len(all))
	}
	// Newest first.
	if all[0].LevelID != "c" || all[2].LevelID != "a" {
		t.Errorf("unexpected order: %s, %s, %s", all[0].LevelID, all[1].LevelID, all[2].LevelID)
	}

	square, _ := store.ListLevels(ListOptions{Grid: "square"})
	if len(square) != 2 {
		t.Errorf("expected 2 square levels, got %d", len(square))
	}

	imported, _ := store.ListLevels(ListOptions{Grid: "square", Source: "imported"})
	if len(imported) != 1 || imported[0].LevelID != "c" {
		t.Errorf("unexpected imported filter result: %+v", imported)
	}

	limited, _ := store.ListLevels(ListOptions{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("expected 1 level with limit, got %d", len(limited))
	}
}

func TestStoreDeleteLevel(t *testing.T) {
	store := openTestStore(t)

	rec := LevelRecord{LevelID: "a", Grid: "square", Mode: "classic", Source: "generated"}
	first, _ := store.SaveLevel(rec)
	second, _ := store.SaveLevel(rec)
	store.SaveAttempt(Attempt{LevelRef: "a", Moves: 3, Won: true})

	if err := store.DeleteLevel(first); err != nil {
		t.Fatalf("DeleteLevel() failed: %v", err)
	}
	if _, err := store.LevelByID(first); !errors.Is(err, ErrNotFound) {
		t.Errorf("level should be gone, got %v", err)
	}
	if stats, _ := store.LevelStats("a"); stats.Plays != 1 {
		t.Errorf("attempts should stay while a copy remains, got %d", stats.Plays)
	}

	if err := store.DeleteLevel(second); err != nil {
		t.Fatalf("DeleteLevel() failed: %v", err)
	}
	if stats, _ := store.LevelStats("a"); stats.Plays != 0 {
		t.Errorf("attempts should be deleted with the last copy, got %d", stats.Plays)
	}
}

func TestStoreDeleteLevelRollsBack(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveLevel(LevelRecord{LevelID: "a", Grid: "square", Mode: "classic", Source: "generated"})
	if err != nil {
		t.Fatalf("SaveLevel() failed: %v", err)
	}
	// Without the attempts table the second statement fails.
	if _, err := store.db.Exec("DROP TABLE attempts"); err != nil {
		t.Fatalf("DROP TABLE failed: %v", err)
	}

	if err := store.DeleteLevel(id); err == nil {
		t.Fatal("DeleteLevel() should fail without the attempts table")
	}
	if _, err := store.LevelByID(id); err != nil {
		t.Errorf("a failed delete must keep the level, got %v", err)
	}
}

func TestStoreAttemptsAndStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.LevelStats("01-first-steps")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Plays != 0 || stats.BestMoves != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("unplayed level stats = %+v", stats)
	}

	attempts := []Attempt{
		{LevelRef: "01-first-steps", Player: "ann", Moves: 9, Mistakes: 2, Won: false},
		{LevelRef: "01-first-steps", Player: "ann", Moves: 7, Mistakes: 0, Won: true, Duration: 45 * time.Second},
		{LevelRef: "01-first-steps", Player: "bob", Moves: 5, Mistakes: 1, Won: true},
		{LevelRef: "02-crossroads", Player: "ann", Moves: 4, Won: true},
	}
	for _, a := range attempts {
		if _, err := store.SaveAttempt(a); err != nil {
			t.Fatalf("SaveAttempt() failed: %v", err)
		}
	}

	stats, err = store.LevelStats("01-first-steps")
	if err != nil {
		t.Fatalf("LevelStats() failed: %v", err)
	}
	if stats.Plays != 3 || stats.Wins != 2 || stats.BestMoves != 5 {
		t.Errorf("LevelStats() = %+v, expected 3 plays, 2 wins, best 5", stats)
	}
	if stats.AvgMistakes != 1.0 {
		t.Errorf("AvgMistakes = %v, expected 1.0", stats.AvgMistakes)
	}

	recent, err := store.Attempts("01-first-steps", 2)
	if err != nil {
		t.Fatalf("Attempts() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Player != "bob" {
		t.Errorf("Attempts() should return newest first, got %+v", recent)
	}
	if recent[1].Duration != 45*time.Second {
		t.Errorf("Duration = %v, expected 45s", recent[1].Duration)
	}

	if n, _ := store.SolvedCount("ann"); n != 2 {
		t.Errorf("SolvedCount(ann) = %d, expected 2", n)
	}
	if n, _ := store.SolvedCount("bob"); n != 1 {
		t.Errorf("SolvedCount(bob) = %d, expected 1", n)
	}
	if n, _ := store.SolvedCount(""); n != 2 {
		t.Errorf("SolvedCount() = %d, expected 2", n)
	}
}
