package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbench/internal/games/blockaway"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/levels/formats"
	"github.com/vovakirdan/blockbench/internal/storage"
)

var (
	flagLibGrid   string
	flagLibSource string
	flagLibLimit  int
	flagLibOut    string
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the level library",
	Long: `The library keeps generated and imported levels with their play
history. Use 'blockbench play <id>' to play a stored level.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored levels",
	Args:  cobra.NoArgs,
	Run:   runLibraryList,
}

var libraryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored level with its play history",
	Args:  cobra.ExactArgs(1),
	Run:   runLibraryShow,
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored level",
	Args:  cobra.ExactArgs(1),
	Run:   runLibraryDelete,
}

var libraryImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import level files into the library",
	Args:  cobra.MinimumNArgs(1),
	Run:   runLibraryImport,
}

var libraryExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a stored level as YAML",
	Args:  cobra.ExactArgs(1),
	Run:   runLibraryExport,
}

func init() {
	libraryListCmd.Flags().StringVar(&flagLibGrid, "grid", "", "Only levels on this grid (square or hex)")
	libraryListCmd.Flags().StringVar(&flagLibSource, "source", "", "Only levels from this source (generated or imported)")
	libraryListCmd.Flags().IntVar(&flagLibLimit, "limit", 50, "Maximum number of levels")
	libraryExportCmd.Flags().StringVar(&flagLibOut, "out", "", "Output file (default stdout)")

	libraryCmd.AddCommand(libraryListCmd, libraryShowCmd, libraryDeleteCmd, libraryImportCmd, libraryExportCmd)
}

func withStore(fn func(store *storage.Store) error) {
	cfg := mustLoadConfig()
	store := mustOpenStore(cfg)
	err := fn(store)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runLibraryList(_ *cobra.Command, _ []string) {
	withStore(func(store *storage.Store) error {
		records, err := store.ListLevels(storage.ListOptions{
			Grid:   flagLibGrid,
			Source: flagLibSource,
			Limit:  flagLibLimit,
		})
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No saved levels yet. Use 'blockbench generate --save' to add some.")
			return nil
		}

		fmt.Printf("%-36s  %-6s  %-7s  %-9s  %4s  %5s  %s\n", "ID", "Grid", "Mode", "Source", "Pcs", "Depth", "Name")
		for _, rec := range records {
			name := rec.Name
			if !rec.Solvable {
				name += " (not solvable)"
			}
			fmt.Printf("%-36s  %-6s  %-7s  %-9s  %4d  %5d  %s\n",
				rec.ID, rec.Grid, rec.Mode, rec.Source, rec.Pieces, rec.Depth, name)
		}
		return nil
	})
}

func runLibraryShow(_ *cobra.Command, args []string) {
	withStore(func(store *storage.Store) error {
		rec, err := store.LevelByID(args[0])
		if err != nil {
			return err
		}
		lvl, err := blockaway.Restore(rec)
		if err != nil {
			return err
		}

		fmt.Printf("%s (%s)\n", rec.Name, rec.LevelID)
		fmt.Printf("%s grid, %s mode, %s", rec.Grid, rec.Mode, rec.Source)
		if rec.Seed != 0 {
			fmt.Printf(", seed %d", rec.Seed)
		}
		fmt.Printf(", saved %s\n", rec.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Println(core.RenderASCII(lvl.Board, lvl.Pieces))

		if rec.Solvable {
			fmt.Printf("solvable, depth %d\n", rec.Depth)
		} else {
			fmt.Println("not solvable")
		}

		stats, err := store.LevelStats(rec.LevelID)
		if err != nil {
			return err
		}
		if stats.Plays == 0 {
			fmt.Println("never played")
			return nil
		}
		fmt.Printf("played %d, won %d, best %d moves, avg mistakes %.1f\n",
			stats.Plays, stats.Wins, stats.BestMoves, stats.AvgMistakes)

		attempts, err := store.Attempts(rec.LevelID, 5)
		if err != nil {
			return err
		}
		fmt.Println("recent attempts:")
		for _, a := range attempts {
			result := "lost"
			if a.Won {
				result = "won"
			}
			fmt.Printf("  %s  %-12s  %-4s  %3d moves  %d mistakes  %s\n",
				a.CreatedAt.Format("2006-01-02 15:04"), a.Player, result, a.Moves, a.Mistakes, a.Duration)
		}
		return nil
	})
}

func runLibraryDelete(_ *cobra.Command, args []string) {
	withStore(func(store *storage.Store) error {
		if err := store.DeleteLevel(args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[0])
		return nil
	})
}

func runLibraryImport(_ *cobra.Command, args []string) {
	withStore(func(store *storage.Store) error {
		for _, p := range args {
			data, err := os.ReadFile(p)
			if err != nil {
				return err
			}
			lvl, err := formats.ParseYAML(data)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			if err := core.ValidateLevel(lvl, false); err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			rec, err := blockaway.Archive(lvl, blockaway.SourceImported)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			id, err := store.SaveLevel(rec)
			if err != nil {
				return err
			}
			if !rec.Solvable {
				logger.Warn("imported level is not solvable", "file", p, "id", id)
			}
			fmt.Printf("%s -> %s\n", p, id)
		}
		return nil
	})
}

func runLibraryExport(_ *cobra.Command, args []string) {
	withStore(func(store *storage.Store) error {
		rec, err := store.LevelByID(args[0])
		if err != nil {
			return err
		}
		if flagLibOut == "" {
			_, err = os.Stdout.Write(rec.YAML)
			return err
		}
		if err := os.WriteFile(flagLibOut, rec.YAML, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", flagLibOut)
		return nil
	})
}
