package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbench/internal/games/blockaway"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/levels/formats"
)

var (
	flagRows   int
	flagCols   int
	flagRadius int
	flagGenHex bool
	flagVoids  int
	flagMode   string
	flagOut    string
	flagSave   bool
	flagSolved int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a solvable level",
	Long: `Generates a level from the configured blueprint. Flags override the
config; --difficulty and --solved scale the perturbation targets.

Examples:
  blockbench generate
  blockbench generate --rows 6 --cols 6 --voids 4 --seed 42
  blockbench generate --hex --radius 3 --mode push --out hex.yaml
  blockbench generate --difficulty hard --solved 20 --save`,
	Run: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.IntVar(&flagRows, "rows", 0, "Rows of a square grid")
	f.IntVar(&flagCols, "cols", 0, "Columns of a square grid")
	f.IntVar(&flagRadius, "radius", 0, "Radius of a hex grid")
	f.BoolVar(&flagGenHex, "hex", false, "Generate on a hex grid")
	f.IntVar(&flagVoids, "voids", 0, "Number of void cells")
	f.StringVar(&flagMode, "mode", "", "Tap mode: classic or push")
	f.StringVar(&flagOut, "out", "", "Write the level YAML to this file")
	f.BoolVar(&flagSave, "save", false, "Save the level to the library")
	f.IntVar(&flagSolved, "solved", 0, "Levels solved so far, for difficulty scaling")
}

func runGenerate(cmd *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	gen := &cfg.Generator
	flags := cmd.Flags()
	if flags.Changed("rows") {
		gen.Rows = flagRows
	}
	if flags.Changed("cols") {
		gen.Cols = flagCols
	}
	if flags.Changed("radius") {
		gen.Radius = flagRadius
	}
	if flags.Changed("voids") {
		gen.Voids = flagVoids
	}
	if flagGenHex {
		gen.Grid = core.KindHex.String()
	}
	if flagMode != "" {
		gen.Mode = flagMode
	}

	seed := uint64(flagSeed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	bp, err := blockaway.BlueprintFor(cfg, flagSolved, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	lvl, res := blockaway.BuildLevel(bp)
	logger.Info("generated level", "id", lvl.ID, "attempts", res.Attempts,
		"flipped", res.Flipped, "target_flips", res.TargetFlips,
		"locked", res.Locked, "target_locks", res.TargetLocks)

	if len(lvl.Pieces) == 0 {
		fmt.Fprintln(os.Stderr, "Error: the board could not be seeded with a solvable layout; try other voids or another seed")
		os.Exit(1)
	}

	stats := core.ComputeLevelStats(lvl)
	fmt.Printf("%s (seed %d)\n", lvl.Name, seed)
	fmt.Println(core.RenderASCII(lvl.Board, lvl.Pieces))
	fmt.Printf("pieces %d  flipped %d/%d  locked %d/%d  depth %d\n",
		stats.Pieces, res.Flipped, res.TargetFlips, res.Locked, res.TargetLocks, stats.Depth)
	if lvl.MoveBudget > 0 {
		fmt.Printf("move budget %d\n", lvl.MoveBudget)
	}

	if flagOut != "" {
		data, err := formats.EncodeYAML(lvl)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding level: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(flagOut, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", flagOut)
	}

	if flagSave {
		store := mustOpenStore(cfg)
		defer store.Close()

		rec, err := blockaway.Archive(lvl, blockaway.SourceGenerated)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		id, err := store.SaveLevel(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving level: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("saved to library as %s\n", id)
	}
}
