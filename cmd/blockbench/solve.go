package main

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/levels/formats"
)

var flagShowBoard bool

var solveCmd = &cobra.Command{
	Use:   "solve <file>...",
	Short: "Check level files for solvability and deadlocks",
	Long: `Validates each level file, runs the greedy solver and traces the
blocking chains of the starting position.

Exits with status 1 when any file is invalid or not solvable.

Examples:
  blockbench solve my-level.yaml
  blockbench solve --board levels/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().BoolVar(&flagShowBoard, "board", true, "Print the board of each level")
}

func runSolve(_ *cobra.Command, args []string) {
	failed := 0
	for i, p := range args {
		if i > 0 {
			fmt.Println()
		}
		if !solveFile(p) {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d levels failed\n", failed, len(args))
		os.Exit(1)
	}
}

// solveFile prints the report for one file and returns whether it passed.
func solveFile(p string) bool {
	fmt.Printf("== %s\n", p)

	data, err := os.ReadFile(p)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return false
	}
	lvl, err := formats.ParseYAML(data)
	if err != nil {
		fmt.Printf("parse error: %v\n", err)
		return false
	}
	logger.Debug("parsed level", "file", p, "id", lvl.ID, "pieces", len(lvl.Pieces))

	fmt.Printf("%s (%s, %s grid, %s mode)\n", lvl.Name, lvl.ID, lvl.Kind(), lvl.Mode)
	if flagShowBoard {
		fmt.Println(core.RenderASCII(lvl.Board, lvl.Pieces))
	}

	if err := core.ValidateLevel(lvl, false); err != nil {
		fmt.Printf("invalid: %v\n", err)
		return false
	}

	stats := core.ComputeLevelStats(lvl)
	fmt.Printf("pieces %d  locked %d  timed %d  iced %d  mirrored %d  axes %d\n",
		stats.Pieces, stats.Locked, stats.Timed, stats.Iced, stats.Mirrored, stats.Axes)
	fmt.Printf("voids %d  pauses %d  carousels %d\n", stats.Voids, stats.Pauses, stats.Carousels)

	sol := core.CheckSolvable(lvl.Board, lvl.Pieces)
	if sol.Solvable {
		fmt.Printf("solvable: yes, depth %d, %d taps", sol.Depth, len(sol.Taps))
		if sol.Slides > 0 {
			fmt.Printf(" (%d pause slides)", sol.Slides)
		}
		fmt.Println()
		fmt.Printf("order: %s\n", joinInts(sol.Order))
	} else {
		fmt.Printf("solvable: no, %d pieces stuck after %d cleared\n", sol.StuckCount, len(sol.Order))
	}

	info := core.ComputeDeadlockFor(lvl.Board, lvl.Pieces, 0, lvl.Mode)
	if info.HasDeadlock {
		fmt.Println("deadlock at start:")
		cells := make([]core.Coord, 0, len(info.Reasons))
		for c := range info.Reasons {
			cells = append(cells, c)
		}
		slices.SortFunc(cells, func(a, b core.Coord) int {
			switch {
			case a.Less(b):
				return -1
			case b.Less(a):
				return 1
			}
			return 0
		})
		for _, c := range cells {
			r := info.Reasons[c]
			fmt.Printf("  %s %s: %s\n", c, r.Kind, r.Explanation)
		}
	}
	return sol.Solvable
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, " ")
}
