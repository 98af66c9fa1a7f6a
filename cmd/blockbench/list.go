package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/levels"
	"github.com/vovakirdan/blockbench/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List puzzle variants and campaign levels",
	Long:  `Shows the registered puzzle variants and the built-in campaign levels.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	fmt.Println("Puzzle variants:")
	fmt.Println()
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	all, err := levels.Campaign().WithLogger(logger).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading campaign: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("Campaign levels:")
	fmt.Println()
	maxIDLen = 2
	for _, l := range all {
		maxIDLen = max(maxIDLen, len(l.ID))
	}
	fmt.Printf("  %-*s  %-6s  %-7s  %6s  %5s  %s\n", maxIDLen, "ID", "Grid", "Mode", "Pieces", "Depth", "Name")
	for _, l := range all {
		stats := core.ComputeLevelStats(l.Level)
		depth := fmt.Sprint(stats.Depth)
		if !stats.Solvable {
			depth = "-"
		}
		fmt.Printf("  %-*s  %-6s  %-7s  %6d  %5s  %s\n",
			maxIDLen, l.ID, l.Kind(), l.Mode, stats.Pieces, depth, l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'blockbench play <id>' to play a level.")
}
