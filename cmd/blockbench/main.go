// blockbench is a terminal workbench for Block Away sliding-block puzzles:
// play the campaign, generate and check levels, keep a level library and
// serve the whole thing over SSH.
//
// Usage:
//
//	blockbench list                 - List puzzle variants and campaign levels
//	blockbench play [level]         - Play the campaign, a level file or a library level
//	blockbench menu                 - Interactive menu with the library and random puzzles
//	blockbench solve <file>...      - Report solvability and deadlocks of level files
//	blockbench generate             - Generate a solvable level
//	blockbench library <cmd>        - Manage stored levels
//	blockbench serve                - Start the SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Tick rate of the play screen (default: 30)
//	--seed <value>        - Generator seed (0 = random based on time)
//	--db <path>           - Level library path (default from config)
//	--config <path>       - Workbench config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Register the puzzle variants
	_ "github.com/vovakirdan/blockbench/internal/games/blockaway"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockbench",
	Short: "Block Away puzzle workbench for the terminal",
	Long: `blockbench plays, generates and diagnoses Block Away sliding-block puzzles
on square and hex grids.

Available commands:
  list      - Show puzzle variants and campaign levels
  play      - Play the campaign or a single level
  menu      - Interactive menu
  solve     - Check level files for solvability and deadlocks
  generate  - Generate a solvable level
  library   - Manage the level library
  serve     - Start SSH server for remote play

Examples:
  blockbench play
  blockbench play --hex
  blockbench solve levels/my-level.yaml
  blockbench generate --hex --radius 3 --save
  blockbench serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
}

// logger is shared by every command.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "blockbench",
})

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate of the play screen")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Generator seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the level library (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a workbench config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(libraryCmd)
	rootCmd.AddCommand(serveCmd)
}
