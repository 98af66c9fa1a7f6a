package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbench/internal/config"
	platform "github.com/vovakirdan/blockbench/internal/core"
	"github.com/vovakirdan/blockbench/internal/games/blockaway"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/core"
	"github.com/vovakirdan/blockbench/internal/games/blockaway/levels"
	"github.com/vovakirdan/blockbench/internal/platform/tui"
	"github.com/vovakirdan/blockbench/internal/storage"
)

var flagHex bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign or a single level",
	Long: `Play Block Away in the terminal.

Without an argument a level picker opens over the square campaign
(or the hex campaign with --hex). The argument may be a level file,
a campaign level id or a library id.

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Enter/Space       - Tap the piece under the cursor
  T                 - Rotate the carousel under the cursor
  U                 - Undo
  ?                 - Hint
  R                 - Restart the level
  N/P               - Next/previous level
  Esc/B             - Leave
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Examples:
  blockbench play
  blockbench play --hex
  blockbench play 03-into-the-hole
  blockbench play ./my-level.yaml
  blockbench play 7f0c2d9e-...`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagHex, "hex", false, "Play the hex campaign")
}

func runPlay(_ *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	rt := runtimeConfig()

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}
	env := newEnv(cfg, store)

	if len(args) > 0 {
		lvl, err := resolveLevel(args[0], store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintln(os.Stderr, "Run 'blockbench list' or 'blockbench library list' to see levels.")
			os.Exit(1)
		}
		if err := tui.PlayLevels(lvl.Name, env, rt, lvl); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			os.Exit(1)
		}
		return
	}

	game, ok := pickCampaign(cfg, rt)
	if !ok {
		return
	}
	if err := tui.Run(game, env, rt); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// pickCampaign shows the level picker and returns the campaign game
// starting at the chosen level.
func pickCampaign(cfg config.WorkbenchConfig, rt platform.RuntimeConfig) (*blockaway.Game, bool) {
	all, err := levels.Campaign().WithLogger(logger).LoadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading campaign: %v\n", err)
		os.Exit(1)
	}
	kind, title := core.KindSquare, "BLOCK AWAY"
	if flagHex {
		kind, title = core.KindHex, "BLOCK AWAY - HEX"
	}
	campaign := levels.Filter(all, kind)

	names := make([]string, len(campaign))
	lv := make([]core.Level, len(campaign))
	for i, l := range campaign {
		names[i] = l.Name
		lv[i] = l.Level
	}

	idx, ok, err := tui.RunLevelPicker(title, names, tui.ThemeByName(cfg.Gameplay.Theme), rt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		return nil, false
	}
	return blockaway.New("campaign", "Block Away", lv...).StartAt(idx), true
}

// resolveLevel finds a level by file path, campaign id or library id.
func resolveLevel(ref string, store *storage.Store) (core.Level, error) {
	if _, err := os.Stat(ref); err == nil {
		lvl, err := levels.LoadPath(ref)
		return lvl.Level, err
	}

	lvl, err := levels.Campaign().LoadByID(ref)
	if err == nil {
		return lvl.Level, nil
	}
	if !errors.Is(err, levels.ErrLevelNotFound) {
		return core.Level{}, err
	}

	if store != nil {
		rec, err := store.LevelByID(ref)
		if err == nil {
			return blockaway.Restore(rec)
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return core.Level{}, err
		}
	}
	return core.Level{}, fmt.Errorf("no level file, campaign level or library level named %q", ref)
}
