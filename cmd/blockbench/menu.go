package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbench/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu",
	Long: `Opens the menu with the campaigns, a random puzzle sized to your
progress and the level library.`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunSession(newEnv(cfg, store), runtimeConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error running menu: %v\n", err)
		os.Exit(1)
	}
}
