package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/blockbench/internal/config"
	"github.com/vovakirdan/blockbench/internal/core"
	"github.com/vovakirdan/blockbench/internal/platform/tui"
	"github.com/vovakirdan/blockbench/internal/storage"
)

// loadConfig reads the workbench config and applies --difficulty and --db.
func loadConfig() (config.WorkbenchConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return cfg, fmt.Errorf("unknown difficulty preset %q", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagDBPath != "" {
		cfg.Library.DBPath = flagDBPath
	}
	return cfg, nil
}

// mustLoadConfig is loadConfig for commands that cannot go on without one.
func mustLoadConfig() config.WorkbenchConfig {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openStore opens the level library. Play goes on without it.
func openStore(cfg config.WorkbenchConfig) *storage.Store {
	store, err := storage.Open(cfg.Library.DBPath)
	if err != nil {
		logger.Warn("could not open level library", "path", cfg.Library.DBPath, "error", err)
		return nil
	}
	return store
}

// mustOpenStore opens the level library or exits.
func mustOpenStore(cfg config.WorkbenchConfig) *storage.Store {
	store, err := storage.Open(cfg.Library.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return store
}

// runtimeConfig sizes the play screen to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func playerName() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "local"
}

func newEnv(cfg config.WorkbenchConfig, store *storage.Store) tui.Env {
	return tui.Env{
		Store:  store,
		Config: cfg,
		Player: playerName(),
		Logger: logger,
	}
}
