package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockbench/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKeyPath string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the puzzles over SSH",
	Long: `Starts an SSH server. Every connection gets the interactive menu,
and attempts are recorded under the SSH user name.

Examples:
  blockbench serve --ssh :23235
  ssh -p 23235 localhost`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "Address to listen on (default from config)")
	serveCmd.Flags().StringVar(&flagHostKeyPath, "host-key", "", "Path to the SSH host key")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Close idle connections after this long")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()
	if flagSSHAddr != "" {
		cfg.Server.Address = flagSSHAddr
	}
	if flagHostKeyPath != "" {
		cfg.Server.HostKeyPath = flagHostKeyPath
	}
	if flagIdleTimeout > 0 {
		cfg.Server.IdleTimeout = flagIdleTimeout
	}

	srvCfg := tui.SSHServerConfigFrom(cfg)
	srvCfg.TickRate = flagFPS

	srv, err := tui.NewSSHServer(srvCfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Block Away SSH server listening on %s\n", srv.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
