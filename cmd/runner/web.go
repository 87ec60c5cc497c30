package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/resume-run/internal/platform/web"
)

var (
	flagWebAddr       string
	flagWebWorld      string
	flagSnapshotEvery int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the runner WebSocket server",
	Long: `Serve a browser client at / and run every WebSocket connection on /ws
as its own simulation. The browser only sends intents and draws the
snapshots it receives.

Query parameters on /ws:
  world  - World to play (default: --world)
  name   - Name runs are recorded under

Examples:
  runner web
  runner web --addr :9000 --snapshot-every 1`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address")
	webCmd.Flags().StringVar(&flagWebWorld, "world", "", "Default world (default: resume)")
	webCmd.Flags().IntVar(&flagSnapshotEvery, "snapshot-every", 2, "Send one snapshot per N frames")
}

func runWeb(_ *cobra.Command, _ []string) {
	e, err := loadEnv("runner-web", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer e.close()

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.Tuning = e.tuning
	cfg.Content = e.content
	cfg.TickRate = flagFPS
	cfg.SnapshotEvery = flagSnapshotEvery
	cfg.Logger = e.logger
	if flagWebWorld != "" {
		cfg.WorldID = flagWebWorld
	}

	store := e.openStore()
	cfg.Store = store
	if store != nil {
		defer store.Close()
	}

	server, err := web.NewServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting runner web server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
