package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/resume-run/internal/core"
	"github.com/vovakirdan/resume-run/internal/platform/tui"
)

var (
	flagPlayer string
	flagWatch  bool
)

var playCmd = &cobra.Command{
	Use:   "play [world]",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal. The built-in world is "resume".

Controls:
  Left/Right, A/D  - Move
  Space/Up/W       - Jump
  E                - Open the panel of a nearby sign
  P/Esc            - Pause
  Enter            - Start / close panel
  R                - Restart (paused or finished)
  C                - Copy the share text (finished)
  Tab              - Records board (menu or finished)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Enemies and movers start slow, speed up with each stage tier
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty
  fixed  - No scaling, every stage uses base speeds

Examples:
  runner play
  runner play --difficulty hard
  runner play my-world --watch
  runner play --content ./me.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name runs are recorded under (default: $USER)")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload world files when they change")
}

func runPlay(cmd *cobra.Command, args []string) {
	e, err := loadEnv("runner", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer e.close()

	def := e.resolveWorld(worldArg(args))

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW = width
	cfg.ScreenH = height
	cfg.TickRate = flagFPS

	opts := tui.Options{
		World:   def,
		Tuning:  e.tuning,
		Content: e.content,
		Runtime: cfg,
		Player:  playerName(flagPlayer),
		Logger:  e.logger,
	}

	if clip, clipErr := tui.NewSystemClipboard(); clipErr == nil {
		opts.Clipboard = clip
	} else {
		e.logger.Debug("clipboard unavailable", "error", clipErr)
	}

	if flagWatch {
		reloads, stop, watchErr := watchWorlds(e.logger)
		if watchErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", watchErr)
		} else {
			defer stop()
			opts.Reloads = reloads
		}
	}

	store := e.openStore()
	opts.Store = store

	runErr := tui.Run(opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
