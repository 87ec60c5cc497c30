package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/resume-run/internal/platform/audio"
	"github.com/vovakirdan/resume-run/internal/platform/window"
)

var (
	flagWindowPlayer string
	flagWindowWatch  bool
	flagMute         bool
)

var windowCmd = &cobra.Command{
	Use:   "window [world]",
	Short: "Play in a desktop window",
	Long: `Open a 960x540 window and play with sound.

Controls are the same as in the terminal; M toggles sound.

Examples:
  runner window
  runner window --mute
  runner window my-world --watch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&flagWindowPlayer, "player", "", "Name runs are recorded under (default: $USER)")
	windowCmd.Flags().BoolVar(&flagWindowWatch, "watch", false, "Reload world files when they change")
	windowCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
}

func runWindow(cmd *cobra.Command, args []string) {
	e, err := loadEnv("runner-window", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer e.close()

	def := e.resolveWorld(worldArg(args))

	player := audio.NewPlayer()
	if err := player.Initialize(); err != nil {
		e.logger.Warn("audio unavailable", "error", err)
	}
	player.SetMuted(flagMute)
	defer player.Close()

	opts := window.Options{
		World:    def,
		Tuning:   e.tuning,
		Content:  e.content,
		Player:   playerName(flagWindowPlayer),
		TickRate: flagFPS,
		Audio:    player,
		Logger:   e.logger,
	}

	if flagWindowWatch {
		reloads, stop, watchErr := watchWorlds(e.logger)
		if watchErr != nil {
			e.logger.Warn("world watch disabled", "error", watchErr)
		} else {
			defer stop()
			opts.Reloads = reloads
		}
	}

	store := e.openStore()
	opts.Store = store

	runErr := window.Run(opts)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
