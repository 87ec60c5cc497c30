// runner is an interactive resume: a side-scrolling platformer whose signs
// open panels about the candidate.
//
// Usage:
//
//	runner list              - List available worlds
//	runner play [world]      - Play in the terminal
//	runner window [world]    - Play in a desktop window
//	runner serve             - Start SSH server for remote play
//	runner web               - Start WebSocket server for browser play
//	runner records [world]   - Show best runs for a world
//	runner schema            - Write the world file JSON schema
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--db <path|dsn>     - Records database (default: ~/.runner/runs.db)
//	--config <path>     - Tuning YAML
//	--content <path>    - Resume content YAML
//	--difficulty <name> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagContent    string
	flagDifficulty string
	flagWorldsDir  string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Resume Run - an interactive resume you can play",
	Long: `Resume Run is a small side-scrolling platformer. Every stage holds signs
that open panels about the candidate: who they are, their skills, projects
and where to find them.

Available commands:
  list     - Show all available worlds
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  web      - Start WebSocket server for browser play
  records  - View best runs
  schema   - Write the world file JSON schema

Examples:
  runner play
  runner play --difficulty hard
  runner window
  runner serve --ssh :2222
  runner web --addr :8080
  runner records resume`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runner/runs.db", "Records database path or postgres:// DSN")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagContent, "content", "", "Path to custom resume content YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagWorldsDir, "worlds", "", "Directory of world files (default: ~/.runner/worlds)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(schemaCmd)
}
