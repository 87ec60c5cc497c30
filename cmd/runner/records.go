package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/resume-run/internal/content"
	"github.com/vovakirdan/resume-run/internal/platform/tui"
	"github.com/vovakirdan/resume-run/internal/registry"
	"github.com/vovakirdan/resume-run/internal/storage"
)

var (
	flagRecordsLimit int
	flagRecordsPlain bool
	flagRecordsClear bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [world]",
	Short: "Show best runs for a world",
	Long: `Display the fastest finished runs for a world. On a terminal this opens
the interactive records board; pipe the output or pass --plain for a table.

Examples:
  runner records
  runner records resume --plain --limit 5
  runner records resume --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagRecordsLimit, "limit", 10, "Number of runs to show")
	recordsCmd.Flags().BoolVar(&flagRecordsPlain, "plain", false, "Print a plain table")
	recordsCmd.Flags().BoolVar(&flagRecordsClear, "clear", false, "Delete all runs of the world")
}

func runRecords(cmd *cobra.Command, args []string) {
	e, err := loadEnv("runner", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer e.close()

	worldID := worldArg(args)
	if !registry.Exists(worldID) {
		fmt.Fprintf(os.Stderr, "Error: unknown world %q\n", worldID)
		fmt.Fprintln(os.Stderr, "Run 'runner list' to see available worlds.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRecordsClear {
		if err := store.ClearRuns(worldID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all runs of %s.\n", worldID)
		return
	}

	fd := int(os.Stdout.Fd())
	if !flagRecordsPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(fd); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunRecords(store, worldID, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printRecords(store, worldID)
}

func printRecords(store *storage.Store, worldID string) {
	runs, err := store.BestRuns(worldID, flagRecordsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best runs - %s\n", worldID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'runner play %s' to set the first record!\n", worldID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-16s  %-8s  %s\n", "Rank", "Time", "Player", "Respawns", "Date")
	fmt.Printf("  %-4s  %-6s  %-16s  %-8s  %s\n", "----", "----", "------", "--------", "----")

	// Print runs
	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6s  %-16s  %-8d  %s\n", i+1, content.FormatTime(r.Elapsed.Seconds()), r.Player, r.Respawns, dateStr)
	}

	// Show totals
	fmt.Println()
	if stats, err := store.Stats(worldID); err == nil && stats != nil {
		fmt.Printf("Runs: %d   Average: %s\n", stats.Runs, content.FormatTime(stats.Average.Seconds()))
	}
}
