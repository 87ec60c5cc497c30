package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/resume-run/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available worlds",
	Long: `Shows the built-in world and every world file loaded from the worlds
directory (~/.runner/worlds by default).`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	e, err := loadEnv("runner", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer e.close()

	worlds := registry.List()

	if len(worlds) == 0 {
		fmt.Println("No worlds available.")
		return
	}

	fmt.Println("Available worlds:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, w := range worlds {
		maxIDLen = max(maxIDLen, len(w.ID))
		maxTitleLen = max(maxTitleLen, len(w.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %6s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Stages", "Source")
	fmt.Printf("  %-*s  %-*s  %6s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "------", "------")

	// Print worlds
	for _, w := range worlds {
		fmt.Printf("  %-*s  %-*s  %6d  %s\n", maxIDLen, w.ID, maxTitleLen, w.Title, w.Stages, w.Source)
	}

	fmt.Println()
	fmt.Println("Run 'runner play <id>' to play a world.")
}
