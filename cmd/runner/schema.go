package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/resume-run/internal/world"
)

var flagSchemaOut string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Write the world file JSON schema",
	Long: `Print the JSON schema of world files, or write it to --out. Editors with
YAML language servers can use it to validate files in ~/.runner/worlds.

Examples:
  runner schema
  runner schema --out ./world.schema.json`,
	Run: runSchema,
}

func init() {
	schemaCmd.Flags().StringVarP(&flagSchemaOut, "out", "o", "", "Write to this file instead of stdout")
}

func runSchema(_ *cobra.Command, _ []string) {
	data, err := json.MarshalIndent(world.Schema(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding schema: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if flagSchemaOut == "" {
		os.Stdout.Write(data)
		return
	}

	if err := writeFileAtomic(flagSchemaOut, data); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", flagSchemaOut)
}

// writeFileAtomic writes to a temporary file beside path and renames it.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".schema-*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write schema: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write schema: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("cannot write schema: %w", err)
	}
	return nil
}
