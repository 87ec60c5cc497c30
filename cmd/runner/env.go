package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/resume-run/internal/config"
	"github.com/vovakirdan/resume-run/internal/content"
	"github.com/vovakirdan/resume-run/internal/registry"
	"github.com/vovakirdan/resume-run/internal/storage"
	"github.com/vovakirdan/resume-run/internal/world"
)

// env is everything a front end needs besides its own flags.
type env struct {
	tuning  config.Tuning
	content content.Bundle
	logger  *log.Logger
	logFile *os.File
}

// loadEnv loads tuning, content and user worlds. Interactive front ends pass
// quiet so logs never reach the terminal they draw on.
func loadEnv(prefix string, quiet bool) (*env, error) {
	e := &env{}
	if err := e.openLogger(prefix, quiet); err != nil {
		return nil, err
	}

	tuning, err := config.LoadTuning(flagConfig)
	if err != nil {
		e.close()
		return nil, err
	}
	switch p := config.DifficultyPreset(flagDifficulty); p {
	case "", config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		config.ApplyPreset(&tuning, p)
	default:
		e.close()
		return nil, fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}
	e.tuning = tuning

	bundle, err := content.Load(flagContent)
	if err != nil {
		e.close()
		return nil, err
	}
	e.content = bundle

	dir := worldsDir()
	if dir != "" {
		n, err := registry.LoadDir(dir)
		if err != nil {
			e.logger.Warn("some world files failed to load", "dir", dir, "error", err)
		}
		if n > 0 {
			e.logger.Info("loaded user worlds", "dir", dir, "count", n)
		}
	}
	return e, nil
}

func (e *env) openLogger(prefix string, quiet bool) error {
	var w io.Writer = os.Stderr
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(expandHome(flagLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		e.logFile = f
		w = f
	case quiet:
		w = io.Discard
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	e.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return nil
}

func (e *env) close() {
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// resolveWorld returns a registered world or exits with a hint.
func (e *env) resolveWorld(id string) world.Definition {
	def, err := registry.Get(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown world %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'runner list' to see available worlds.")
		os.Exit(1)
	}
	return def
}

// openStore opens the records database, continuing without it on failure.
func (e *env) openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open records database: %v\n", err)
		e.logger.Warn("records disabled", "error", err)
		return nil
	}
	return store
}

func worldsDir() string {
	if flagWorldsDir != "" {
		return expandHome(flagWorldsDir)
	}
	dir := config.UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "worlds")
}

func expandHome(path string) string {
	if len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// worldArg returns the world named on the command line or the default.
func worldArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return world.DefaultID
}
