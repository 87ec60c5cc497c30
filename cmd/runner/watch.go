package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/resume-run/internal/registry"
	"github.com/vovakirdan/resume-run/internal/world"
)

// watchWorlds reloads changed world files into the registry and forwards
// each reloaded definition on the returned channel until stop is called.
func watchWorlds(logger *log.Logger) (<-chan world.Definition, func(), error) {
	dir := worldsDir()
	if dir == "" {
		return nil, nil, fmt.Errorf("cannot resolve worlds directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create worlds directory: %w", err)
	}

	w, err := world.NewWatcher(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	logger.Info("watching world files", "dir", dir)

	out := make(chan world.Definition, 4)
	go func() {
		defer close(out)
		for {
			select {
			case path, ok := <-w.Events:
				if !ok {
					return
				}
				def, err := world.LoadFile(path)
				if err != nil {
					logger.Warn("world reload failed", "file", path, "error", err)
					continue
				}
				if err := registry.Put(def, path); err != nil {
					logger.Warn("world rejected", "file", path, "error", err)
					continue
				}
				logger.Info("world reloaded", "world", def.ID, "file", path)
				select {
				case out <- def:
				default:
					logger.Debug("reload dropped, consumer busy", "world", def.ID)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("watch error", "error", err)
			}
		}
	}()

	return out, func() { _ = w.Close() }, nil
}

// playerName returns the name runs are recorded under.
func playerName(flag string) string {
	if flag != "" {
		return flag
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "anonymous"
}
