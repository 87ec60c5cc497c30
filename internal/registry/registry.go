// Package registry provides a global registry for world definitions.
// The built-in world registers itself in init(), user worlds are added from
// a directory at startup and replaced in place when their files change.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/resume-run/internal/world"
)

// WorldInfo contains metadata about a registered world.
type WorldInfo struct {
	ID     string
	Title  string
	Stages int
	Length float64
	Source string // "builtin" or the file it was loaded from
}

// Factory returns a fresh copy of a world definition.
type Factory func() world.Definition

type entry struct {
	factory Factory
	info    WorldInfo
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

func init() {
	Register(world.DefaultID, world.Default)
}

func infoOf(def world.Definition, source string) WorldInfo {
	return WorldInfo{
		ID:     def.ID,
		Title:  def.Title,
		Stages: len(def.Stages),
		Length: def.Length(),
		Source: source,
	}
}

// Register adds a built-in world factory to the registry.
// Panics if a world with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: world %q already registered", id))
	}

	entries[id] = entry{factory: f, info: infoOf(f(), "builtin")}
}

// Put registers or replaces a loaded world. The definition must be valid.
func Put(def world.Definition, source string) error {
	if def.ID == "" {
		return fmt.Errorf("registry: world from %s has no id", source)
	}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("registry: world %q: %w", def.ID, err)
	}

	mu.Lock()
	defer mu.Unlock()

	entries[def.ID] = entry{
		factory: func() world.Definition { return def },
		info:    infoOf(def, source),
	}
	return nil
}

// LoadDir registers every world file in dir. It returns how many worlds
// were added; errors from individual files are joined but do not stop the rest.
func LoadDir(dir string) (int, error) {
	defs, err := world.Loader{Root: dir}.LoadAll()
	n := 0
	for _, def := range defs {
		if perr := Put(def, dir); perr == nil {
			n++
		}
	}
	return n, err
}

// List returns information about all registered worlds, sorted by ID.
func List() []WorldInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]WorldInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the definition registered under id.
func Get(id string) (world.Definition, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return world.Definition{}, fmt.Errorf("registry: unknown world %q", id)
	}

	return e.factory(), nil
}

// Exists checks if a world with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
