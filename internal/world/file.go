package world

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML world definition. Missing geometry keys keep their
// defaults.
func Parse(data []byte) (Definition, error) {
	def := Definition{Geometry: DefaultGeometry()}
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, fmt.Errorf("world: cannot parse definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return Definition{}, err
	}
	return def, nil
}

// LoadFile reads and parses a world file.
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("world: cannot read %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Marshal encodes a definition as YAML.
func Marshal(def Definition) ([]byte, error) {
	data, err := yaml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("world: cannot encode %s: %w", def.ID, err)
	}
	return data, nil
}

// Loader loads every world file in a directory.
type Loader struct {
	Root string
}

// LoadAll parses all .yaml/.yml files under Root in name order.
// A missing directory yields no worlds. Files that fail to parse are
// reported in the joined error while the rest still load.
func (l Loader) LoadAll() ([]Definition, error) {
	entries, err := os.ReadDir(l.Root)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("world: cannot list %s: %w", l.Root, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && IsWorldFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var defs []Definition
	var errs []error
	for _, name := range names {
		def, err := LoadFile(filepath.Join(l.Root, name))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		defs = append(defs, def)
	}
	return defs, errors.Join(errs...)
}

// IsWorldFile reports whether path has a YAML extension.
func IsWorldFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
