package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDirName is the per-user directory under $HOME holding configs, worlds,
// records and logs.
const AppDirName = ".runner"

// UserDir returns ~/.runner, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDirName)
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// LoadYAML loads a YAML document into T.
// Search order: customPath -> ~/.runner/configs/<filename> -> ./configs/<filename>
// -> embedded -> fallback. Keys missing from a file keep their fallback values.
// An explicit customPath that cannot be read or parsed is an error; the other
// locations are skipped silently.
func LoadYAML[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	cfg := fallback()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{userConfigPath(filename), filepath.Join("configs", filename)}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		layered := fallback()
		if err := yaml.Unmarshal(data, &layered); err == nil {
			return layered, nil
		}
	}

	if len(embedded) > 0 {
		if err := yaml.Unmarshal(embedded, &cfg); err != nil {
			return fallback(), nil
		}
	}
	return cfg, nil
}

// LoadTuning loads simulation tuning.
// Search order: customPath -> ~/.runner/configs/tuning.yaml -> ./configs/tuning.yaml -> embedded default
func LoadTuning(customPath string) (Tuning, error) {
	return LoadYAML(customPath, "tuning.yaml", defaultTuningYAML, DefaultTuning)
}
