package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search directories.
const FileName = "tetris.yaml"

// LoadTetris loads the game configuration.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default.
// Keys missing from a file keep their default values. Only an explicit
// customPath reports read or parse errors; the other locations fall through.
func LoadTetris(customPath string) (TetrisConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := parseTetris(data)
		if err != nil {
			return TetrisConfig{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parseTetris(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseTetris(defaultTetrisYAML)
	if err != nil {
		return DefaultTetrisConfig(), nil
	}
	return cfg, nil
}

// parseTetris decodes data over the built-in defaults.
func parseTetris(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, err
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(FileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", FileName))
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", filename)
}
