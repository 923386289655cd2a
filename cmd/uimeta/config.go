package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds the contents of .uimeta/config.yaml.
type ProjectConfig struct {
	Version string        `yaml:"version"`
	Library LibraryConfig `yaml:"library"`
	Serve   ServeConfig   `yaml:"serve"`
	Log     LogConfig     `yaml:"log"`
}

// LibraryConfig says where the component library lives. When Remote is
// set the library is cloned from git; otherwise Path is read directly.
type LibraryConfig struct {
	Path     string   `yaml:"path"`
	Remote   string   `yaml:"remote"`
	Branch   string   `yaml:"branch"`
	Subdir   string   `yaml:"subdir"`
	CloneDir string   `yaml:"clone_dir"`
	Exclude  []string `yaml:"exclude"`
}

// ServeConfig tunes the MCP server.
type ServeConfig struct {
	Watch      bool   `yaml:"watch"`
	DebounceMs int    `yaml:"debounce_ms"`
	CacheSize  int    `yaml:"cache_size"`
	ToolLog    string `yaml:"tool_log"`
}

// LogConfig tunes the structured logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const defaultConfigPath = ".uimeta/config.yaml"

// loadProjectConfig reads the config file at path. Returns nil (no
// error) if the file does not exist, so a missing config is not a
// failure.
func loadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveString applies the fallback chain: explicit flag value, then
// config value, then default.
func resolveString(flagValue, configValue, def string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	return def
}

// resolveInt applies the same chain for integer settings, treating 0
// as unset.
func resolveInt(flagValue, configValue, def int) int {
	if flagValue != 0 {
		return flagValue
	}
	if configValue != 0 {
		return configValue
	}
	return def
}
