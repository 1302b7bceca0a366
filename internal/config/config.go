package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	// AutosaveSeconds is the interval of the background persist that backs up write-through saves
	AutosaveSeconds int `json:"autosave_seconds"`

	// DefaultTheme is used when no theme has been persisted yet ("light" or "dark")
	DefaultTheme string `json:"default_theme"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"log_level"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default (unlimited). Only set if you experience contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// WebBind and WebPort are the listen address of `jotter serve`
	WebBind string `json:"web_bind"`
	WebPort int    `json:"web_port"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		AutosaveSeconds: 30,
		DefaultTheme:    "light",
		LogLevel:        "info",
		WebBind:         "127.0.0.1",
		WebPort:         8080,
	}
}

// AutosaveInterval returns AutosaveSeconds as a duration.
func (c *Config) AutosaveInterval() time.Duration {
	return time.Duration(c.AutosaveSeconds) * time.Second
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.jotter.
func Load(baseDir string) (*Config, error) {
	return loadFile(filepath.Join(baseDir, "config.json"))
}

// LoadWithRepo loads configuration from both global (~/.jotter) and repo (.jotter) directories.
// Repo config is found by walking upward from startDir to find the nearest .jotter/config.json.
// Repo config takes precedence for scalar values; arrays are merged (deduplicated).
// Either or both configs may be missing.
func LoadWithRepo(globalDir, startDir string) (*Config, error) {
	global, err := loadFileRaw(filepath.Join(globalDir, "config.json"))
	if err != nil {
		return nil, err
	}

	repo, err := loadFileRaw(FindRepoConfig(startDir))
	if err != nil {
		return nil, err
	}

	return Merge(Merge(DefaultConfig(), global), repo), nil
}

// FindRepoConfig walks upward from startDir to find the nearest .jotter/config.json.
// Returns the path if found, or empty string if not found.
func FindRepoConfig(startDir string) string {
	dir := startDir
	for {
		configPath := filepath.Join(dir, ".jotter", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	if configPath == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Validate reports the first setting that cannot be used as given.
func (c *Config) Validate() error {
	switch {
	case c.AutosaveSeconds < 0:
		return fmt.Errorf("autosave_seconds must not be negative, got %d", c.AutosaveSeconds)
	case c.WebPort < 0 || c.WebPort > 65535:
		return fmt.Errorf("web_port out of range: %d", c.WebPort)
	case c.DBMaxOpenConns < 0 || c.DBMaxIdleConns < 0:
		return fmt.Errorf("db pool sizes must not be negative")
	}
	return nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	return &Config{
		AutosaveSeconds: firstInt(overlay.AutosaveSeconds, base.AutosaveSeconds),
		DefaultTheme:    firstString(overlay.DefaultTheme, base.DefaultTheme),
		LogLevel:        firstString(overlay.LogLevel, base.LogLevel),
		DBMaxOpenConns:  firstInt(overlay.DBMaxOpenConns, base.DBMaxOpenConns),
		DBMaxIdleConns:  firstInt(overlay.DBMaxIdleConns, base.DBMaxIdleConns),
		DisabledTools:   mergeStringSlice(base.DisabledTools, overlay.DisabledTools),
		WebBind:         firstString(overlay.WebBind, base.WebBind),
		WebPort:         firstInt(overlay.WebPort, base.WebPort),
	}
}

func firstInt(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

func firstString(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return strings.TrimSpace(a)
	}
	return b
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
