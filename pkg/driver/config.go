package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
)

const (
	DefaultExtension          = ".meow"
	DefaultPrompt             = ">> "
	DefaultMaxCachedLibraries = 64

	// CacheEnv overrides the dependency cache directory.
	CacheEnv = "MEOW_CACHE"
)

// Config carries the tunables shared by the CLI, the loader and the fetcher.
// Zero fields fall back to DefaultConfig.
type Config struct {
	Extension          string
	CacheDir           string
	HistoryFile        string
	Prompt             string
	MaxCachedLibraries int
}

// DefaultConfig returns the built-in settings rooted at the user's home.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.TempDir()
	}
	return Config{
		Extension:          DefaultExtension,
		CacheDir:           filepath.Join(home, ".meow", "cache"),
		HistoryFile:        filepath.Join(home, ".meow_history"),
		Prompt:             DefaultPrompt,
		MaxCachedLibraries: DefaultMaxCachedLibraries,
	}
}

// ResolveConfig layers the given settings over the defaults, then applies the
// MEOW_CACHE environment override.
func ResolveConfig(settings Config) (Config, error) {
	cfg := settings
	if err := mergo.Merge(&cfg, DefaultConfig()); err != nil {
		return Config{}, fmt.Errorf("config: merge defaults: %w", err)
	}
	if dir := os.Getenv(CacheEnv); dir != "" {
		cfg.CacheDir = dir
	}
	if cfg.Extension[0] != '.' {
		cfg.Extension = "." + cfg.Extension
	}
	return cfg, nil
}
