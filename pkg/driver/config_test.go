package driver

import "testing"

func TestResolveConfigFillsDefaults(t *testing.T) {
	t.Setenv(CacheEnv, "")
	cfg, err := ResolveConfig(Config{Prompt: "cat> "})
	if err != nil {
		t.Fatalf("ResolveConfig returned error: %v", err)
	}
	defaults := DefaultConfig()
	if cfg.Prompt != "cat> " {
		t.Fatalf("Prompt = %q, want override", cfg.Prompt)
	}
	if cfg.Extension != DefaultExtension {
		t.Fatalf("Extension = %q", cfg.Extension)
	}
	if cfg.CacheDir != defaults.CacheDir || cfg.HistoryFile != defaults.HistoryFile {
		t.Fatalf("paths not defaulted: %#v", cfg)
	}
	if cfg.MaxCachedLibraries != DefaultMaxCachedLibraries {
		t.Fatalf("MaxCachedLibraries = %d", cfg.MaxCachedLibraries)
	}
}

func TestResolveConfigEnvironmentOverride(t *testing.T) {
	t.Setenv(CacheEnv, "/var/cache/meow")
	cfg, err := ResolveConfig(Config{CacheDir: "/ignored", Extension: "purr"})
	if err != nil {
		t.Fatalf("ResolveConfig returned error: %v", err)
	}
	if cfg.CacheDir != "/var/cache/meow" {
		t.Fatalf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.Extension != ".purr" {
		t.Fatalf("Extension = %q, want .purr", cfg.Extension)
	}
}
