package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("theme = %q, want dark", cfg.UI.Theme)
	}
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(ConfigPath(dir), []byte("{nope"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("theme = %q, want dark", cfg.UI.Theme)
	}
}

func TestSaveRoundtrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	cfg := DefaultConfig()
	cfg.Gemini.APIKey = "test-key"
	cfg.Gemini.TextModel = "custom-model"
	if err := cfg.Save(dir); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Gemini.APIKey != "test-key" || loaded.Gemini.TextModel != "custom-model" {
		t.Errorf("loaded = %+v", loaded.Gemini)
	}
}

func TestAutoPopulateFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := DefaultConfig()
	cfg.AutoPopulateFromEnv()
	if cfg.Gemini.APIKey != "env-key" {
		t.Errorf("api key = %q, want env-key", cfg.Gemini.APIKey)
	}

	// A key already present wins over the environment.
	cfg.Gemini.APIKey = "file-key"
	cfg.AutoPopulateFromEnv()
	if cfg.Gemini.APIKey != "file-key" {
		t.Errorf("api key = %q, want file-key", cfg.Gemini.APIKey)
	}
}
