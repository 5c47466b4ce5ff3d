package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("CATALOG_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.Columns != 3 {
		t.Errorf("columns = %d, want 3", cfg.UI.Columns)
	}
	if cfg.UI.LatestLimit != 6 || cfg.UI.SkeletonCount != 6 {
		t.Errorf("latest=%d skeleton=%d, want 6/6", cfg.UI.LatestLimit, cfg.UI.SkeletonCount)
	}
	if cfg.UI.SearchModifier != "auto" {
		t.Errorf("search modifier = %q, want auto", cfg.UI.SearchModifier)
	}
	if !cfg.Content.SeedSamples {
		t.Error("seed_samples should default to true")
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte(`
[content]
dir = "/srv/catalog"
seed_samples = false

[ui]
columns = 2
search_modifier = "alt"
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CATALOG_CONFIG", path)
	t.Setenv("CATALOG_UI_LATEST_LIMIT", "9")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Content.Dir != "/srv/catalog" {
		t.Errorf("content.dir = %q", cfg.Content.Dir)
	}
	if cfg.Content.SeedSamples {
		t.Error("seed_samples should be false")
	}
	if cfg.UI.Columns != 2 {
		t.Errorf("columns = %d, want 2", cfg.UI.Columns)
	}
	if cfg.UI.SearchModifier != "alt" {
		t.Errorf("modifier = %q, want alt", cfg.UI.SearchModifier)
	}
	if cfg.UI.LatestLimit != 9 {
		t.Errorf("latest_limit = %d, want 9 from env", cfg.UI.LatestLimit)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[ui]\ncolumns = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CATALOG_CONFIG", path)
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero columns")
	}
}

func TestValidateModifier(t *testing.T) {
	cfg := Config{UI: UIConfig{Columns: 1, LatestLimit: 1, SearchModifier: "hyper"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown modifier")
	}
	cfg.UI.SearchModifier = "ctrl"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("ctrl modifier: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("CATALOG_CONFIG", path)
	want := Config{
		Content:  ContentConfig{Dir: "/tmp/content", SeedSamples: true},
		Database: DatabaseConfig{Path: "/tmp/catalog.db"},
		UI:       UIConfig{DateFormat: "02/01", Columns: 4, LatestLimit: 3, SkeletonCount: 2, SearchModifier: "ctrl"},
		Log:      LogConfig{Level: "debug", File: "/tmp/catalog.log"},
	}
	if err := Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}
