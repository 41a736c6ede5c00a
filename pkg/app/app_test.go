package app

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/decker502/coffee-oracle/pkg/config"
	"github.com/decker502/coffee-oracle/pkg/embedded"
	"github.com/decker502/coffee-oracle/pkg/game"
)

func TestLoadConfigEmbedded(t *testing.T) {
	data, err := os.ReadFile("../../data/config.yaml")
	if err != nil {
		t.Fatalf("Failed to read data/config.yaml: %v", err)
	}
	embedded.Init(fstest.MapFS{
		DefaultConfigPath: &fstest.MapFile{Data: data},
	})

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Window.Title != "Coffee Oracle" {
		t.Errorf("Expected window title from embedded config, got %q", cfg.Window.Title)
	}
}

func TestLoadConfigEmbeddedMissing(t *testing.T) {
	embedded.Init(fstest.MapFS{})

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Celebration.Threshold != config.Default().Celebration.Threshold {
		t.Errorf("Expected default config fallback, got threshold %d", cfg.Celebration.Threshold)
	}
}

func TestLoadConfigEmbeddedInvalid(t *testing.T) {
	embedded.Init(fstest.MapFS{
		DefaultConfigPath: &fstest.MapFile{Data: []byte("window: {width: -1}\n")},
	})

	if _, err := LoadConfig(""); err == nil {
		t.Error("Expected error for invalid embedded config")
	}
}

func TestLoadConfigOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("window:\n  title: Custom\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig(%q) failed: %v", path, err)
	}
	if cfg.Window.Title != "Custom" {
		t.Errorf("Expected overridden title, got %q", cfg.Window.Title)
	}
	if cfg.Window.Width != config.Default().Window.Width {
		t.Errorf("Expected default width to survive override, got %d", cfg.Window.Width)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing override file")
	}
}

func TestAppLayout(t *testing.T) {
	a := &App{
		sceneManager: game.NewSceneManager(),
		config:       config.Default(),
	}

	w, h := a.Layout(1280, 800)
	if w != 1280 || h != 800 {
		t.Errorf("Layout() = %dx%d, want 1280x800", w, h)
	}
	if sw, sh := a.GetSceneManager().Size(); sw != 1280 || sh != 800 {
		t.Errorf("Expected scene manager resized to 1280x800, got %dx%d", sw, sh)
	}

	w, h = a.Layout(0, 0)
	if w != 960 || h != 720 {
		t.Errorf("Layout(0, 0) = %dx%d, want configured 960x720", w, h)
	}
}
