package daemon

import (
	"path/filepath"
	"testing"

	"github.com/memoir-app/memoir/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.User.ID != "local" {
		t.Errorf("User.ID = %q, want local", cfg.User.ID)
	}
	if cfg.API.Port != 7600 {
		t.Errorf("API.Port = %d, want 7600", cfg.API.Port)
	}
	if cfg.Goals.GoalSet() != domain.DefaultGoals() {
		t.Errorf("Goals = %+v, want defaults", cfg.Goals.GoalSet())
	}
	if !cfg.Notifications.Desktop {
		t.Error("desktop notifications should default on")
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	t.Setenv("MEMOIR_HOME", t.TempDir())
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.API.Port != DefaultConfig().API.Port {
		t.Errorf("missing file should yield defaults, got port %d", cfg.API.Port)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("MEMOIR_HOME", home)

	cfg := DefaultConfig()
	cfg.API.Port = 9999
	cfg.User.ID = "alice"
	cfg.Notifications.QuietStart = "23:00"
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.API.Port != 9999 {
		t.Errorf("Port = %d, want 9999", loaded.API.Port)
	}
	if loaded.User.ID != "alice" {
		t.Errorf("User.ID = %q, want alice", loaded.User.ID)
	}
	if loaded.Notifications.Policy().QuietStart != "23:00" {
		t.Errorf("QuietStart = %q, want 23:00", loaded.Notifications.Policy().QuietStart)
	}
}

func TestMemoirHomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MEMOIR_HOME", dir)
	if got := MemoirHome(); got != dir {
		t.Errorf("MemoirHome() = %q, want %q", got, dir)
	}
	if got := filepath.Dir(filepath.Join(MemoirHome(), "config.toml")); got != dir {
		t.Errorf("config dir = %q, want %q", got, dir)
	}
}
