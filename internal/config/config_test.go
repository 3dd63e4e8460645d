package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"

	"tasklane/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("USER", "alice")
	t.Setenv("TASKLANE_STORE", "")
	t.Setenv("TASKLANE_USER", "")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if cfg.Dir != dir {
		t.Errorf("Dir = %q, want %q", cfg.Dir, dir)
	}
	if want := filepath.Join(dir, config.StoreFile); cfg.StorePath != want {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath, want)
	}
	if cfg.UserID != "alice" {
		t.Errorf("UserID = %q, want alice", cfg.UserID)
	}
	if cfg.TokenPath() != filepath.Join(dir, config.TokenFile) {
		t.Errorf("TokenPath = %q", cfg.TokenPath())
	}
}

func TestNew_SettingsFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKLANE_STORE", "")
	t.Setenv("TASKLANE_USER", "")
	settings := "store: /var/lib/tasklane/tasks.db\nuser: bob\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(settings), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if cfg.StorePath != "/var/lib/tasklane/tasks.db" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
	if cfg.UserID != "bob" {
		t.Errorf("UserID = %q, want bob", cfg.UserID)
	}
}

func TestNew_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("user: bob\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TASKLANE_USER", "carol")
	t.Setenv("TASKLANE_STORE", "")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.UserID != "carol" {
		t.Errorf("UserID = %q, want carol", cfg.UserID)
	}
}

func TestNew_ExpandsHome(t *testing.T) {
	dir := t.TempDir()
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()
	t.Setenv("TASKLANE_STORE", "~/tasks.db")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if want := filepath.Join(home, "tasks.db"); cfg.StorePath != want {
		t.Errorf("StorePath = %q, want %q", cfg.StorePath, want)
	}
}

func TestNew_BadSettingsFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("store: [unclosed\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := config.New(dir); err == nil {
		t.Fatal("expected error for malformed settings")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := config.DefaultConfigDir(); got != filepath.Join("/tmp/xdg", config.AppName) {
		t.Errorf("DefaultConfigDir = %q", got)
	}
}
