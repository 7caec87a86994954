package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level info, got %s", cfg.LogLevel)
	}
	if cfg.HTTPTimeout != 0 {
		t.Errorf("Expected no timeout, got %s", cfg.HTTPTimeout)
	}
	if cfg.RecentLimit != 10 {
		t.Errorf("Expected recent limit 10, got %d", cfg.RecentLimit)
	}
	if filepath.Base(cfg.HistoryDB) != "history.db" {
		t.Errorf("Unexpected history path %s", cfg.HistoryDB)
	}
	if filepath.Base(cfg.LogFile) != "quickpapers.log" {
		t.Errorf("Unexpected log path %s", cfg.LogFile)
	}
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("QUICKPAPERS_ARCHIVE_URL", "http://mirror.local/papers/")
	t.Setenv("QUICKPAPERS_HTTP_TIMEOUT", "30s")
	t.Setenv("QUICKPAPERS_LOG_LEVEL", "debug")

	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if cfg.ArchiveURL != "http://mirror.local/papers/" {
		t.Errorf("Unexpected archive url %s", cfg.ArchiveURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %s", cfg.HTTPTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected debug level, got %s", cfg.LogLevel)
	}
}

func TestLoadEnv_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := "archive_url: https://files.example.org/caie/\nrecent_limit: 3\nhistory_db: " + filepath.Join(dir, "h.db") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnv, path)

	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if cfg.ArchiveURL != "https://files.example.org/caie/" {
		t.Errorf("Unexpected archive url %s", cfg.ArchiveURL)
	}
	if cfg.RecentLimit != 3 {
		t.Errorf("Expected recent limit 3, got %d", cfg.RecentLimit)
	}
	if cfg.HistoryDB != filepath.Join(dir, "h.db") {
		t.Errorf("Unexpected history path %s", cfg.HistoryDB)
	}
}

func TestLoadEnv_Invalid(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")
	t.Setenv("QUICKPAPERS_RECENT_LIMIT", "-1")

	if _, err := LoadEnv(); err == nil {
		t.Error("Expected error for negative recent limit")
	}
}

func TestUsage(t *testing.T) {
	if !strings.Contains(Usage(), "QUICKPAPERS_ARCHIVE_URL") {
		t.Error("Expected usage to mention QUICKPAPERS_ARCHIVE_URL")
	}
}
