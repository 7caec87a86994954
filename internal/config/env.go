package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ConfigPathEnv names an optional YAML file read before the environment
const ConfigPathEnv = "QUICKPAPERS_CONFIG"

// AppDirName is the per-user state directory name
const AppDirName = "quickpapers"

// Env holds deployment configuration read from an optional YAML file and the
// environment. Environment variables win over the file.
type Env struct {
	ArchiveURL  string        `yaml:"archive_url" env:"QUICKPAPERS_ARCHIVE_URL" env-description:"archive directory papers are fetched from"`
	LogLevel    string        `yaml:"log_level" env:"QUICKPAPERS_LOG_LEVEL" env-default:"info" env-description:"zerolog level"`
	LogFile     string        `yaml:"log_file" env:"QUICKPAPERS_LOG_FILE" env-description:"rotating log file, defaults to the state dir"`
	MetricsAddr string        `yaml:"metrics_addr" env:"QUICKPAPERS_METRICS_ADDR" env-description:"serve Prometheus metrics on this address"`
	HistoryDB   string        `yaml:"history_db" env:"QUICKPAPERS_HISTORY_DB" env-description:"download history database, defaults to the state dir"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"QUICKPAPERS_HTTP_TIMEOUT" env-default:"0s" env-description:"whole-request timeout, 0 disables it"`
	RecentLimit int           `yaml:"recent_limit" env:"QUICKPAPERS_RECENT_LIMIT" env-default:"10" env-description:"number of recent downloads listed"`
}

// LoadEnv reads the configuration. Paths left empty are filled in under
// StateDir.
func LoadEnv() (Env, error) {
	var cfg Env
	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("read env: %w", err)
	}

	if cfg.RecentLimit < 0 {
		return cfg, fmt.Errorf("invalid recent_limit: %d (must be >= 0)", cfg.RecentLimit)
	}
	if cfg.HTTPTimeout < 0 {
		return cfg, fmt.Errorf("invalid http_timeout: %s", cfg.HTTPTimeout)
	}

	state := StateDir()
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(state, "quickpapers.log")
	}
	if cfg.HistoryDB == "" {
		cfg.HistoryDB = filepath.Join(state, "history.db")
	}
	return cfg, nil
}

// StateDir returns the per-user directory for logs and history
func StateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, AppDirName)
}

// Usage returns a description of the environment variables
func Usage() string {
	var cfg Env
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
