// Package config resolves the client configuration from an optional YAML file
// and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultLogLevel = "info"
)

// Config drives the hoaxcheck client.
type Config struct {
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	DBPath       string        `yaml:"db_path"`
	ShareCommand string        `yaml:"share_command"`
	LogLevel     string        `yaml:"log_level"`
}

// Resolve normalizes an environment-provided base URL. Surrounding whitespace
// and every trailing slash are removed; an absent value yields "".
func Resolve(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

// Load reads the YAML file at path (when it exists) and applies environment
// overrides. An empty path or a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Config{}
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		switch {
		case errors.Is(err, os.ErrNotExist):
			logrus.WithField("path", path).Debug("config file not found, using environment only")
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	applyEnv(&cfg)

	cfg.BaseURL = Resolve(cfg.BaseURL)
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("HOAX_API_BASE_URL")); v != "" {
		cfg.BaseURL = v
	} else if v := strings.TrimSpace(os.Getenv("API_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if timeout := strings.TrimSpace(os.Getenv("HOAX_TIMEOUT")); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.Timeout = d
		} else {
			logrus.WithError(err).WithField("value", timeout).Warn("ignore invalid HOAX_TIMEOUT")
		}
	}
	if v := strings.TrimSpace(os.Getenv("HOAX_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("HOAX_SHARE_COMMAND")); v != "" {
		cfg.ShareCommand = v
	}
	if v := strings.TrimSpace(os.Getenv("HOAX_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
}

// DefaultPath is the config file location under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hoaxcheck", "config.yaml")
}

// DefaultDBPath is the preference database location under the user config directory,
// falling back to the working directory.
func DefaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "hoaxcheck.db"
	}
	return filepath.Join(dir, "hoaxcheck", "preferences.db")
}

// ApplyLogLevel configures logrus from the textual level, keeping the current
// level when the value cannot be parsed.
func ApplyLogLevel(level string) {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		logrus.WithError(err).WithField("level", level).Warn("ignore invalid log level")
		return
	}
	logrus.SetLevel(parsed)
}
