package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.simpledb/internal/storage"
	"go.yaml.in/yaml/v3"
)

// DefaultMaxPages is the page cache ceiling used when the config does not set one
const DefaultMaxPages = storage.DefaultMaxPages

type Config struct {
	Home        string `yaml:"home"`
	LogDir      string `yaml:"log_dir"`
	LogLevel    string `yaml:"log_level"`
	HistoryFile string `yaml:"history_file"`
	Prompt      string `yaml:"prompt"`
	MaxPages    int    `yaml:"max_pages"`
	MetricsAddr string `yaml:"metrics_addr"`
}

func LoadConfig(homeOverride, configOverride string) (*Config, error) {
	paths, err := ResolvePaths(homeOverride, configOverride)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Home:        paths.Home,
		LogDir:      paths.LogDir,
		LogLevel:    "info",
		HistoryFile: paths.History,
		Prompt:      "db > ",
		MaxPages:    DefaultMaxPages,
	}

	f, err := os.Open(paths.Config)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", paths.Config, err)
		}
	case configOverride != "":
		// An explicit config path has to exist
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	_ = os.MkdirAll(cfg.LogDir, 0o755)

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be positive, got %d", cfg.MaxPages)
	}
	return nil
}

// LogFile is where the shell writes its log
func (cfg *Config) LogFile() string {
	return filepath.Join(cfg.LogDir, "simpledb.log")
}
