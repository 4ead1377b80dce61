package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ExportRoot    string `toml:"export_root"`
	DBPath        string `toml:"db_path"`
	OutDir        string `toml:"out_dir"`
	Format        string `toml:"format"`
	SavedAt       bool   `toml:"saved_at"`
	DateDetection string `toml:"date_detection"`
}

// Load reads ~/.config/linetalk/config.toml over the defaults.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(home, ".config", "linetalk", "config.toml"), home)
}

// LoadFrom is Load with an explicit config path and home directory.
// A missing config file is not an error.
func LoadFrom(cfgPath, home string) (*Config, error) {
	cfg := &Config{
		ExportRoot:    filepath.Join(home, "LINE"),
		DBPath:        filepath.Join(home, ".config", "linetalk", "linetalk.db"),
		OutDir:        ".",
		Format:        "toml",
		DateDetection: "line",
	}

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// expand ~ in paths
	cfg.ExportRoot = expandHome(cfg.ExportRoot, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.OutDir = expandHome(cfg.OutDir, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
