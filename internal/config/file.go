package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
)

// AppDirName is the per-user directory holding the config file and history
const AppDirName = "yt-batch"

// Default file names under the app directory
const (
	ConfigFileName  = "config.toml"
	HistoryFileName = "history.db"
)

// FileConfig is the optional TOML config of the command line interface.
// Command line flags override every value set here.
type FileConfig struct {
	YTDLP           string `toml:"ytdlp"`
	OutputDir       string `toml:"output_dir"`
	Quality         string `toml:"quality"`
	Format          string `toml:"format"`
	ExpandPlaylists bool   `toml:"expand_playlists"`
	PlaylistTimeout string `toml:"playlist_timeout"`
	HistoryDB       string `toml:"history_db"`
	NoHistory       bool   `toml:"no_history"`

	Log struct {
		Level string `toml:"level"`
		JSON  bool   `toml:"json"`
	} `toml:"log"`
}

// DefaultConfigPath returns <user config dir>/yt-batch/config.toml
func DefaultConfigPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// DefaultHistoryPath returns <user config dir>/yt-batch/history.db
func DefaultHistoryPath() (string, error) {
	dir, err := appDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, HistoryFileName), nil
}

func appDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to get user config directory")
	}
	return filepath.Join(base, AppDirName), nil
}

// LoadFile reads a TOML config file. A missing file yields an empty config
// unless required is set.
func LoadFile(path string, required bool) (*FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return &cfg, nil
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}

	return &cfg, nil
}
