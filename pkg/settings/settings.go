// Package settings persists the flatten configuration as a JSON file so the
// GUI keeps its include/skip sets across runs.
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"dirflat/pkg/flatten"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// DefaultFile is the settings file the GUI reads at startup and writes after
// the settings dialog is accepted.
const DefaultFile = "config.json"

// fileFormat is the on-disk shape of the settings file.
type fileFormat struct {
	IncludeFiles []string `json:"include_files"`
	SkipFolders  []string `json:"skip_folders"`
}

// Store loads and saves flatten configurations on an afero filesystem.
type Store struct {
	fs     afero.Fs
	logger *zap.Logger
}

// NewStore returns a Store backed by fsys. A nil fsys means the OS
// filesystem; a nil logger disables logging.
func NewStore(fsys afero.Fs, logger *zap.Logger) *Store {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{fs: fsys, logger: logger}
}

// Load reads the configuration at path. A missing, unreadable or malformed
// file falls back to the defaults; a key absent from the file falls back to
// that key's default. Load never fails the caller.
func (s *Store) Load(path string) flatten.Config {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read settings file, using defaults",
				zap.String("path", path), zap.Error(err))
		}
		return flatten.DefaultConfig().Normalize()
	}

	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		s.logger.Warn("Malformed settings file, using defaults",
			zap.String("path", path), zap.Error(err))
		return flatten.DefaultConfig().Normalize()
	}

	cfg := flatten.Config{IncludeExts: ff.IncludeFiles, SkipDirs: ff.SkipFolders}
	if ff.IncludeFiles == nil {
		cfg.IncludeExts = flatten.DefaultIncludeExts
	}
	if ff.SkipFolders == nil {
		cfg.SkipDirs = flatten.DefaultSkipDirs
	}
	return cfg.Normalize()
}

// Save writes cfg to path as indented JSON.
func (s *Store) Save(path string, cfg flatten.Config) error {
	cfg = cfg.Normalize()
	data, err := json.MarshalIndent(fileFormat{
		IncludeFiles: cfg.IncludeExts,
		SkipFolders:  cfg.SkipDirs,
	}, "", "    ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := afero.WriteFile(s.fs, path, append(data, '\n'), 0o644); err != nil {
		s.logger.Error("Failed to save settings file", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("write settings file %s: %w", path, err)
	}
	s.logger.Debug("Saved settings file", zap.String("path", path))
	return nil
}
