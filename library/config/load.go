// Package config loads runtime settings into the shared go-config instance.
package config

import (
	"os"
	"path/filepath"
	"strings"

	errors "github.com/Laisky/errors/v2"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"

	"github.com/Laisky/miridev-mcp/library/log"
)

const (
	// DirName is the per-user configuration directory name under the home directory.
	DirName = ".miridev"
	// FileName is the default configuration file name inside DirName.
	FileName = "settings.yml"
)

// DefaultDir returns the per-user configuration directory, usually ~/.miridev.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DirName
	}

	return filepath.Join(home, DirName)
}

// DefaultFile returns the default configuration file path.
func DefaultFile() string {
	return filepath.Join(DefaultDir(), FileName)
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) string {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// LoadFromFile loads configuration from cfgPath.
//
// A missing file is only an error when required is true, so that the
// default per-user file may be absent on fresh installations.
func LoadFromFile(cfgPath string, required bool) error {
	cfgPath = ExpandHome(cfgPath)
	if cfgPath == "" {
		return nil
	}

	if _, err := os.Stat(cfgPath); err != nil {
		if os.IsNotExist(err) && !required {
			log.Logger.Debug("configuration file not found, use defaults",
				zap.String("config", cfgPath))
			return nil
		}

		return errors.Wrapf(err, "stat config %q", cfgPath)
	}

	gconfig.S.Set("cfg_dir", filepath.Dir(cfgPath))
	if err := gconfig.S.LoadFromFile(cfgPath); err != nil {
		return errors.Wrapf(err, "load configuration %q", cfgPath)
	}

	log.Logger.Info("load configuration", zap.String("config", cfgPath))
	return nil
}
