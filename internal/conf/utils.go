// conf/utils.go helpers for locating configuration and data files
package conf

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/gamevault/gamevault/internal/errors"
)

const osWindows = "windows"

// GetDefaultConfigPaths returns the OS specific default configuration paths,
// in lookup order.
func GetDefaultConfigPaths() ([]string, error) {
	var configPaths []string

	exePath, err := os.Executable()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryConfiguration).
			Context("operation", "get-executable-path").
			Build()
	}
	exeDir := filepath.Dir(exePath)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryConfiguration).
			Context("operation", "get-home-directory").
			Build()
	}

	switch runtime.GOOS {
	case osWindows:
		configPaths = []string{
			exeDir,
			filepath.Join(homeDir, "AppData", "Roaming", "gamevault"),
		}
	default:
		configPaths = []string{
			filepath.Join(homeDir, ".config", "gamevault"),
			exeDir,
			".",
		}
	}

	return configPaths, nil
}

// GetBasePath expands a possibly relative path against the current working
// directory and ensures the directory exists.
func GetBasePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	wd, err := os.Getwd()
	if err != nil {
		return path
	}

	basePath := filepath.Join(wd, path)
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return path
	}
	return basePath
}
