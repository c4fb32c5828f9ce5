package config

import (
	"os"
	"path/filepath"
)

// Resolve picks the config file to use. An explicit path always wins.
// Otherwise the nearest .placetree/config.yaml walking up from the current
// directory is used, then the user config file. The returned path may not
// exist; Load treats that as defaults.
func Resolve(explicit string) string {
	if explicit != "" {
		return expandHome(explicit)
	}
	if dir, ok := DetectProjectDir(); ok {
		return filepath.Join(dir, DirName, FileName)
	}
	return UserConfigPath()
}

// DetectProjectDir attempts to find the current project by walking up from
// the current directory looking for .placetree/.
func DetectProjectDir() (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	return findProjectRoot(dir)
}

// findProjectRoot walks up from dir looking for a .placetree/ directory.
func findProjectRoot(dir string) (string, bool) {
	home, _ := os.UserHomeDir()

	for {
		stateDir := filepath.Join(dir, DirName)
		if info, err := os.Stat(stateDir); err == nil && info.IsDir() {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached filesystem root
		}
		// Don't go above home directory
		if home != "" && dir == home {
			break
		}
		dir = parent
	}
	return "", false
}

// expandHome replaces a leading ~/ with the user's home directory.
func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// ResolveStateDir makes a relative state dir relative to the directory that
// holds the config's .placetree folder, so view state follows the project
// rather than the shell's working directory.
func ResolveStateDir(cfg Config, configPath string) string {
	if cfg.StateDir == "" || filepath.IsAbs(cfg.StateDir) {
		return cfg.StateDir
	}
	dir := expandHome(cfg.StateDir)
	if dir != cfg.StateDir {
		return dir
	}
	if configPath != "" && filepath.Base(filepath.Dir(configPath)) == DirName {
		return filepath.Join(filepath.Dir(filepath.Dir(configPath)), cfg.StateDir)
	}
	return cfg.StateDir
}
