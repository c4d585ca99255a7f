package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

// ResolveSourcePath finds the workbook for a configured path. Absolute paths
// and paths that exist relative to the working directory are returned as
// they are. Otherwise data/ and the executable directory are tried.
func ResolveSourcePath(configured string) string {
	if filepath.IsAbs(configured) || FileExists(configured) {
		return configured
	}

	candidates := []string{filepath.Join("data", configured)}
	if exeDir, err := executableDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(exeDir, configured),
			filepath.Join(exeDir, "data", configured))
	}

	for _, candidate := range candidates {
		if FileExists(candidate) {
			slog.Debug("Resolved source workbook",
				slog.String("configured", configured),
				slog.String("resolved", candidate))
			return candidate
		}
	}
	return configured
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}
