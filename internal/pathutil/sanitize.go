package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// SanitizeOutputPath validates and cleans a document output path and returns
// it as an absolute path. The target must be a regular file or not exist yet,
// and its parent directory must exist. Symlinks are rejected.
func SanitizeOutputPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("pathutil: output path is empty")
	}

	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
		}
		if info.IsDir() {
			return "", fmt.Errorf("pathutil: output path is a directory: %s", abs)
		}
		return abs, nil
	case !os.IsNotExist(err):
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}

	parent, err := os.Stat(filepath.Dir(abs))
	if err != nil {
		return "", fmt.Errorf("pathutil: output directory: %w", err)
	}
	if !parent.IsDir() {
		return "", fmt.Errorf("pathutil: output parent is not a directory: %s", filepath.Dir(abs))
	}
	return abs, nil
}
