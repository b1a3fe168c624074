package template

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer writes rendered files to disk.
type Writer struct {
	DryRun bool
	// Force overwrites files that already exist.
	Force bool
}

// Conflicts returns the paths under targetDir that WriteAll would refuse
// to overwrite.
func (w Writer) Conflicts(files []RenderedFile, targetDir string) []string {
	if w.Force || w.DryRun {
		return nil
	}
	var existing []string
	for _, f := range files {
		fullPath := filepath.Join(targetDir, filepath.FromSlash(f.Path))
		if _, err := os.Stat(fullPath); err == nil {
			existing = append(existing, fullPath)
		}
	}
	return existing
}

// WriteAll writes all files under targetDir, creating parent directories.
// In dry-run mode, no file is written but the output paths are returned.
// Existing files are left untouched and reported as an error unless Force
// is set.
func (w Writer) WriteAll(files []RenderedFile, targetDir string) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		fullPath := filepath.Join(targetDir, filepath.FromSlash(f.Path))
		paths = append(paths, fullPath)
		if w.DryRun {
			continue
		}
		if !w.Force {
			if _, err := os.Stat(fullPath); err == nil {
				return nil, fmt.Errorf("%s already exists", fullPath)
			}
		}
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating parent directory for %s: %w", fullPath, err)
		}
		if err := os.WriteFile(fullPath, []byte(f.Content), 0o644); err != nil {
			return nil, fmt.Errorf("writing file %s: %w", fullPath, err)
		}
	}
	return paths, nil
}
