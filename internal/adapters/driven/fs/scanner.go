package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
)

// Ensure Scanner implements the interface.
var _ driven.FolderScanner = (*Scanner)(nil)

// Scanner enumerates candidate files in a single folder.
type Scanner struct{}

// NewScanner creates a new folder scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Validate checks that dir exists and is a directory.
func (s *Scanner) Validate(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrFolderNotFound, dir)
		}
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrFolderNotFound, dir)
	}
	return nil
}

// ListFiles returns the files in dir whose base name matches pattern,
// sorted by name. Subdirectories are not descended into.
func (s *Scanner) ListFiles(dir, pattern string) ([]string, error) {
	if err := s.Validate(dir); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := doublestar.Match(pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("match pattern %q: %w", pattern, err)
		}
		if matched {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
