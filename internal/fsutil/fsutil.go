// Package fsutil holds the path checks shared by the commands.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrForbiddenName = errors.New("forbidden character in name")
)

// ForbiddenChars cannot appear in a file or folder name we create.
const ForbiddenChars = `\/:*?"<>|`

// RequireFile fails unless path names an existing regular file.
func RequireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file %s: %w", path, ErrNotFound)
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("file %s: %w", path, ErrNotFound)
	}
	return nil
}

// RequireDir fails unless path names an existing directory.
func RequireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("folder %s: %w", path, ErrNotFound)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("folder %s: %w", path, ErrNotFound)
	}
	return nil
}

// RequireAbsent fails when anything exists at path.
func RequireAbsent(path string) error {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return fmt.Errorf("%s: %w", path, ErrAlreadyExists)
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

// ValidName checks the last element of path for forbidden characters.
func ValidName(path string) error {
	name := filepath.Base(filepath.Clean(path))
	if i := strings.IndexAny(name, ForbiddenChars); i >= 0 {
		return fmt.Errorf("%q (%q): %w", name, name[i], ErrForbiddenName)
	}
	return nil
}
