// Copyright (c) 2025 @AmarnathCJD

package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// WriteFile stores a raw session string at path, readable by the owner only.
// The parent directory has to exist already.
func WriteFile(path, raw string) error {
	dir, _ := filepath.Split(path)
	if dir != "" {
		if stat, err := os.Stat(dir); err != nil {
			return fmt.Errorf("%v: directory not found", dir)
		} else if !stat.IsDir() {
			return fmt.Errorf("%v: not a directory", dir)
		}
	}

	return os.WriteFile(path, []byte(raw+"\n"), 0600)
}

// ReadFile loads a raw session string from path, dropping surrounding whitespace.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, syscall.ENOENT):
		return "", fmt.Errorf("file not found: %w", err)
	default:
		return "", fmt.Errorf("reading file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
