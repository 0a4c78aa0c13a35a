// =============================================================================
// Seatmap Converter - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the converter:
//   - Output file naming derived from the input file
//   - Atomic writes (temp file + rename) so a failed run leaves nothing behind
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// =============================================================================
// FILE NAMING UTILITIES
// =============================================================================

// OutputPath returns the path of the file produced for input.
//
// The output lives next to the input. Its name is the input's base name up to
// its first "." followed by suffix and ext:
//
//	data/seatmap.v2.xml, "_parsed", ".json" -> data/seatmap_parsed.json
//	data/seatmap, "_parsed", ".json"        -> data/seatmap_parsed.json
func OutputPath(input, suffix, ext string) string {
	dir, base := filepath.Split(input)
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	return filepath.Join(dir, base+suffix+ext)
}

// =============================================================================
// FILE WRITING
// =============================================================================

// WriteFileAtomic writes data to path. The data goes to a uniquely named
// temporary file in the same directory first and is renamed into place only
// when complete; on any failure the temporary file is removed and path is
// left untouched.
func WriteFileAtomic(path string, data []byte) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.New().String()))

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, removeIfExists(tmp))
		}
	}()

	if _, err = f.Write(data); err != nil {
		err = multierr.Append(fmt.Errorf("failed to write %s: %w", path, err), f.Close())
		return err
	}
	if err = f.Sync(); err != nil {
		err = multierr.Append(fmt.Errorf("failed to flush %s: %w", path, err), f.Close())
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove temporary file: %w", err)
	}
	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
