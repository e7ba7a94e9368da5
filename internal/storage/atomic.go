package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// writeFileAtomic writes data through a temp file and renames it into place,
// so readers never observe a partially written report.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempFile := fmt.Sprintf("%s.tmp.%d", filename, time.Now().UnixNano())
	if err := os.WriteFile(tempFile, data, perm); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
