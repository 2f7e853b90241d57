package snapshot

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile stores a snapshot document at filePath, creating parent
// directories. Paths ending in .gz are gzip-compressed.
func WriteFile(filePath string, data []byte) (err error) {
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	if !strings.HasSuffix(filePath, ".gz") {
		if _, err := file.Write(data); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		return nil
	}

	gz := gzip.NewWriter(file)
	if _, err := gz.Write(data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to flush gzip stream: %w", err)
	}
	return nil
}
