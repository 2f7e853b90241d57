package snapshot

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for snapshot files on local disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based snapshot loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "snapshot-loader").Logger(),
	}
}

// Load reads the snapshot file at filePath.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]byte, error) {
	l.logger.Debug().Str("file", filePath).Msg("loading snapshot file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open snapshot file")
		return nil, fmt.Errorf("failed to open snapshot file %s: %w", filePath, err)
	}
	defer file.Close()

	data, err := readAll(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading snapshot file")
		return nil, fmt.Errorf("error reading snapshot file %s: %w", filePath, err)
	}

	l.logger.Debug().
		Str("file", filePath).
		Int("bytes", len(data)).
		Msg("snapshot file loaded")

	return data, nil
}
