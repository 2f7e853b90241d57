// Package snapshot loads catalogue snapshot documents from local disk or S3.
// Snapshots may be gzipped; compression is detected from the content.
package snapshot

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
)

// MaxSize bounds the decompressed size of a snapshot.
const MaxSize = 64 << 20

// Loader reads a snapshot document.
type Loader interface {
	// Load returns the decompressed contents of the snapshot at key.
	Load(ctx context.Context, key string) ([]byte, error)
}

var gzipMagic = []byte{0x1f, 0x8b}

// readAll decompresses r when it starts with the gzip magic number and reads at
// most MaxSize bytes, checking ctx before and after the read.
func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	br := bufio.NewReader(r)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read snapshot header: %w", err)
	}

	var src io.Reader = br
	if bytes.Equal(head, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	data, err := io.ReadAll(io.LimitReader(src, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("snapshot exceeds %d bytes", MaxSize)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data, nil
}
