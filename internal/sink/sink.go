// Package sink persists finalized export bytes. The writer itself never
// streams; a sink receives one complete byte payload per file, optionally
// after compression.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	fileMode0644 = 0o644
	fileMode0755 = 0o755
)

// Sink stores one named payload. Implementations decide where the bytes go.
type Sink interface {
	Put(name string, data []byte) error
}

// FileSink writes payloads into a local directory.
type FileSink struct {
	dir string
}

// NewFileSink creates the directory if needed and returns a sink over it.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, fileMode0755); err != nil {
		return nil, fmt.Errorf("create sink directory: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

// Dir returns the sink's target directory.
func (s *FileSink) Dir() string { return s.dir }

// Put writes data to dir/name.
func (s *FileSink) Put(name string, data []byte) error {
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, fileMode0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
