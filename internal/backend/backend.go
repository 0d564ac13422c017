// Package backend turns an accumulated table into final file bytes. The
// native backend uses the built-in columnar writer; the external backend
// hands the rows to a separate converter process over a documented
// intermediate wire format.
package backend

import (
	"errors"
	"fmt"

	"github.com/colpack/colpack/internal/colfile"
)

// Kind selects the writer backend.
type Kind string

const (
	Native   Kind = "native"
	External Kind = "external"
)

// ParseKind maps a config string to a backend kind; empty means Native.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", Native:
		return Native, nil
	case External:
		return External, nil
	default:
		return "", fmt.Errorf("backend: unknown writer backend %q", s)
	}
}

var (
	// ErrExternalBackend wraps any failure of the external converter
	// process, including its captured diagnostic output.
	ErrExternalBackend = errors.New("backend: external converter failed")
)

// Backend serializes one table. Implementations return the complete file
// bytes and the file extension they produce.
type Backend interface {
	WriteTable(name string, schema colfile.Schema, rows []map[string]any) (data []byte, ext string, err error)
}

// NativeBackend writes the colpack columnar format in process.
type NativeBackend struct{}

func (NativeBackend) WriteTable(name string, schema colfile.Schema, rows []map[string]any) ([]byte, string, error) {
	w, err := colfile.NewWriter(schema)
	if err != nil {
		return nil, "", err
	}
	if err := w.AppendRows(rows...); err != nil {
		return nil, "", err
	}
	data, err := w.Bytes()
	if err != nil {
		return nil, "", err
	}
	return data, ".pqt", nil
}
