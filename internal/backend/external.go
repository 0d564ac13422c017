package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/colpack/colpack/internal/colfile"
	"github.com/colpack/colpack/internal/source"
	"github.com/colpack/colpack/pkg/util"
)

// ExternalBackend shells out to a converter command to produce the output
// file, typically a true Apache Parquet writer in another runtime. The
// boundary is strict request/response: intermediate rows file + JSON schema
// descriptor in, output file out, non-zero exit is fatal.
type ExternalBackend struct {
	// Command is the converter argv prefix. It is invoked with three
	// appended arguments: rows path, schema path, output path.
	Command []string
}

func NewExternalBackend(command []string) (*ExternalBackend, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("backend: external converter command is empty")
	}
	return &ExternalBackend{Command: command}, nil
}

func (b *ExternalBackend) WriteTable(name string, schema colfile.Schema, rows []map[string]any) ([]byte, string, error) {
	if err := schema.Validate(); err != nil {
		return nil, "", err
	}

	dir, err := os.MkdirTemp("", "colpack-")
	if err != nil {
		// Allocation of scratch space failed; nothing to retry.
		return nil, "", fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	rowsPath := filepath.Join(dir, "rows.tsv")
	schemaPath := filepath.Join(dir, "schema.json")
	outPath := filepath.Join(dir, name+".parquet")

	f, err := os.Create(rowsPath)
	if err != nil {
		return nil, "", fmt.Errorf("create intermediate file: %w", err)
	}
	if err := writeIntermediate(f, schema, rows); err != nil {
		util.CloseFile(f)
		return nil, "", err
	}
	if err := f.Close(); err != nil {
		return nil, "", fmt.Errorf("close intermediate file: %w", err)
	}

	desc, err := json.Marshal(source.DescFromSchema(name, schema))
	if err != nil {
		return nil, "", fmt.Errorf("encode schema descriptor: %w", err)
	}
	if err := os.WriteFile(schemaPath, desc, 0o644); err != nil {
		return nil, "", fmt.Errorf("write schema descriptor: %w", err)
	}

	args := append(append([]string{}, b.Command[1:]...), rowsPath, schemaPath, outPath)
	cmd := exec.Command(b.Command[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diag := strings.TrimSpace(stderr.String())
		if diag == "" {
			diag = err.Error()
		}
		return nil, "", fmt.Errorf("%w: %s", ErrExternalBackend, diag)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, "", fmt.Errorf("%w: converter exited 0 but produced no output: %v", ErrExternalBackend, err)
	}
	return data, ".parquet", nil
}
