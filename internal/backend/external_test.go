package backend

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colpack/colpack/internal/colfile"
	"github.com/colpack/colpack/internal/source"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("external converter tests need a POSIX shell")
	}
}

func TestExternalBackend_ArgumentPlumbing(t *testing.T) {
	skipWithoutShell(t)

	// Fake converter: copies the schema descriptor to the output path.
	// $1 = rows, $2 = schema, $3 = output.
	b, err := NewExternalBackend([]string{"/bin/sh", "-c", `cp "$2" "$3"`, "fake-converter"})
	require.NoError(t, err)

	schema := colfile.Schema{Cols: []colfile.Column{{Name: "id", Type: colfile.Int32}}}
	data, ext, err := b.WriteTable("users", schema, []map[string]any{{"id": int64(1)}})
	require.NoError(t, err)
	require.Equal(t, ".parquet", ext)

	var desc source.TableDesc
	require.NoError(t, json.Unmarshal(data, &desc))
	require.Equal(t, "users", desc.Name)
	require.Len(t, desc.Columns, 1)
	require.Equal(t, "INT32", desc.Columns[0].Type)
}

func TestExternalBackend_RowsReachConverter(t *testing.T) {
	skipWithoutShell(t)

	// Fake converter: copies the rows file to the output path.
	b, err := NewExternalBackend([]string{"/bin/sh", "-c", `cp "$1" "$3"`, "fake-converter"})
	require.NoError(t, err)

	schema := colfile.Schema{Cols: []colfile.Column{{Name: "id", Type: colfile.Int64}}}
	data, _, err := b.WriteTable("t", schema, []map[string]any{{"id": int64(5)}, {}})
	require.NoError(t, err)
	require.Equal(t, "5\n\\N\n", string(data))
}

func TestExternalBackend_NonZeroExit(t *testing.T) {
	skipWithoutShell(t)

	b, err := NewExternalBackend([]string{"/bin/sh", "-c", `echo "boom: cannot convert" >&2; exit 3`, "fake-converter"})
	require.NoError(t, err)

	schema := colfile.Schema{Cols: []colfile.Column{{Name: "id", Type: colfile.Int32}}}
	_, _, err = b.WriteTable("t", schema, nil)
	require.ErrorIs(t, err, ErrExternalBackend)
	require.Contains(t, err.Error(), "boom: cannot convert")
}

func TestExternalBackend_NoOutputFile(t *testing.T) {
	skipWithoutShell(t)

	b, err := NewExternalBackend([]string{"/bin/sh", "-c", `true`, "fake-converter"})
	require.NoError(t, err)

	schema := colfile.Schema{Cols: []colfile.Column{{Name: "id", Type: colfile.Int32}}}
	_, _, err = b.WriteTable("t", schema, nil)
	require.ErrorIs(t, err, ErrExternalBackend)
}

func TestNewExternalBackend_EmptyCommand(t *testing.T) {
	_, err := NewExternalBackend(nil)
	require.Error(t, err)
}
