package backend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colpack/colpack/internal/colfile"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind("")
	require.NoError(t, err)
	require.Equal(t, Native, k)

	k, err = ParseKind("external")
	require.NoError(t, err)
	require.Equal(t, External, k)

	_, err = ParseKind("hadoop")
	require.Error(t, err)
}

func TestNativeBackend_WriteTable(t *testing.T) {
	schema := colfile.Schema{Cols: []colfile.Column{
		{Name: "id", Type: colfile.Int32},
		{Name: "name", Type: colfile.ByteArray, Logical: colfile.UTF8, Nullable: true},
	}}
	rows := []map[string]any{
		{"id": int32(1), "name": "Alice"},
		{"id": int32(2)},
	}

	data, ext, err := NativeBackend{}.WriteTable("users", schema, rows)
	require.NoError(t, err)
	require.Equal(t, ".pqt", ext)

	f, err := colfile.Read(data)
	require.NoError(t, err)
	require.Len(t, f.Rows, 2)
	require.Equal(t, "Alice", f.Rows[0]["name"])
}

func TestNativeBackend_BadSchema(t *testing.T) {
	_, _, err := NativeBackend{}.WriteTable("t", colfile.Schema{}, nil)
	require.ErrorIs(t, err, colfile.ErrBadSchema)
}
