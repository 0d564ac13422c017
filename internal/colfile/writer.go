// Package colfile implements the colpack columnar file format: a 4-byte
// magic, a self-describing column block, then one row block per row where
// every cell is a presence byte followed by its type-specific encoding.
//
// The format is custom and self-contained; it is not an Apache Parquet
// byte layout.
package colfile

import (
	"github.com/colpack/colpack/internal/binbuf"
)

// Magic is the 4-byte literal every colpack file starts with.
const Magic = "PQT0"

const (
	presenceNull  = 0x00
	presentMarker = 0x01
)

// Writer accumulates rows for one schema and serializes them in a single
// finalize pass. Rows are held in memory until Bytes is called, so the
// usable scale is bounded by memory; streaming to a destination is the
// sink's job, after finalize.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	schema    Schema
	rows      []map[string]any
	finalized bool
	out       []byte
}

// NewWriter validates schema and returns a writer in the building state.
func NewWriter(schema Schema) (*Writer, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &Writer{schema: schema}, nil
}

// Schema returns the writer's column schema.
func (w *Writer) Schema() Schema { return w.schema }

// NumRows returns the number of rows appended so far.
func (w *Writer) NumRows() int { return len(w.rows) }

// AppendRows adds rows to the in-memory accumulation. A row is a mapping
// from column name to a scalar value; a missing key is written as null, not
// treated as an error. Appending after finalize returns ErrWriterFinalized.
func (w *Writer) AppendRows(rows ...map[string]any) error {
	if w.finalized {
		return ErrWriterFinalized
	}
	w.rows = append(w.rows, rows...)
	return nil
}

// Bytes finalizes the file and returns the complete output. The first call
// runs the serialization pass; later calls return the identical cached bytes.
// After a successful finalize the writer no longer accepts rows. On error
// the output is invalid and must be discarded whole.
func (w *Writer) Bytes() ([]byte, error) {
	if w.finalized {
		return w.out, nil
	}

	buf := binbuf.New()
	buf.WriteBytes([]byte(Magic))

	buf.WriteInt32(int32(len(w.schema.Cols)))
	for _, c := range w.schema.Cols {
		writeString(buf, c.Name)
		writeString(buf, c.Type.String())
		writeString(buf, c.Logical.String())
		if c.Nullable {
			buf.WriteInt32(1)
		} else {
			buf.WriteInt32(0)
		}
		buf.WriteInt32(int32(c.Precision))
		buf.WriteInt32(int32(c.Scale))
	}

	buf.WriteInt32(int32(len(w.rows)))
	for _, row := range w.rows {
		for _, c := range w.schema.Cols {
			v, ok := row[c.Name]
			if !ok || v == nil {
				buf.WriteUint8(presenceNull)
				continue
			}
			buf.WriteUint8(presentMarker)
			if err := writeValue(buf, c, v); err != nil {
				return nil, err
			}
		}
	}

	w.out = buf.Bytes()
	w.finalized = true
	w.rows = nil
	return w.out, nil
}

// writeString appends an int32 LE length prefix followed by the UTF-8 bytes.
func writeString(buf *binbuf.Buffer, s string) {
	buf.WriteInt32(int32(len(s)))
	buf.WriteBytes([]byte(s))
}
