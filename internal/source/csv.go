package source

import (
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/colpack/colpack/internal/colfile"
)

// CSVSource reads rows from a CSV file with a header line. Header names are
// matched against schema column names; columns without a header and empty
// cells both surface as nulls (absent keys).
type CSVSource struct {
	f      *os.File
	r      *csv.Reader
	schema colfile.Schema
	// header position per schema column, -1 when the file lacks the column.
	pos []int
}

// OpenCSV opens path and consumes its header line.
func OpenCSV(path string, schema colfile.Schema) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	byName := make(map[string]int, len(header))
	for i, h := range header {
		byName[h] = i
	}
	pos := make([]int, len(schema.Cols))
	for i, c := range schema.Cols {
		if p, ok := byName[c.Name]; ok {
			pos[i] = p
		} else {
			pos[i] = -1
		}
	}

	return &CSVSource{f: f, r: r, schema: schema, pos: pos}, nil
}

// Next returns the next row, or io.EOF when the file is exhausted.
func (s *CSVSource) Next() (map[string]any, error) {
	rec, err := s.r.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read csv row: %w", err)
	}

	row := make(map[string]any, len(s.schema.Cols))
	for i, c := range s.schema.Cols {
		p := s.pos[i]
		if p < 0 || p >= len(rec) || rec[p] == "" {
			continue
		}
		v, err := convertCell(c, rec[p])
		if err != nil {
			return nil, err
		}
		row[c.Name] = v
	}
	return row, nil
}

// Close releases the underlying file.
func (s *CSVSource) Close() error {
	return s.f.Close()
}

// convertCell turns a CSV text cell into the scalar form the writer accepts.
// Temporal and decimal cells stay strings, the writer's codecs parse them.
// Raw BYTE_ARRAY cells are base64, matching the external intermediate format.
func convertCell(c colfile.Column, cell string) (any, error) {
	switch c.Type {
	case colfile.Boolean:
		b, err := strconv.ParseBool(cell)
		if err != nil {
			return nil, fmt.Errorf("source: column %q: %q is not a bool", c.Name, cell)
		}
		return b, nil
	case colfile.Int32, colfile.Int64:
		switch c.Logical {
		case colfile.Date, colfile.TimeMillis, colfile.TimeMicros,
			colfile.TimestampMillis, colfile.TimestampMicros:
			return cell, nil
		}
		n, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("source: column %q: %q is not an integer", c.Name, cell)
		}
		return n, nil
	case colfile.Float, colfile.Double:
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("source: column %q: %q is not a number", c.Name, cell)
		}
		return f, nil
	case colfile.ByteArray, colfile.FixedLenByteArray:
		switch c.Logical {
		case colfile.UTF8, colfile.Decimal:
			return cell, nil
		}
		raw, err := base64.StdEncoding.DecodeString(cell)
		if err != nil {
			return nil, fmt.Errorf("source: column %q: invalid base64: %w", c.Name, err)
		}
		return raw, nil
	default:
		return cell, nil
	}
}
