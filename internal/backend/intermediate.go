package backend

import (
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/colpack/colpack/internal/colfile"
	"github.com/colpack/colpack/internal/temporal"
)

// Intermediate wire format consumed by the external converter: one
// tab-separated line per row, cells in schema column order. Null is the
// literal \N; BYTE_ARRAY-family payloads (UTF8 included) are base64 so tabs
// and newlines can never leak into the framing; temporal cells are ISO-like
// strings. This layout is a contract with the converter side and must not
// drift.
const nullToken = `\N`

const (
	isoDateLayout      = "2006-01-02"
	isoTimeLayout      = "15:04:05.000000"
	isoTimestampLayout = "2006-01-02 15:04:05.000000"
)

// writeIntermediate streams rows in the intermediate format.
func writeIntermediate(w io.Writer, schema colfile.Schema, rows []map[string]any) error {
	for _, row := range rows {
		for i, c := range schema.Cols {
			if i > 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return fmt.Errorf("write intermediate: %w", err)
				}
			}
			cell, err := intermediateCell(c, row)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(w, cell); err != nil {
				return fmt.Errorf("write intermediate: %w", err)
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("write intermediate: %w", err)
		}
	}
	return nil
}

func intermediateCell(c colfile.Column, row map[string]any) (string, error) {
	v, ok := row[c.Name]
	if !ok || v == nil {
		return nullToken, nil
	}

	switch c.Logical {
	case colfile.Date:
		t, err := cellTime(c, v)
		if err != nil {
			return "", err
		}
		return t.UTC().Format(isoDateLayout), nil
	case colfile.TimeMillis, colfile.TimeMicros:
		t, err := cellTime(c, v)
		if err != nil {
			return "", err
		}
		return t.UTC().Format(isoTimeLayout), nil
	case colfile.TimestampMillis, colfile.TimestampMicros:
		t, err := cellTime(c, v)
		if err != nil {
			return "", err
		}
		return t.UTC().Format(isoTimestampLayout), nil
	}

	switch c.Type {
	case colfile.Boolean:
		b, ok := v.(bool)
		if !ok {
			return "", fmt.Errorf("backend: column %q: expected bool, got %T", c.Name, v)
		}
		return strconv.FormatBool(b), nil
	case colfile.ByteArray, colfile.FixedLenByteArray:
		if c.Logical == colfile.Decimal {
			return fmt.Sprint(v), nil
		}
		switch x := v.(type) {
		case []byte:
			return base64.StdEncoding.EncodeToString(x), nil
		case string:
			return base64.StdEncoding.EncodeToString([]byte(x)), nil
		default:
			return "", fmt.Errorf("backend: column %q: expected bytes, got %T", c.Name, v)
		}
	default:
		return fmt.Sprint(v), nil
	}
}

func cellTime(c colfile.Column, v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		t, err := temporal.Parse(x)
		if err != nil {
			return time.Time{}, fmt.Errorf("backend: column %q: %w", c.Name, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("backend: column %q: expected time, got %T", c.Name, v)
	}
}
