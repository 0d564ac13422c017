package colfile

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/colpack/colpack/internal/decimal"
)

// File is a decoded colpack columnar file. Null cells are absent from their
// row map, mirroring how the writer treats missing keys.
type File struct {
	Schema Schema
	Rows   []map[string]any
}

// Read decodes data produced by Writer.Bytes. Temporal columns surface
// their integer encodings (day counts, time-of-day counts, epoch micros);
// DECIMAL columns are rendered back to literals using the column scale.
func Read(data []byte) (*File, error) {
	c := cursor{data: data}

	magic, err := c.bytes(len(Magic))
	if err != nil || string(magic) != Magic {
		return nil, ErrBadMagic
	}

	numCols, err := c.int32()
	if err != nil {
		return nil, err
	}
	if numCols < 0 {
		return nil, fmt.Errorf("%w: negative column count", ErrBadBuffer)
	}

	schema := Schema{Cols: make([]Column, 0, numCols)}
	for i := int32(0); i < numCols; i++ {
		col, err := readColumn(&c)
		if err != nil {
			return nil, err
		}
		schema.Cols = append(schema.Cols, col)
	}

	numRows, err := c.int32()
	if err != nil {
		return nil, err
	}
	if numRows < 0 {
		return nil, fmt.Errorf("%w: negative row count", ErrBadBuffer)
	}

	rows := make([]map[string]any, 0, numRows)
	for r := int32(0); r < numRows; r++ {
		row := make(map[string]any, len(schema.Cols))
		for _, col := range schema.Cols {
			presence, err := c.uint8()
			if err != nil {
				return nil, err
			}
			if presence == presenceNull {
				continue
			}
			v, err := readValue(&c, col)
			if err != nil {
				return nil, err
			}
			row[col.Name] = v
		}
		rows = append(rows, row)
	}

	return &File{Schema: schema, Rows: rows}, nil
}

func readColumn(c *cursor) (Column, error) {
	name, err := c.string()
	if err != nil {
		return Column{}, err
	}
	ptag, err := c.string()
	if err != nil {
		return Column{}, err
	}
	ptype, err := ParsePhysicalType(ptag)
	if err != nil {
		return Column{}, err
	}
	ltag, err := c.string()
	if err != nil {
		return Column{}, err
	}
	ltype, err := ParseLogicalType(ltag)
	if err != nil {
		return Column{}, err
	}
	nullable, err := c.int32()
	if err != nil {
		return Column{}, err
	}
	precision, err := c.int32()
	if err != nil {
		return Column{}, err
	}
	scale, err := c.int32()
	if err != nil {
		return Column{}, err
	}
	return Column{
		Name:      name,
		Type:      ptype,
		Logical:   ltype,
		Nullable:  nullable != 0,
		Precision: int(precision),
		Scale:     int(scale),
	}, nil
}

func readValue(c *cursor, col Column) (any, error) {
	switch col.Type {
	case Boolean:
		b, err := c.uint8()
		if err != nil {
			return nil, err
		}
		return b != 0, nil
	case Int32:
		v, err := c.int32()
		if err != nil {
			return nil, err
		}
		return v, nil
	case Int64:
		v, err := c.int64()
		if err != nil {
			return nil, err
		}
		return v, nil
	case Float:
		v, err := c.int32()
		if err != nil {
			return nil, err
		}
		return math.Float32frombits(uint32(v)), nil
	case Double:
		v, err := c.int64()
		if err != nil {
			return nil, err
		}
		return math.Float64frombits(uint64(v)), nil
	case ByteArray, FixedLenByteArray:
		n, err := c.int32()
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: negative byte length", ErrBadBuffer)
		}
		raw, err := c.bytes(int(n))
		if err != nil {
			return nil, err
		}
		switch col.Logical {
		case UTF8:
			return string(raw), nil
		case Decimal:
			return decimal.DecodeString(raw, col.Scale), nil
		default:
			out := make([]byte, len(raw))
			copy(out, raw)
			return out, nil
		}
	default:
		return nil, fmt.Errorf("%w: physical type %s", ErrBadBuffer, col.Type)
	}
}

// cursor walks a byte slice with bounds checking; every miss is ErrBadBuffer.
type cursor struct {
	data []byte
	off  int
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if c.off+n > len(c.data) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrBadBuffer, n, c.off, len(c.data)-c.off)
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) uint8() (byte, error) {
	b, err := c.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) int32() (int32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (c *cursor) int64() (int64, error) {
	b, err := c.bytes(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func (c *cursor) string() (string, error) {
	n, err := c.int32()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("%w: negative string length", ErrBadBuffer)
	}
	b, err := c.bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
