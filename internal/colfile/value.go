package colfile

import (
	"fmt"
	"strconv"
	"time"

	"github.com/colpack/colpack/internal/binbuf"
	"github.com/colpack/colpack/internal/decimal"
	"github.com/colpack/colpack/internal/temporal"
)

// writeValue serializes one present cell. The physical type picks the wire
// encoding, the logical type may redirect INT32/INT64 to a temporal count
// and BYTE_ARRAY to UTF-8 or decimal bytes. An unknown physical type falls
// back to the length-prefixed string form of the value instead of failing.
//
// FIXED_LEN_BYTE_ARRAY does not pad or truncate to any declared width; it
// is encoded exactly like BYTE_ARRAY.
func writeValue(buf *binbuf.Buffer, col Column, v any) error {
	switch col.Type {
	case Boolean:
		b, err := asBool(col, v)
		if err != nil {
			return err
		}
		if b {
			buf.WriteUint8(1)
		} else {
			buf.WriteUint8(0)
		}
		return nil

	case Int32:
		switch col.Logical {
		case Date:
			t, err := asTime(col, v)
			if err != nil {
				return err
			}
			buf.WriteInt32(temporal.DateDays(t))
		case TimeMillis:
			t, err := asTime(col, v)
			if err != nil {
				return err
			}
			buf.WriteInt32(temporal.TimeMillis(t))
		default:
			n, err := asInt(col, v)
			if err != nil {
				return err
			}
			buf.WriteInt32(int32(n))
		}
		return nil

	case Int64:
		switch col.Logical {
		case TimeMicros:
			t, err := asTime(col, v)
			if err != nil {
				return err
			}
			buf.WriteInt64(temporal.TimeMicros(t))
		case TimestampMillis, TimestampMicros:
			// Both timestamp flavors are written at microsecond resolution.
			t, err := asTime(col, v)
			if err != nil {
				return err
			}
			buf.WriteInt64(temporal.TimestampMicros(t))
		default:
			n, err := asInt(col, v)
			if err != nil {
				return err
			}
			buf.WriteInt64(n)
		}
		return nil

	case Float:
		f, err := asFloat(col, v)
		if err != nil {
			return err
		}
		buf.WriteFloat32(float32(f))
		return nil

	case Double:
		f, err := asFloat(col, v)
		if err != nil {
			return err
		}
		buf.WriteFloat64(f)
		return nil

	case ByteArray, FixedLenByteArray:
		var raw []byte
		switch col.Logical {
		case Decimal:
			lit, err := asDecimalLiteral(col, v)
			if err != nil {
				return err
			}
			raw, err = decimal.EncodeString(lit)
			if err != nil {
				return fmt.Errorf("colfile: column %q: %w", col.Name, err)
			}
		case UTF8:
			s, err := asString(col, v)
			if err != nil {
				return err
			}
			raw = []byte(s)
		default:
			b, err := asBytes(col, v)
			if err != nil {
				return err
			}
			raw = b
		}
		buf.WriteInt32(int32(len(raw)))
		buf.WriteBytes(raw)
		return nil

	default:
		// Permissive fallback kept from the original writer: an unmapped
		// physical type stringifies rather than failing the export.
		s := fmt.Sprint(v)
		buf.WriteInt32(int32(len(s)))
		buf.WriteBytes([]byte(s))
		return nil
	}
}

func badValue(col Column, v any) error {
	return fmt.Errorf("%w: column %q (%s) got %T", ErrBadValue, col.Name, col.Type, v)
}

func asBool(col Column, v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(x)
		if err != nil {
			return false, badValue(col, v)
		}
		return b, nil
	default:
		return false, badValue(col, v)
	}
}

func asInt(col Column, v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return int64(x), nil
	case float32:
		return int64(x), nil
	case float64:
		return int64(x), nil
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0, badValue(col, v)
		}
		return n, nil
	default:
		return 0, badValue(col, v)
	}
}

func asFloat(col Column, v any) (float64, error) {
	switch x := v.(type) {
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, badValue(col, v)
		}
		return f, nil
	default:
		return 0, badValue(col, v)
	}
}

func asString(col Column, v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func asBytes(col Column, v any) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	default:
		return nil, badValue(col, v)
	}
}

// asDecimalLiteral renders the cell as a decimal digit literal for the
// two's-complement codec. Strings pass through untouched, the scale is the
// caller's contract; numeric values are formatted exactly.
func asDecimalLiteral(col Column, v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case int:
		return strconv.Itoa(x), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), nil
	default:
		return "", badValue(col, v)
	}
}

// asTime accepts either a structured time value or a parseable string.
// A string that fails to parse fails the whole write with the temporal
// format error.
func asTime(col Column, v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		t, err := temporal.Parse(x)
		if err != nil {
			return time.Time{}, fmt.Errorf("colfile: column %q: %w", col.Name, err)
		}
		return t, nil
	default:
		return time.Time{}, badValue(col, v)
	}
}
