package colfile

import "fmt"

// PhysicalType is the wire-level scalar encoding of a column.
type PhysicalType uint8

const (
	Boolean PhysicalType = iota
	Int32
	Int64
	Float
	Double
	ByteArray
	FixedLenByteArray
)

func (t PhysicalType) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	case FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
	}
}

// ParsePhysicalType maps a tag string from the column block back to its type.
func ParsePhysicalType(s string) (PhysicalType, error) {
	for t := Boolean; t <= FixedLenByteArray; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: physical type %q", ErrBadSchema, s)
}

// LogicalType refines how a physical type is interpreted. LogicalNone means
// the physical type is taken literally.
type LogicalType uint8

const (
	LogicalNone LogicalType = iota
	UTF8
	Date
	TimeMillis
	TimeMicros
	TimestampMillis
	TimestampMicros
	Decimal
)

func (t LogicalType) String() string {
	switch t {
	case LogicalNone:
		return ""
	case UTF8:
		return "UTF8"
	case Date:
		return "DATE"
	case TimeMillis:
		return "TIME_MILLIS"
	case TimeMicros:
		return "TIME_MICROS"
	case TimestampMillis:
		return "TIMESTAMP_MILLIS"
	case TimestampMicros:
		return "TIMESTAMP_MICROS"
	case Decimal:
		return "DECIMAL"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(t))
	}
}

// ParseLogicalType maps a tag string back to its logical type; the empty
// string is LogicalNone.
func ParseLogicalType(s string) (LogicalType, error) {
	for t := LogicalNone; t <= Decimal; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: logical type %q", ErrBadSchema, s)
}

// Column describes one output column. Precision and Scale only carry meaning
// for DECIMAL columns; Scale is the digit count right of the decimal point.
// Precision is informational and never enforced, wider values are accepted.
type Column struct {
	Name      string
	Type      PhysicalType
	Logical   LogicalType
	Nullable  bool
	Precision int
	Scale     int
}

// Schema is the ordered column list of one output file. Column order fixes
// serialization order and must not change once rows are appended.
type Schema struct {
	Cols []Column
}

func (s Schema) NumCols() int { return len(s.Cols) }

// Validate checks the structural schema invariants: every column named,
// names unique. Type values are deliberately not checked here, unknown
// physical types degrade to the permissive string encoding at write time.
func (s Schema) Validate() error {
	if len(s.Cols) == 0 {
		return fmt.Errorf("%w: no columns", ErrBadSchema)
	}
	seen := make(map[string]struct{}, len(s.Cols))
	for i, c := range s.Cols {
		if c.Name == "" {
			return fmt.Errorf("%w: column %d has no name", ErrBadSchema, i)
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrBadSchema, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}
