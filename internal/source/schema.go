// Package source provides concrete schema and row collaborators for the
// export pipeline: a JSON table descriptor and a CSV row reader. The core
// writer does not care where schemas or rows come from; these are the stock
// implementations the CLI uses.
package source

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/colpack/colpack/internal/colfile"
)

// ColumnDesc is the JSON wire form of one column. The same descriptor is
// handed to the external converter backend, so field names are part of that
// wire contract.
type ColumnDesc struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Logical   string `json:"logical,omitempty"`
	Nullable  bool   `json:"nullable"`
	Precision int    `json:"precision,omitempty"`
	Scale     int    `json:"scale,omitempty"`
}

// TableDesc is the JSON schema descriptor for one table.
type TableDesc struct {
	Name    string       `json:"name"`
	Columns []ColumnDesc `json:"columns"`
}

// LoadTableDesc reads and parses a descriptor file.
func LoadTableDesc(path string) (*TableDesc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema descriptor: %w", err)
	}
	var d TableDesc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse schema descriptor: %w", err)
	}
	return &d, nil
}

// Schema converts the descriptor to the writer's schema form.
func (d *TableDesc) Schema() (colfile.Schema, error) {
	cols := make([]colfile.Column, 0, len(d.Columns))
	for _, c := range d.Columns {
		ptype, err := colfile.ParsePhysicalType(c.Type)
		if err != nil {
			return colfile.Schema{}, err
		}
		ltype, err := colfile.ParseLogicalType(c.Logical)
		if err != nil {
			return colfile.Schema{}, err
		}
		cols = append(cols, colfile.Column{
			Name:      c.Name,
			Type:      ptype,
			Logical:   ltype,
			Nullable:  c.Nullable,
			Precision: c.Precision,
			Scale:     c.Scale,
		})
	}
	s := colfile.Schema{Cols: cols}
	if err := s.Validate(); err != nil {
		return colfile.Schema{}, err
	}
	return s, nil
}

// DescFromSchema renders a schema back into its JSON descriptor form.
func DescFromSchema(name string, s colfile.Schema) *TableDesc {
	cols := make([]ColumnDesc, 0, len(s.Cols))
	for _, c := range s.Cols {
		cols = append(cols, ColumnDesc{
			Name:      c.Name,
			Type:      c.Type.String(),
			Logical:   c.Logical.String(),
			Nullable:  c.Nullable,
			Precision: c.Precision,
			Scale:     c.Scale,
		})
	}
	return &TableDesc{Name: name, Columns: cols}
}
