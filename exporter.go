// Package colpack exports tabular rows from any relational source into
// self-describing binary columnar files. The heavy lifting lives in
// internal/colfile (the format), internal/backend (native vs external
// writers) and internal/sink (compression and persistence); this package
// wires them into an export pipeline.
package colpack

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/colpack/colpack/internal/backend"
	"github.com/colpack/colpack/internal/colfile"
	"github.com/colpack/colpack/internal/sink"
)

// SchemaSource supplies the ordered column schema for one table. How the
// schema was derived (database catalog, descriptor file, test fixture) is
// the source's business.
type SchemaSource interface {
	Schema() (colfile.Schema, error)
}

// RowSource supplies a finite sequence of row mappings. Next returns io.EOF
// after the last row.
type RowSource interface {
	Next() (map[string]any, error)
	Close() error
}

// Table is one unit of export: a name, a schema, and its rows.
type Table struct {
	Name   string
	Schema colfile.Schema
	Rows   RowSource
}

// TableFromSources assembles a Table from the collaborator interfaces.
func TableFromSources(name string, ss SchemaSource, rs RowSource) (Table, error) {
	schema, err := ss.Schema()
	if err != nil {
		return Table{}, err
	}
	return Table{Name: name, Schema: schema, Rows: rs}, nil
}

// ExportResult describes one produced file.
type ExportResult struct {
	Table    string
	File     string
	RowCount int
	ByteSize int
}

// Exporter drives source -> backend -> compression -> sink for whole
// tables. Each Export call owns its writer exclusively; an Exporter may be
// shared across goroutines because it holds no per-export state.
type Exporter struct {
	backend     backend.Backend
	compression sink.Compression
	sink        sink.Sink
	log         *slog.Logger
}

// NewExporter builds an exporter. A nil logger falls back to slog.Default.
func NewExporter(b backend.Backend, c sink.Compression, s sink.Sink, log *slog.Logger) *Exporter {
	if log == nil {
		log = slog.Default()
	}
	return &Exporter{backend: b, compression: c, sink: s, log: log}
}

// Export drains the table's rows, writes the columnar file, compresses it
// and hands it to the sink. Any failure aborts this export whole; no
// partial file reaches the sink.
func (e *Exporter) Export(t Table) (*ExportResult, error) {
	job := uuid.NewString()
	e.log.Info("export start", "job", job, "table", t.Name)

	rows, err := drain(t.Rows)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", t.Name, err)
	}

	data, ext, err := e.backend.WriteTable(t.Name, t.Schema, rows)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", t.Name, err)
	}

	packed, err := sink.Compress(e.compression, data)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", t.Name, err)
	}

	name := t.Name + ext + e.compression.Ext()
	if err := e.sink.Put(name, packed); err != nil {
		return nil, fmt.Errorf("table %s: %w", t.Name, err)
	}

	e.log.Info("export done",
		"job", job, "table", t.Name, "file", name,
		"rows", len(rows), "bytes", len(packed))

	return &ExportResult{
		Table:    t.Name,
		File:     name,
		RowCount: len(rows),
		ByteSize: len(packed),
	}, nil
}

// ExportAll exports tables concurrently, one writer per table. The first
// failure cancels nothing already written but fails the call; callers must
// treat the whole batch as suspect.
func (e *Exporter) ExportAll(tables []Table) ([]*ExportResult, error) {
	results := make([]*ExportResult, len(tables))

	var g errgroup.Group
	for i, t := range tables {
		i, t := i, t
		g.Go(func() error {
			r, err := e.Export(t)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// drain reads the source to exhaustion and closes it.
func drain(rs RowSource) ([]map[string]any, error) {
	defer rs.Close()

	var rows []map[string]any
	for {
		row, err := rs.Next()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}
