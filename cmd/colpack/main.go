package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"

	"github.com/colpack/colpack"
	"github.com/colpack/colpack/internal"
	"github.com/colpack/colpack/internal/backend"
	"github.com/colpack/colpack/internal/colfile"
	"github.com/colpack/colpack/internal/sink"
	"github.com/colpack/colpack/internal/source"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "export":
		runExport(os.Args[2:])
	case "inspect":
		runInspect(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  colpack export -schema <table.json> -data <rows.csv> [-config <colpack.yaml>] [-table <name>]
  colpack inspect [-rows <n>] <file.pqt[.gz|.zst|.lz4]>`)
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to colpack.yaml (optional)")
	schemaPath := fs.String("schema", "", "Path to the JSON schema descriptor")
	dataPath := fs.String("data", "", "Path to the CSV rows file")
	tableName := fs.String("table", "", "Table name (defaults to the descriptor's name)")
	_ = fs.Parse(args)

	if *schemaPath == "" || *dataPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	cfg := internal.DefaultConfig()
	if *configPath != "" {
		loaded, err := internal.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	desc, err := source.LoadTableDesc(*schemaPath)
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}
	name := desc.Name
	if *tableName != "" {
		name = *tableName
	}
	if name == "" {
		log.Fatalf("Table has no name; pass -table")
	}

	schema, err := desc.Schema()
	if err != nil {
		log.Fatalf("Invalid schema: %v", err)
	}

	rows, err := source.OpenCSV(*dataPath, schema)
	if err != nil {
		log.Fatalf("Failed to open data: %v", err)
	}

	compression, err := sink.ParseCompression(cfg.Output.Compression)
	if err != nil {
		log.Fatalf("Bad config: %v", err)
	}

	var be backend.Backend
	kind, err := backend.ParseKind(cfg.Writer.Backend)
	if err != nil {
		log.Fatalf("Bad config: %v", err)
	}
	switch kind {
	case backend.External:
		be, err = backend.NewExternalBackend(cfg.Writer.ExternalCommand)
		if err != nil {
			log.Fatalf("Bad config: %v", err)
		}
	default:
		be = backend.NativeBackend{}
	}

	out, err := sink.NewFileSink(cfg.Output.Dir)
	if err != nil {
		log.Fatalf("Failed to prepare output: %v", err)
	}

	exporter := colpack.NewExporter(be, compression, out, nil)
	res, err := exporter.Export(colpack.Table{Name: name, Schema: schema, Rows: rows})
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fmt.Printf("wrote %s (%d rows, %d bytes)\n",
		res.File, res.RowCount, res.ByteSize)
}

func runInspect(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	maxRows := fs.Int("rows", 10, "Maximum rows to dump (0 = all)")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read file: %v", err)
	}
	if codec := sink.ForExt(path); codec != sink.None {
		data, err = sink.Decompress(codec, data)
		if err != nil {
			log.Fatalf("Failed to decompress: %v", err)
		}
	}

	f, err := colfile.Read(data)
	if err != nil {
		log.Fatalf("Failed to decode: %v", err)
	}

	head := color.New(color.FgGreen, color.Bold)
	head.Printf("%s: %d columns, %d rows\n", path, f.Schema.NumCols(), len(f.Rows))

	for _, c := range f.Schema.Cols {
		line := fmt.Sprintf("  %-20s %s", c.Name, c.Type)
		if c.Logical != colfile.LogicalNone {
			line += fmt.Sprintf(" (%s", c.Logical)
			if c.Logical == colfile.Decimal {
				line += fmt.Sprintf(" %d.%d", c.Precision, c.Scale)
			}
			line += ")"
		}
		if c.Nullable {
			line += " nullable"
		}
		fmt.Println(line)
	}

	dumper := spew.ConfigState{Indent: "  ", SortKeys: true, DisableMethods: true}
	shown := 0
	for i, row := range f.Rows {
		if *maxRows > 0 && shown >= *maxRows {
			color.Yellow("  ... %d more rows", len(f.Rows)-i)
			break
		}
		fmt.Printf("row %d: %s", i, dumper.Sdump(row))
		shown++
	}
}
