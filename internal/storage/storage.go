// Package storage writes analysis results to files and SQL databases.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KaramelBytes/revlens-cli/internal/analysis"
	"github.com/KaramelBytes/revlens-cli/internal/utils"
)

// Sink receives one analysis report.
type Sink interface {
	Write(ctx context.Context, r *analysis.Report) error
}

// Kinds lists the accepted --to values.
var Kinds = []string{"json", "csv", "sqlite", "postgres"}

// Target describes where an export goes.
type Target struct {
	Kind string
	// Path is the output file for json/csv; "" or "-" means Stdout.
	Path string
	// DSN is the data source for SQL kinds. For sqlite it defaults to Path.
	DSN    string
	Stdout io.Writer
}

// Open returns the sink for t.Kind.
func Open(t Target) (Sink, error) {
	switch strings.ToLower(t.Kind) {
	case "json":
		return &JSONSink{Path: t.Path, Stdout: t.Stdout}, nil
	case "csv":
		return &CSVSink{Path: t.Path, Stdout: t.Stdout}, nil
	case "sqlite", "sqlite3":
		dsn := t.DSN
		if dsn == "" {
			dsn = t.Path
		}
		if dsn == "" || dsn == "-" {
			return nil, fmt.Errorf("sqlite export needs -o <file> or --dsn")
		}
		return &SQLSink{Driver: "sqlite", DSN: dsn}, nil
	case "postgres", "postgresql":
		if t.DSN == "" {
			return nil, fmt.Errorf("postgres export needs --dsn")
		}
		return &SQLSink{Driver: "postgres", DSN: t.DSN}, nil
	}
	return nil, fmt.Errorf("unknown export kind %q (use %s)", t.Kind, strings.Join(Kinds, ", "))
}

// writeOutput sends data to path atomically, or to stdout when path is "" or "-".
func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "" || path == "-" {
		if stdout == nil {
			stdout = os.Stdout
		}
		_, err := stdout.Write(data)
		return err
	}
	p, err := utils.ExpandHome(path)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(p, data)
}
