package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/revlens-cli/internal/review"
)

// Options tunes how tabular input is read.
type Options struct {
	// Delimiter for CSV. If 0, chosen from the file extension.
	Delimiter rune
	// SheetName selects an XLSX sheet by name.
	SheetName string
	// SheetIndex is the 1-based XLSX sheet used when SheetName is empty.
	SheetIndex int
}

// Reader turns raw file content into header-keyed records.
type Reader interface {
	CanRead(filename string) bool
	Read(filename string, content []byte, opt Options) ([]review.RawRecord, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ReadFile loads path with the first reader that accepts its name. Any
// failure is returned as an *IngestError.
func ReadFile(path string, opt Options) ([]review.RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ingestErr(path, "read file", err)
	}
	for _, r := range registry {
		if r.CanRead(path) {
			recs, err := r.Read(path, data, opt)
			if err != nil {
				return nil, ingestErr(path, "parse", err)
			}
			return recs, nil
		}
	}
	return nil, ingestErr(path, "detect format", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path)))
}

// ParseDelimiter maps a flag value to a delimiter rune. Empty means auto.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	case "|", "pipe":
		return '|', nil
	}
	return 0, fmt.Errorf("unsupported delimiter: %s (use ',' | ';' | 'tab' | 'pipe')", s)
}

// toRecords keys each row by header. Short rows are padded with empty
// values; cells beyond the header are dropped. Rows with no content are
// skipped.
func toRecords(header []string, rows [][]string) []review.RawRecord {
	cols := cleanHeader(header)
	out := make([]review.RawRecord, 0, len(rows))
	for _, row := range rows {
		if blank(row) {
			continue
		}
		rec := make(review.RawRecord, len(cols))
		for i, name := range cols {
			if name == "" {
				continue
			}
			v := ""
			if i < len(row) {
				v = row[i]
			}
			if _, dup := rec[name]; dup {
				continue
			}
			rec[name] = v
		}
		out = append(out, rec)
	}
	return out
}

func cleanHeader(header []string) []string {
	cols := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		cols[i] = strings.TrimSpace(h)
	}
	return cols
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
	Register(jsonReader{})
}
