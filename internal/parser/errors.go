package parser

import (
	"errors"
	"fmt"
)

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported input format")

// ErrNoHeader indicates the input has no header row.
var ErrNoHeader = errors.New("missing header row")

// IngestError reports why a dataset could not be loaded. No reviews are
// produced when it is returned.
type IngestError struct {
	Path string
	Op   string
	Err  error
}

func (e *IngestError) Error() string {
	if e == nil {
		return "ingest failed"
	}
	if e.Path != "" {
		return fmt.Sprintf("ingest %s: %s: %v", e.Path, e.Op, e.Err)
	}
	return fmt.Sprintf("ingest: %s: %v", e.Op, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

func ingestErr(path, op string, err error) error {
	return &IngestError{Path: path, Op: op, Err: err}
}
