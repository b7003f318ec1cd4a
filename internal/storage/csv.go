package storage

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/revlens-cli/internal/analysis"
	"github.com/KaramelBytes/revlens-cli/internal/review"
)

// Extra columns appended by CSVSink.
const (
	ColRatingValue    = "Rating Value"
	ColNormalizedDate = "Normalized Date"
)

// CSVSink writes the filtered reviews with their source columns plus the
// normalized rating and date.
type CSVSink struct {
	Path   string
	Stdout io.Writer
}

func (s *CSVSink) Write(_ context.Context, r *analysis.Report) error {
	cols := review.Columns(r.Result.Reviews)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(append(append([]string{}, cols...), ColRatingValue, ColNormalizedDate)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, rv := range r.Result.Reviews {
		rec := rv.Record()
		row := make([]string, 0, len(cols)+2)
		for _, c := range cols {
			row = append(row, rec[c])
		}
		row = append(row, strconv.Itoa(rv.RatingValue), rv.Date)
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", rv.Row, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return writeOutput(s.Path, s.Stdout, buf.Bytes())
}
