package storage

import (
	"context"
	"io"

	"github.com/KaramelBytes/revlens-cli/internal/analysis"
	"github.com/KaramelBytes/revlens-cli/internal/review"
	"github.com/KaramelBytes/revlens-cli/internal/utils"
)

// JSONSink writes the filtered reviews as an array of flat objects keyed by
// source column. The output can be read back as a dataset.
type JSONSink struct {
	Path   string
	Stdout io.Writer
}

func (s *JSONSink) Write(_ context.Context, r *analysis.Report) error {
	recs := make([]review.RawRecord, len(r.Result.Reviews))
	for i, rv := range r.Result.Reviews {
		recs[i] = rv.Record()
	}
	data, err := utils.PrettyJSON(recs)
	if err != nil {
		return err
	}
	return writeOutput(s.Path, s.Stdout, append(data, '\n'))
}
