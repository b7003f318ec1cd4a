package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/revlens-cli/internal/analysis"
	"github.com/KaramelBytes/revlens-cli/internal/parser"
)

// criteriaFlags are the filter and sort flags shared by analyze, export and
// session apply. Only flags set on the command line change the query.
type criteriaFlags struct {
	search   string
	from     string
	to       string
	days     string
	rating   string
	category string
	sortBy   string
	sortDir  string
	policy   string
	stem     bool
}

func (f *criteriaFlags) register(c *cobra.Command) {
	fl := c.Flags()
	fl.StringVar(&f.search, "search", "", "case-insensitive text or reviewer search")
	fl.StringVar(&f.from, "from", "", "earliest review date, inclusive (YYYY-MM-DD)")
	fl.StringVar(&f.to, "to", "", "latest review date, inclusive (YYYY-MM-DD)")
	fl.StringVar(&f.days, "range", "", "relative date range: 30, 90, 365 or all")
	fl.StringVar(&f.rating, "rating", "", "exact star rating 1-5, or All")
	fl.StringVar(&f.category, "category", "", "keyword category, or All")
	fl.StringVar(&f.sortBy, "sort", "", "sort field: Date, Rating or Reviewer")
	fl.StringVar(&f.sortDir, "dir", "", "sort direction: asc or desc")
	fl.StringVar(&f.policy, "word-policy", "", "word list under a category filter: carry-over or recompute (overrides config)")
	fl.BoolVar(&f.stem, "stem", false, "count English word stems (overrides config)")
	c.MarkFlagsMutuallyExclusive("range", "from")
	c.MarkFlagsMutuallyExclusive("range", "to")
}

// apply merges the changed flags into q.
func (f *criteriaFlags) apply(c *cobra.Command, q analysis.Query, cats analysis.Categories, now time.Time) (analysis.Query, error) {
	fl := c.Flags()
	if fl.Changed("search") {
		q.Criteria.Search = f.search
	}
	if fl.Changed("range") {
		r, err := analysis.ParseRangePreset(now, f.days)
		if err != nil {
			return q, err
		}
		q.Criteria.Dates = r
	}
	if fl.Changed("from") {
		d, err := analysis.ParseDateBound(f.from)
		if err != nil {
			return q, fmt.Errorf("--from: %w", err)
		}
		q.Criteria.Dates.Start = d
	}
	if fl.Changed("to") {
		d, err := analysis.ParseDateBound(f.to)
		if err != nil {
			return q, fmt.Errorf("--to: %w", err)
		}
		q.Criteria.Dates.End = d
	}
	if fl.Changed("rating") {
		r, err := analysis.ParseRatingFilter(f.rating)
		if err != nil {
			return q, err
		}
		q.Criteria.Rating = r
	}
	if fl.Changed("category") {
		name, err := cats.Resolve(f.category)
		if err != nil {
			return q, err
		}
		q.Criteria.Category = name
	}
	if fl.Changed("sort") {
		s, err := analysis.ParseSortField(f.sortBy)
		if err != nil {
			return q, err
		}
		q.Sort.Field = s
	}
	if fl.Changed("dir") {
		d, err := analysis.ParseDirection(f.sortDir)
		if err != nil {
			return q, err
		}
		q.Sort.Direction = d
	}
	return q, nil
}

// pipeline builds the analysis pipeline from config plus overrides.
func (f *criteriaFlags) pipeline(c *cobra.Command) (*analysis.Pipeline, error) {
	opt := cfg.WordOptions()
	policy := cfg.Policy()
	if c.Flags().Changed("word-policy") {
		p, err := analysis.ParseWordPolicy(f.policy)
		if err != nil {
			return nil, err
		}
		policy = p
	}
	if c.Flags().Changed("stem") {
		opt.Stem = f.stem
	}
	return analysis.NewPipeline(cfg.CategoryTable(), opt, policy), nil
}

// inputFlags select how a dataset file is read.
type inputFlags struct {
	delimiter  string
	sheetName  string
	sheetIndex int
}

func (f *inputFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',', ';', 'tab' or 'pipe' (default from config or extension)")
	c.Flags().StringVar(&f.sheetName, "sheet-name", "", "XLSX sheet name")
	c.Flags().IntVar(&f.sheetIndex, "sheet-index", 0, "XLSX 1-based sheet index")
}

func (f *inputFlags) delimiterName() string {
	if f.delimiter != "" {
		return f.delimiter
	}
	return cfg.Delimiter
}

func (f *inputFlags) options() (parser.Options, error) {
	d, err := parser.ParseDelimiter(f.delimiterName())
	if err != nil {
		return parser.Options{}, fmt.Errorf("--delimiter: %w", err)
	}
	return parser.Options{Delimiter: d, SheetName: f.sheetName, SheetIndex: f.sheetIndex}, nil
}

// defaultQuery is the query a fresh analysis starts from.
func defaultQuery() analysis.Query {
	q := analysis.DefaultQuery()
	if s, err := cfg.DefaultSort(); err == nil {
		q.Sort = s
	}
	return q
}
