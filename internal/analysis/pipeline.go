package analysis

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/revlens-cli/internal/review"
)

// WordPolicy decides how the word list is produced while a category filter
// is active.
type WordPolicy string

const (
	// PolicyCarryOver narrows the previous pass's word list to the category
	// keywords instead of counting the filtered reviews. The result depends
	// on pass history, not only on the current criteria.
	PolicyCarryOver WordPolicy = "carry-over"
	// PolicyRecompute always counts words over the filtered reviews.
	PolicyRecompute WordPolicy = "recompute"
)

// ParseWordPolicy accepts the two policy names; empty means carry-over.
func ParseWordPolicy(s string) (WordPolicy, error) {
	switch WordPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyCarryOver:
		return PolicyCarryOver, nil
	case PolicyRecompute:
		return PolicyRecompute, nil
	}
	return "", fmt.Errorf("invalid word policy %q (use %s or %s)", s, PolicyCarryOver, PolicyRecompute)
}

// Query is everything a user can change between passes.
type Query struct {
	Criteria Criteria `json:"criteria"`
	Sort     SortSpec `json:"sort"`
}

// DefaultQuery filters nothing and sorts newest first.
func DefaultQuery() Query {
	return Query{Criteria: DefaultCriteria(), Sort: DefaultSort()}
}

// Result is the output of one pass.
type Result struct {
	Reviews []*review.Review `json:"reviews"`
	Stats   Stats            `json:"stats"`
	// Words is the current top-word list. Callers hand it back as the
	// previous list on the next pass.
	Words []WordEntry `json:"words"`
}

// Pipeline runs filter, sort, stats and word analysis over a dataset.
type Pipeline struct {
	Categories Categories
	Words      *WordAnalyzer
	Policy     WordPolicy
}

// NewPipeline wires a pipeline. A nil or empty category table falls back to
// DefaultCategories.
func NewPipeline(cats Categories, words WordOptions, policy WordPolicy) *Pipeline {
	if len(cats) == 0 {
		cats = DefaultCategories()
	}
	if policy == "" {
		policy = PolicyCarryOver
	}
	return &Pipeline{Categories: cats.Normalized(), Words: NewWordAnalyzer(words), Policy: policy}
}

// Baseline is the word list computed when a dataset is first loaded: a full
// count over every review.
func (p *Pipeline) Baseline(all []*review.Review) []WordEntry {
	return p.Words.Analyze(all)
}

// Run executes one pass over the full normalized dataset. prev is the word
// list returned by the previous pass (or Baseline after a load); it is only
// read under PolicyCarryOver with a category selected.
func (p *Pipeline) Run(all []*review.Review, q Query, prev []WordEntry) Result {
	filtered := Filter(all, q.Criteria, p.Categories)
	sorted := SortBy(filtered, q.Sort)
	res := Result{Reviews: sorted, Stats: Aggregate(sorted)}
	switch {
	case q.Criteria.AllCategories(), p.Policy == PolicyRecompute:
		res.Words = p.Words.Analyze(sorted)
	default:
		cat, ok := p.Categories.Lookup(q.Criteria.Category)
		if !ok {
			res.Words = []WordEntry{}
			break
		}
		res.Words = p.Words.Narrow(prev, cat)
	}
	return res
}
