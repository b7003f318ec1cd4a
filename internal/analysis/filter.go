package analysis

import (
	"strings"

	"github.com/KaramelBytes/revlens-cli/internal/review"
)

// predicate reports whether a review survives one filter step.
type predicate func(r *review.Review) bool

// Filter returns the reviews matching every criterion. Steps run in a fixed
// order (search, date start, date end, rating, category) and each narrows the
// previous result. The input slice is not modified.
//
// A category missing from cats matches nothing.
func Filter(reviews []*review.Review, c Criteria, cats Categories) []*review.Review {
	out := make([]*review.Review, len(reviews))
	copy(out, reviews)
	for _, p := range predicates(c, cats) {
		out = keep(out, p)
	}
	return out
}

func predicates(c Criteria, cats Categories) []predicate {
	var ps []predicate
	if c.Search != "" {
		term := strings.ToLower(c.Search)
		ps = append(ps, func(r *review.Review) bool {
			return (r.Text != "" && strings.Contains(strings.ToLower(r.Text), term)) ||
				(r.Reviewer != "" && strings.Contains(strings.ToLower(r.Reviewer), term))
		})
	}
	if start := c.Dates.Start; start != "" {
		ps = append(ps, func(r *review.Review) bool { return r.Date >= start })
	}
	if end := c.Dates.End; end != "" {
		ps = append(ps, func(r *review.Review) bool { return r.Date <= end })
	}
	if c.Rating != RatingAll {
		want := int(c.Rating)
		ps = append(ps, func(r *review.Review) bool { return r.RatingValue == want })
	}
	if !c.AllCategories() {
		cat, ok := cats.Lookup(c.Category)
		ps = append(ps, func(r *review.Review) bool {
			if !ok || r.Text == "" {
				return false
			}
			return cat.Matches(strings.ToLower(r.Text))
		})
	}
	return ps
}

func keep(in []*review.Review, p predicate) []*review.Review {
	out := in[:0]
	for _, r := range in {
		if p(r) {
			out = append(out, r)
		}
	}
	return out
}
