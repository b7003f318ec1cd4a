package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/revlens-cli/internal/review"
)

// RatingFilter selects reviews with one exact star value. RatingAll (0)
// disables the filter.
type RatingFilter int

const RatingAll RatingFilter = 0

// ParseRatingFilter accepts "All" (or empty) and "1".."5".
func ParseRatingFilter(s string) (RatingFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return RatingAll, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 5 {
		return RatingAll, fmt.Errorf("invalid rating filter %q (use All or 1-5)", s)
	}
	return RatingFilter(n), nil
}

func (f RatingFilter) String() string {
	if f == RatingAll {
		return "All"
	}
	return strconv.Itoa(int(f))
}

// DateRange holds inclusive YYYY-MM-DD bounds. Empty bounds are open.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// IsZero reports whether neither bound is set.
func (d DateRange) IsZero() bool { return d.Start == "" && d.End == "" }

// ParseDateBound normalizes a user-supplied bound to YYYY-MM-DD.
func ParseDateBound(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	t, ok := review.ParseDate(s)
	if !ok {
		return "", fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t.Format(review.DayLayout), nil
}

// LastDays returns the range from n days before now through today, in UTC.
func LastDays(now time.Time, n int) DateRange {
	now = now.UTC()
	return DateRange{
		Start: now.AddDate(0, 0, -n).Format(review.DayLayout),
		End:   now.Format(review.DayLayout),
	}
}

// ParseRangePreset understands "all" and a day count such as "30".
func ParseRangePreset(now time.Time, s string) (DateRange, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "all" {
		return DateRange{}, nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
	if err != nil || n <= 0 {
		return DateRange{}, fmt.Errorf("invalid range %q (use all, 30, 90, 365)", s)
	}
	return LastDays(now, n), nil
}

// Criteria is the full set of filters applied in one pass.
type Criteria struct {
	Search   string       `json:"search,omitempty"`
	Dates    DateRange    `json:"dates"`
	Rating   RatingFilter `json:"rating"`
	Category string       `json:"category"`
}

// DefaultCriteria filters nothing.
func DefaultCriteria() Criteria {
	return Criteria{Rating: RatingAll, Category: CategoryAll}
}

// AllCategories reports whether the category filter is off.
func (c Criteria) AllCategories() bool {
	return c.Category == "" || c.Category == CategoryAll
}
