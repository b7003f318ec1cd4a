package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/revlens-cli/internal/review"
)

// SortField names the column a result is ordered by.
type SortField string

const (
	SortDate     SortField = "Date"
	SortRating   SortField = "Rating"
	SortReviewer SortField = "Reviewer"
)

// Direction is ascending or descending.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseSortField accepts a field name case-insensitively.
func ParseSortField(s string) (SortField, error) {
	for _, f := range []SortField{SortDate, SortRating, SortReviewer} {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid sort field %q (use Date, Rating or Reviewer)", s)
}

// ParseDirection accepts asc/desc and their long forms.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	}
	return "", fmt.Errorf("invalid sort direction %q (use asc or desc)", s)
}

// SortSpec selects a field and direction.
type SortSpec struct {
	Field     SortField `json:"field"`
	Direction Direction `json:"direction"`
}

// DefaultSort is the baseline order: newest first.
func DefaultSort() SortSpec { return SortSpec{Field: SortDate, Direction: Desc} }

// Toggle implements header-click behaviour: choosing the active field while
// descending flips to ascending, anything else selects field descending.
func (s SortSpec) Toggle(field SortField) SortSpec {
	if s.Field == field && s.Direction == Desc {
		return SortSpec{Field: field, Direction: Asc}
	}
	return SortSpec{Field: field, Direction: Desc}
}

func (s SortSpec) String() string { return fmt.Sprintf("%s %s", s.Field, s.Direction) }

// compare returns <0, 0 or >0 comparing a and b ascending on the field.
func (s SortSpec) compare(a, b *review.Review) int {
	switch s.Field {
	case SortRating:
		return a.RatingValue - b.RatingValue
	case SortReviewer:
		return strings.Compare(strings.ToUpper(a.Reviewer), strings.ToUpper(b.Reviewer))
	default:
		return a.Day().Compare(b.Day())
	}
}

// SortBy returns a new slice ordered by spec. The sort is stable, so ties
// keep their input order.
func SortBy(reviews []*review.Review, spec SortSpec) []*review.Review {
	out := make([]*review.Review, len(reviews))
	copy(out, reviews)
	sign := 1
	if spec.Direction == Desc {
		sign = -1
	}
	sort.SliceStable(out, func(i, j int) bool {
		return sign*spec.compare(out[i], out[j]) < 0
	})
	return out
}
