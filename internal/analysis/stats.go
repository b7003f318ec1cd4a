package analysis

import (
	"math"

	"github.com/KaramelBytes/revlens-cli/internal/review"
)

// Stats summarizes ratings over a result set.
type Stats struct {
	Count int `json:"count"`
	// AverageRating is rounded half away from zero to one decimal place.
	AverageRating float64 `json:"average_rating"`
	// CountsByStar is indexed by star value; index 0 is unused.
	CountsByStar [6]int `json:"counts_by_star"`
}

// Aggregate computes Stats from scratch. Empty input yields a zero average.
func Aggregate(reviews []*review.Review) Stats {
	var s Stats
	sum := 0
	for _, r := range reviews {
		s.Count++
		sum += r.RatingValue
		if r.RatingValue >= 1 && r.RatingValue <= 5 {
			s.CountsByStar[r.RatingValue]++
		}
	}
	if s.Count == 0 {
		return s
	}
	s.AverageRating = round1(float64(sum) / float64(s.Count))
	return s
}

// Stars returns the number of reviews with the given star value.
func (s Stats) Stars(star int) int {
	if star < 1 || star > 5 {
		return 0
	}
	return s.CountsByStar[star]
}

// Share returns the whole-number percentage of reviews with the star value.
func (s Stats) Share(star int) int {
	return percent(s.Stars(star), s.Count)
}

// Critical counts one- and two-star reviews.
func (s Stats) Critical() int { return s.CountsByStar[1] + s.CountsByStar[2] }

// CriticalShare is Critical as a whole-number percentage.
func (s Stats) CriticalShare() int { return percent(s.Critical(), s.Count) }

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) * 100 / float64(total)))
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
