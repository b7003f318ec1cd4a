package analysis

import (
	"testing"

	"github.com/KaramelBytes/revlens-cli/internal/review"
)

func scenarioReviews(t *testing.T) []*review.Review {
	t.Helper()
	return review.Normalize([]review.RawRecord{
		{"Rating": "FIVE", "Date": "2024-01-01", "Reviewer": "Ann", "Review Text": "Great service and attic work"},
		{"Rating": "ONE", "Date": "2024-06-01", "Reviewer": "Bo", "Review Text": "Poor"},
	})
}

func sampleReviews(t *testing.T) []*review.Review {
	t.Helper()
	return review.Normalize([]review.RawRecord{
		{"Rating": "FIVE", "Date": "2024-03-10", "Reviewer": "carla", "Review Text": "Friendly crew, excellent insulation install. Attic is cooler!"},
		{"Rating": "FOUR", "Date": "2024-02-01", "Reviewer": "Dan", "Review Text": "Good quality foam; the energy bill dropped."},
		{"Rating": "TWO", "Date": "2023-12-24", "Reviewer": "", "Review Text": "Scheduling was slow but the attic work was thorough."},
		{"Rating": "", "Date": "garbage", "Reviewer": "Eve", "Review Text": ""},
		{"Rating": "THREE", "Date": "2024-03-10", "Reviewer": "bob", "Review Text": "Service was okay. Temperature upstairs still uneven."},
	})
}

func rows(rs []*review.Review) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.Row
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
