package analysis

import (
	"strings"
	"testing"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	all := sampleReviews(t)
	p := NewPipeline(nil, DefaultWordOptions(), PolicyCarryOver)
	q := DefaultQuery()
	q.Criteria.Rating = 2
	return &Report{Name: "reviews.csv", Total: len(all), Query: q, Result: p.Run(all, q, p.Baseline(all)), Policy: p.Policy}
}

func TestReportMarkdown(t *testing.T) {
	md := sampleReport(t).Markdown()
	for _, want := range []string{
		"[REVIEW SUMMARY]", "File: reviews.csv", "Reviews: 1 of 5", "Average rating: 2.0",
		"Critical reviews: 1 (100%)", "Filters: rating=2", "Sort: Date desc",
		"[RATING DISTRIBUTION]", "- 2 Stars: 1 (100%)", "- 1 Star: 0 (0%)",
		"[WORD FREQUENCY]", "1. scheduling (1)",
		"[REVIEWS]", "| 2023-12-24 | ★★ | Anonymous |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
	if strings.Contains(md, "Note: narrowed") {
		t.Errorf("note should only appear with a category")
	}
}

func TestReportMarkdownLimitAndEmpty(t *testing.T) {
	r := sampleReport(t)
	r.Query.Criteria.Category = "Technical"
	r.Query.Criteria.Rating = RatingAll
	r.Result = NewPipeline(nil, DefaultWordOptions(), PolicyCarryOver).Run(sampleReviews(t), r.Query, nil)
	r.MaxReviews = 1
	md := r.Markdown()
	if !strings.Contains(md, "(2 more reviews not shown)") || !strings.Contains(md, "(no words)") {
		t.Fatalf("markdown:\n%s", md)
	}
	if !strings.Contains(md, "Note: narrowed") {
		t.Fatalf("missing carry-over note")
	}

	r.Result = Result{}
	if md := r.Markdown(); strings.Contains(md, "[REVIEWS]") {
		t.Fatalf("empty result should omit the review table")
	}
}

func TestReportHTML(t *testing.T) {
	html, err := sampleReport(t).HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	for _, want := range []string{"<!doctype html>", "<table>", "<td>Anonymous</td>", "</html>"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
}
