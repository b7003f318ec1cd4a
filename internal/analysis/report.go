package analysis

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/KaramelBytes/revlens-cli/internal/utils"
)

// Report pairs a pass result with the inputs that produced it.
type Report struct {
	Name   string     `json:"name"`
	Total  int        `json:"total"`
	Query  Query      `json:"query"`
	Result Result     `json:"result"`
	Policy WordPolicy `json:"word_policy"`
	// MaxReviews limits the review table; 0 means all.
	MaxReviews int `json:"-"`
	// TextWidth truncates review text in the table; 0 means 160.
	TextWidth int `json:"-"`
}

// AnonymousReviewer is shown for reviews without a reviewer name.
const AnonymousReviewer = "Anonymous"

// Markdown renders a compact summary in bracketed sections.
func (r *Report) Markdown() string {
	var b strings.Builder
	st := r.Result.Stats
	b.WriteString("[REVIEW SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.Total > 0 && r.Total != st.Count {
		b.WriteString(fmt.Sprintf("Reviews: %d of %d\n", st.Count, r.Total))
	} else {
		b.WriteString(fmt.Sprintf("Reviews: %d\n", st.Count))
	}
	b.WriteString(fmt.Sprintf("Average rating: %.1f\n", st.AverageRating))
	b.WriteString(fmt.Sprintf("5-star reviews: %d (%d%%)\n", st.Stars(5), st.Share(5)))
	b.WriteString(fmt.Sprintf("Critical reviews: %d (%d%%)\n", st.Critical(), st.CriticalShare()))
	b.WriteString(fmt.Sprintf("Filters: %s\n", describeCriteria(r.Query.Criteria)))
	b.WriteString(fmt.Sprintf("Sort: %s\n\n", r.Query.Sort))

	b.WriteString("[RATING DISTRIBUTION]\n")
	for star := 5; star >= 1; star-- {
		label := "Stars"
		if star == 1 {
			label = "Star"
		}
		b.WriteString(fmt.Sprintf("- %d %s: %d (%d%%)\n", star, label, st.Stars(star), st.Share(star)))
	}

	b.WriteString("\n[WORD FREQUENCY]\n")
	if len(r.Result.Words) == 0 {
		b.WriteString("(no words)\n")
	}
	for i, w := range r.Result.Words {
		b.WriteString(fmt.Sprintf("%d. %s (%d)\n", i+1, w.Word, w.Count))
	}
	if !r.Query.Criteria.AllCategories() && r.Policy == PolicyCarryOver {
		b.WriteString("Note: narrowed from the previous word list to the category keywords.\n")
	}

	rows := r.Result.Reviews
	if len(rows) == 0 {
		return b.String()
	}
	b.WriteString("\n[REVIEWS]\n\n")
	b.WriteString("| Date | Rating | Reviewer | Review |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	limit := len(rows)
	if r.MaxReviews > 0 && r.MaxReviews < limit {
		limit = r.MaxReviews
	}
	width := r.TextWidth
	if width <= 0 {
		width = 160
	}
	for _, rv := range rows[:limit] {
		who := rv.Reviewer
		if strings.TrimSpace(who) == "" {
			who = AnonymousReviewer
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			rv.Date, strings.Repeat("★", rv.RatingValue), cell(who), cell(utils.Truncate(rv.Text, width))))
	}
	if limit < len(rows) {
		b.WriteString(fmt.Sprintf("\n(%d more reviews not shown)\n", len(rows)-limit))
	}
	return b.String()
}

// HTML renders the Markdown report as an HTML fragment.
func (r *Report) HTML() (string, error) {
	var buf bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(r.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return "<!doctype html><html><head><meta charset='utf-8'><title>Review Analysis</title></head><body>\n" +
		buf.String() + "</body></html>\n", nil
}

func describeCriteria(c Criteria) string {
	var parts []string
	if c.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", c.Search))
	}
	if c.Dates.Start != "" {
		parts = append(parts, "from="+c.Dates.Start)
	}
	if c.Dates.End != "" {
		parts = append(parts, "to="+c.Dates.End)
	}
	if c.Rating != RatingAll {
		parts = append(parts, "rating="+c.Rating.String())
	}
	if !c.AllCategories() {
		parts = append(parts, "category="+c.Category)
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, ", ")
}

func cell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(strings.ReplaceAll(s, "\r", " "), "\n", " "), "|", "/")
}
