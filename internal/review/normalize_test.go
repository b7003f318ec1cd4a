package review

import (
	"testing"
)

func TestNormalize_BaselineOrderAndValues(t *testing.T) {
	recs := []RawRecord{
		{"Rating": "FIVE", "Date": "2024-01-01", "Reviewer": "Ann", "Review Text": "Great service and attic work"},
		{"Rating": "ONE", "Date": "2024-06-01", "Reviewer": "Bo", "Review Text": "Poor"},
	}
	got := Normalize(recs)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Reviewer != "Bo" || got[1].Reviewer != "Ann" {
		t.Fatalf("baseline order = %s, %s; want Bo, Ann", got[0].Reviewer, got[1].Reviewer)
	}
	if got[0].RatingValue != 1 || got[1].RatingValue != 5 {
		t.Fatalf("ratings = %d, %d", got[0].RatingValue, got[1].RatingValue)
	}
	if got[0].Date != "2024-06-01" || got[0].Row != 2 {
		t.Fatalf("unexpected first review: %+v", got[0])
	}
}

func TestNormalize_IsTotal(t *testing.T) {
	recs := []RawRecord{
		{},
		{"Rating": "five", "Date": "not a date"},
		{"Rating": "SIX", "Date": ""},
		{"Rating": " TWO ", "Date": "2023-02-30"},
		{"Rating": "THREE", "Date": "03/04/2024", "Owner Response": "thanks"},
	}
	got := Normalize(recs)
	if len(got) != len(recs) {
		t.Fatalf("len = %d, want %d", len(got), len(recs))
	}
	for _, r := range got {
		if r.RatingValue < 1 || r.RatingValue > 5 {
			t.Errorf("row %d: rating %d out of range", r.Row, r.RatingValue)
		}
		if r.Date == "" {
			t.Errorf("row %d: empty date", r.Row)
		}
	}
	byRow := map[int]*Review{}
	for _, r := range got {
		byRow[r.Row] = r
	}
	if byRow[1].RatingValue != DefaultRating || byRow[2].RatingValue != DefaultRating || byRow[3].RatingValue != DefaultRating {
		t.Fatalf("unknown labels must default to %d", DefaultRating)
	}
	if byRow[4].RatingValue != DefaultRating || byRow[4].RatingLabel.Known() {
		t.Fatalf("padded label %q = %d, want %d", byRow[4].RatingLabel, byRow[4].RatingValue, DefaultRating)
	}
	if byRow[2].Date != InvalidDate || byRow[4].Date != InvalidDate {
		t.Fatalf("invalid dates = %q, %q", byRow[2].Date, byRow[4].Date)
	}
	if byRow[5].Date != "2024-03-04" {
		t.Fatalf("US date = %q, want 2024-03-04", byRow[5].Date)
	}
	if byRow[5].Extra["Owner Response"] != "thanks" {
		t.Fatalf("extra columns not carried: %#v", byRow[5].Extra)
	}
	// valid date sorts first, invalid ones last
	if got[0].Row != 5 {
		t.Fatalf("first row = %d, want 5", got[0].Row)
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-01-01", "2024-01-01"},
		{"2024-01-01T23:30:00-05:00", "2024-01-02"},
		{"2025-02-25T10:00:00.123Z", "2025-02-25"},
		{"Jan 5, 2024", "2024-01-05"},
		{"2024/7/9", "2024-07-09"},
		{"", InvalidDate},
		{"yesterday", InvalidDate},
	}
	for _, c := range cases {
		got, _ := NormalizeDate(c.in)
		if got != c.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRatingLabelValue(t *testing.T) {
	for label, want := range map[RatingLabel]int{"ONE": 1, "TWO": 2, "THREE": 3, "FOUR": 4, "FIVE": 5, "": 5, "one": 5} {
		if got := label.Value(); got != want {
			t.Errorf("%q.Value() = %d, want %d", label, got, want)
		}
	}
}

func TestRecordAndColumns(t *testing.T) {
	rs := Normalize([]RawRecord{
		{"Rating": "FOUR", "Date": "3/4/2024", "Reviewer": "Cy", "Review Text": "ok", "Zip": "12345"},
		{"Rating": "TWO", "Date": "2024-01-02", "Reviewer": "Di", "Review Text": "meh", "City": "Austin"},
	})
	rec := rs[0].Record()
	if rec[ColRating] != "FOUR" || rec[ColDate] != "3/4/2024" || rec["Zip"] != "12345" {
		t.Fatalf("record = %v", rec)
	}
	cols := Columns(rs)
	want := []string{ColDate, ColRating, ColReviewer, ColText, "City", "Zip"}
	if len(cols) != len(want) {
		t.Fatalf("columns = %v", cols)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("columns = %v, want %v", cols, want)
		}
	}
}

func TestNormalize_PaddedRatingDefaults(t *testing.T) {
	got := Normalize([]RawRecord{
		{"Rating": " TWO ", "Date": "2024-01-02"},
		{"Rating": "ONE\t", "Date": "2024-01-01"},
		{"Rating": "ONE", "Date": "2023-12-31"},
	})
	for _, r := range got[:2] {
		if r.RatingValue != DefaultRating {
			t.Errorf("row %d: %q = %d, want %d", r.Row, r.RatingLabel, r.RatingValue, DefaultRating)
		}
		if r.RatingLabel.Known() {
			t.Errorf("row %d: %q reported as known", r.Row, r.RatingLabel)
		}
	}
	if got[2].RatingValue != 1 {
		t.Fatalf("ONE = %d, want 1", got[2].RatingValue)
	}
	if rec := got[0].Record(); rec[ColRating] != " TWO " {
		t.Fatalf("record rating = %q, want source label", rec[ColRating])
	}
}
