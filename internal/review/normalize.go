package review

import "sort"

var knownColumns = map[string]struct{}{
	ColDate:     {},
	ColRating:   {},
	ColReviewer: {},
	ColText:     {},
}

// FromRecord projects a raw record onto a Review. It never fails: a missing
// or unknown rating becomes DefaultRating and an unparsable date becomes
// InvalidDate. Rating labels match exactly, so " TWO " is unknown.
func FromRecord(row int, rec RawRecord) *Review {
	label := RatingLabel(rec[ColRating])
	date, day := NormalizeDate(rec[ColDate])
	r := &Review{
		Row:         row,
		Reviewer:    rec[ColReviewer],
		Text:        rec[ColText],
		RatingLabel: label,
		RatingValue: label.Value(),
		RawDate:     rec[ColDate],
		Date:        date,
		day:         day,
	}
	for k, v := range rec {
		if _, ok := knownColumns[k]; ok {
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[k] = v
	}
	return r
}

// Normalize converts every record into a Review and returns them in baseline
// order: most recent date first. Reviews with equal dates keep input order.
func Normalize(records []RawRecord) []*Review {
	out := make([]*Review, len(records))
	for i, rec := range records {
		out[i] = FromRecord(i+1, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].day.After(out[j].day)
	})
	return out
}

// Record projects the review back onto its source columns.
func (r *Review) Record() RawRecord {
	rec := make(RawRecord, len(r.Extra)+4)
	for k, v := range r.Extra {
		rec[k] = v
	}
	rec[ColDate] = r.RawDate
	rec[ColRating] = string(r.RatingLabel)
	rec[ColReviewer] = r.Reviewer
	rec[ColText] = r.Text
	return rec
}

// Columns returns the recognized headers followed by every extra column seen
// in reviews, sorted.
func Columns(reviews []*Review) []string {
	seen := map[string]struct{}{}
	var extra []string
	for _, r := range reviews {
		for k := range r.Extra {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)
	return append([]string{ColDate, ColRating, ColReviewer, ColText}, extra...)
}
