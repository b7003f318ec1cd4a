package review

import "time"

// Column headers recognized in review exports.
const (
	ColDate     = "Date"
	ColRating   = "Rating"
	ColReviewer = "Reviewer"
	ColText     = "Review Text"
)

// RawRecord is one input row keyed by column header.
type RawRecord map[string]string

// RatingLabel is the textual rating token found in exports.
type RatingLabel string

const (
	RatingOne   RatingLabel = "ONE"
	RatingTwo   RatingLabel = "TWO"
	RatingThree RatingLabel = "THREE"
	RatingFour  RatingLabel = "FOUR"
	RatingFive  RatingLabel = "FIVE"
)

// DefaultRating is used when the label is missing or unrecognized.
const DefaultRating = 5

var ratingValues = map[RatingLabel]int{
	RatingOne:   1,
	RatingTwo:   2,
	RatingThree: 3,
	RatingFour:  4,
	RatingFive:  5,
}

// Value maps the label to 1..5. Unknown or empty labels yield DefaultRating.
func (l RatingLabel) Value() int {
	if v, ok := ratingValues[l]; ok {
		return v
	}
	return DefaultRating
}

// Known reports whether the label is one of ONE..FIVE.
func (l RatingLabel) Known() bool {
	_, ok := ratingValues[l]
	return ok
}

// Review is a normalized review row.
type Review struct {
	// Row is the 1-based position of the source record in the input.
	Row         int         `json:"row"`
	Reviewer    string      `json:"reviewer,omitempty"`
	Text        string      `json:"text,omitempty"`
	RatingLabel RatingLabel `json:"rating_label,omitempty"`
	RatingValue int         `json:"rating"`
	RawDate     string      `json:"raw_date"`
	// Date is YYYY-MM-DD, or InvalidDate when RawDate could not be parsed.
	Date string `json:"date"`
	// Extra holds columns this package does not interpret.
	Extra map[string]string `json:"extra,omitempty"`

	day time.Time
}

// Day returns the calendar day of Date. It is the zero time for InvalidDate.
func (r *Review) Day() time.Time { return r.day }

// HasText reports whether the review carries any review text.
func (r *Review) HasText() bool { return r.Text != "" }
