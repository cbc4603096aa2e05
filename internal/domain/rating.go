package domain

import "time"

// Rating is one student's score for a completed booking. A booking accepts at
// most one rating from its student.
type Rating struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	RaterID   string    `json:"rater_id"`
	RateeID   string    `json:"ratee_id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// ValidRatingScore reports whether score is on the 1..5 scale.
func ValidRatingScore(score int) bool {
	return score >= MinRatingScore && score <= MaxRatingScore
}

// FoldRating folds a new score into a user's current aggregate. The aggregate
// is a recency-weighted running average: each new score carries half the
// weight, so older sessions decay geometrically rather than averaging
// uniformly over the full history.
func FoldRating(current float64, score int) float64 {
	return (current + float64(score)) / 2
}
