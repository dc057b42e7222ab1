package valueobject

import "fmt"

// Rating is an immutable value object representing the credit rating tier
// assigned to a mortgage pool.
type Rating struct {
	value string
}

const (
	ratingAAA = "AAA"
	ratingBBB = "BBB"
	ratingC   = "C"
)

var (
	RatingAAA = Rating{value: ratingAAA}
	RatingBBB = Rating{value: ratingBBB}
	RatingC   = Rating{value: ratingC}
)

// RatingFromString reconstructs a Rating from its string representation.
func RatingFromString(s string) (Rating, error) {
	switch s {
	case ratingAAA:
		return RatingAAA, nil
	case ratingBBB:
		return RatingBBB, nil
	case ratingC:
		return RatingC, nil
	default:
		return Rating{}, fmt.Errorf("invalid rating: %q", s)
	}
}

// RatingFromScore derives the rating tier from an aggregated pool risk score.
//
// Tiers:
//
//	score <= 2  -> AAA
//	score 3..5  -> BBB
//	otherwise   -> C
func RatingFromScore(totalRiskScore int) Rating {
	switch {
	case totalRiskScore <= 2:
		return RatingAAA
	case totalRiskScore <= 5:
		return RatingBBB
	default:
		return RatingC
	}
}

// AllRatings returns every rating tier, best first.
func AllRatings() []Rating {
	return []Rating{RatingAAA, RatingBBB, RatingC}
}

// String returns the string representation.
func (r Rating) String() string { return r.value }

// IsZero returns true if the Rating has not been set.
func (r Rating) IsZero() bool { return r.value == "" }

// Equal checks equality with another Rating.
func (r Rating) Equal(other Rating) bool { return r.value == other.value }
