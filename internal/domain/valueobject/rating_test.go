package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/valueobject"
)

func TestRating_FromScore(t *testing.T) {
	tests := []struct {
		name     string
		expected valueobject.Rating
		score    int
	}{
		{name: "score -8 is AAA", expected: valueobject.RatingAAA, score: -8},
		{name: "score -3 is AAA", expected: valueobject.RatingAAA, score: -3},
		{name: "score 0 is AAA", expected: valueobject.RatingAAA, score: 0},
		{name: "score 2 is AAA", expected: valueobject.RatingAAA, score: 2},
		{name: "score 3 is BBB", expected: valueobject.RatingBBB, score: 3},
		{name: "score 4 is BBB", expected: valueobject.RatingBBB, score: 4},
		{name: "score 5 is BBB", expected: valueobject.RatingBBB, score: 5},
		{name: "score 6 is C", expected: valueobject.RatingC, score: 6},
		{name: "score 8 is C", expected: valueobject.RatingC, score: 8},
		{name: "score 40 is C", expected: valueobject.RatingC, score: 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := valueobject.RatingFromScore(tt.score)
			assert.True(t, tt.expected.Equal(result),
				"expected %s for score %d, got %s", tt.expected.String(), tt.score, result.String())
		})
	}
}

func TestRating_FromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.Rating
		wantErr  bool
	}{
		{"AAA", valueobject.RatingAAA, false},
		{"BBB", valueobject.RatingBBB, false},
		{"C", valueobject.RatingC, false},
		{"aaa", valueobject.Rating{}, true},
		{"BB", valueobject.Rating{}, true},
		{"", valueobject.Rating{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := valueobject.RatingFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.expected.Equal(result))
			}
		})
	}
}

func TestRating_String(t *testing.T) {
	assert.Equal(t, "AAA", valueobject.RatingAAA.String())
	assert.Equal(t, "BBB", valueobject.RatingBBB.String())
	assert.Equal(t, "C", valueobject.RatingC.String())
}

func TestRating_IsZero(t *testing.T) {
	var zero valueobject.Rating
	assert.True(t, zero.IsZero())
	assert.False(t, valueobject.RatingC.IsZero())
}

func TestAllRatings(t *testing.T) {
	assert.Equal(t,
		[]valueobject.Rating{valueobject.RatingAAA, valueobject.RatingBBB, valueobject.RatingC},
		valueobject.AllRatings())
}
