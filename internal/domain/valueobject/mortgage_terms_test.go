package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/valueobject"
)

func TestNewLoanType(t *testing.T) {
	fixed, err := valueobject.NewLoanType("fixed")
	require.NoError(t, err)
	assert.True(t, fixed.Equal(valueobject.LoanTypeFixed))

	adjustable, err := valueobject.NewLoanType("adjustable")
	require.NoError(t, err)
	assert.True(t, adjustable.Equal(valueobject.LoanTypeAdjustable))

	for _, bad := range []string{"", "FIXED", "variable", "interest_only"} {
		_, err := valueobject.NewLoanType(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestNewPropertyType(t *testing.T) {
	sf, err := valueobject.NewPropertyType("single_family")
	require.NoError(t, err)
	assert.True(t, sf.Equal(valueobject.PropertyTypeSingleFamily))
	assert.Equal(t, "single_family", sf.String())

	condo, err := valueobject.NewPropertyType("condo")
	require.NoError(t, err)
	assert.True(t, condo.Equal(valueobject.PropertyTypeCondo))

	for _, bad := range []string{"", "Condo", "townhouse", "multi_family"} {
		_, err := valueobject.NewPropertyType(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestMortgageTerms_IsZero(t *testing.T) {
	var lt valueobject.LoanType
	var pt valueobject.PropertyType
	assert.True(t, lt.IsZero())
	assert.True(t, pt.IsZero())
	assert.False(t, valueobject.LoanTypeFixed.IsZero())
	assert.False(t, valueobject.PropertyTypeCondo.IsZero())
}
