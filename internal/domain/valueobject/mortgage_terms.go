package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// LoanType – immutable value object
// ---------------------------------------------------------------------------

// LoanType describes how the mortgage interest rate behaves over the term.
type LoanType struct {
	value string
}

const (
	loanTypeFixed      = "fixed"
	loanTypeAdjustable = "adjustable"
)

var (
	LoanTypeFixed      = LoanType{value: loanTypeFixed}
	LoanTypeAdjustable = LoanType{value: loanTypeAdjustable}
)

var validLoanTypes = map[string]LoanType{
	loanTypeFixed:      LoanTypeFixed,
	loanTypeAdjustable: LoanTypeAdjustable,
}

// NewLoanType creates a LoanType from a raw string.
func NewLoanType(s string) (LoanType, error) {
	v, ok := validLoanTypes[s]
	if !ok {
		return LoanType{}, fmt.Errorf("invalid loan type: %q", s)
	}
	return v, nil
}

// String returns the string representation of the loan type.
func (t LoanType) String() string { return t.value }

// IsZero returns true if the loan type has not been initialised.
func (t LoanType) IsZero() bool { return t.value == "" }

// Equal returns true when both loan types carry the same value.
func (t LoanType) Equal(other LoanType) bool { return t.value == other.value }

// ---------------------------------------------------------------------------
// PropertyType – immutable value object
// ---------------------------------------------------------------------------

// PropertyType describes the collateral securing the mortgage.
type PropertyType struct {
	value string
}

const (
	propertyTypeSingleFamily = "single_family"
	propertyTypeCondo        = "condo"
)

var (
	PropertyTypeSingleFamily = PropertyType{value: propertyTypeSingleFamily}
	PropertyTypeCondo        = PropertyType{value: propertyTypeCondo}
)

var validPropertyTypes = map[string]PropertyType{
	propertyTypeSingleFamily: PropertyTypeSingleFamily,
	propertyTypeCondo:        PropertyTypeCondo,
}

// NewPropertyType creates a PropertyType from a raw string.
func NewPropertyType(s string) (PropertyType, error) {
	v, ok := validPropertyTypes[s]
	if !ok {
		return PropertyType{}, fmt.Errorf("invalid property type: %q", s)
	}
	return v, nil
}

// String returns the string representation of the property type.
func (t PropertyType) String() string { return t.value }

// IsZero returns true if the property type has not been initialised.
func (t PropertyType) IsZero() bool { return t.value == "" }

// Equal returns true when both property types carry the same value.
func (t PropertyType) Equal(other PropertyType) bool { return t.value == other.value }
