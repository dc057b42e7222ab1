package model

import (
	"github.com/shopspring/decimal"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/valueobject"
)

const (
	MinCreditScore = 300
	MaxCreditScore = 850
)

const reasonOutOfRange = "is out of range"

var (
	minCreditScore = decimal.NewFromInt(MinCreditScore)
	maxCreditScore = decimal.NewFromInt(MaxCreditScore)
)

// fieldRule checks one field of a record on which the field is present.
type fieldRule struct {
	check func(MortgageRecord) *FieldError
	field string
}

// apply reports a recorded type error before running the range check,
// which may then assume the field holds a value of the right type.
func (rule fieldRule) apply(r MortgageRecord) *FieldError {
	if reason, ok := r.TypeError(rule.field); ok {
		return InvalidField(rule.field, reason)
	}
	return rule.check(r)
}

// mortgageRules are evaluated in RequiredFields order.
var mortgageRules = []fieldRule{
	{field: FieldCreditScore, check: checkCreditScore},
	{field: FieldLoanAmount, check: positive(FieldLoanAmount, func(r MortgageRecord) decimal.Decimal { return *r.LoanAmount })},
	{field: FieldPropertyValue, check: positive(FieldPropertyValue, func(r MortgageRecord) decimal.Decimal { return *r.PropertyValue })},
	{field: FieldAnnualIncome, check: positive(FieldAnnualIncome, func(r MortgageRecord) decimal.Decimal { return *r.AnnualIncome })},
	{field: FieldDebtAmount, check: checkDebtAmount},
	{field: FieldLoanType, check: checkLoanType},
	{field: FieldPropertyType, check: checkPropertyType},
}

// Validate checks a mortgage record and, when every rule passes, returns the
// ValidatedMortgage the rating engine accepts. Presence of all required
// fields is checked first; the first failure encountered is returned.
func Validate(r MortgageRecord) (ValidatedMortgage, error) {
	for _, field := range RequiredFields {
		if !r.Has(field) {
			return ValidatedMortgage{}, MissingField(field)
		}
	}

	for _, rule := range mortgageRules {
		if err := rule.apply(r); err != nil {
			return ValidatedMortgage{}, err
		}
	}

	// Membership was checked above, so these cannot fail.
	loanType, _ := valueobject.NewLoanType(*r.LoanType)
	propertyType, _ := valueobject.NewPropertyType(*r.PropertyType)

	return ValidatedMortgage{
		creditScore:   int(r.CreditScore.IntPart()),
		loanAmount:    *r.LoanAmount,
		propertyValue: *r.PropertyValue,
		annualIncome:  *r.AnnualIncome,
		debtAmount:    *r.DebtAmount,
		loanType:      loanType,
		propertyType:  propertyType,
	}, nil
}

// ValidateAll evaluates every rule independently and returns all violations
// in field order. Missing fields are reported and their range checks skipped.
// A nil result means the record is valid.
func ValidateAll(r MortgageRecord) []error {
	var errs []error
	for _, field := range RequiredFields {
		if !r.Has(field) {
			errs = append(errs, MissingField(field))
		}
	}
	for _, rule := range mortgageRules {
		if !r.Has(rule.field) {
			continue
		}
		if err := rule.apply(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// ValidateBatch validates every record in order and stops at the first
// invalid one, reporting its index.
func ValidateBatch(records []MortgageRecord) ([]ValidatedMortgage, error) {
	validated := make([]ValidatedMortgage, 0, len(records))
	for i, r := range records {
		m, err := Validate(r)
		if err != nil {
			return nil, &RecordError{Index: i, Err: err}
		}
		validated = append(validated, m)
	}
	return validated, nil
}

// ---------------------------------------------------------------------------
// rules
// ---------------------------------------------------------------------------

func checkCreditScore(r MortgageRecord) *FieldError {
	v := *r.CreditScore
	if outOfRange(v) || !v.IsInteger() || v.LessThan(minCreditScore) || v.GreaterThan(maxCreditScore) {
		return InvalidField(FieldCreditScore, "must be an integer between 300 and 850")
	}
	return nil
}

func positive(field string, get func(MortgageRecord) decimal.Decimal) func(MortgageRecord) *FieldError {
	return func(r MortgageRecord) *FieldError {
		v := get(r)
		if outOfRange(v) {
			return InvalidField(field, reasonOutOfRange)
		}
		if !v.IsPositive() {
			return InvalidField(field, "must be a positive number")
		}
		return nil
	}
}

func checkDebtAmount(r MortgageRecord) *FieldError {
	if outOfRange(*r.DebtAmount) {
		return InvalidField(FieldDebtAmount, reasonOutOfRange)
	}
	if r.DebtAmount.IsNegative() {
		return InvalidField(FieldDebtAmount, "must be a non-negative number")
	}
	return nil
}

func checkLoanType(r MortgageRecord) *FieldError {
	if _, err := valueobject.NewLoanType(*r.LoanType); err != nil {
		return InvalidField(FieldLoanType, "must be 'fixed' or 'adjustable'")
	}
	return nil
}

func checkPropertyType(r MortgageRecord) *FieldError {
	if _, err := valueobject.NewPropertyType(*r.PropertyType); err != nil {
		return InvalidField(FieldPropertyType, "must be 'single_family' or 'condo'")
	}
	return nil
}
