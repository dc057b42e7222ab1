package model

import (
	"github.com/shopspring/decimal"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/valueobject"
)

// Mortgage field names as they appear on the wire and in error messages.
const (
	FieldCreditScore   = "credit_score"
	FieldLoanAmount    = "loan_amount"
	FieldPropertyValue = "property_value"
	FieldAnnualIncome  = "annual_income"
	FieldDebtAmount    = "debt_amount"
	FieldLoanType      = "loan_type"
	FieldPropertyType  = "property_type"
)

// RequiredFields lists every mortgage field in validation order.
var RequiredFields = []string{
	FieldCreditScore,
	FieldLoanAmount,
	FieldPropertyValue,
	FieldAnnualIncome,
	FieldDebtAmount,
	FieldLoanType,
	FieldPropertyType,
}

// ---------------------------------------------------------------------------
// MortgageRecord – unvalidated input
// ---------------------------------------------------------------------------

// MortgageRecord is a mortgage application as supplied by a caller. A nil
// field means the caller did not provide it, unless a type error was
// recorded for it with SetTypeError.
type MortgageRecord struct {
	CreditScore   *decimal.Decimal
	LoanAmount    *decimal.Decimal
	PropertyValue *decimal.Decimal
	AnnualIncome  *decimal.Decimal
	DebtAmount    *decimal.Decimal
	LoanType      *string
	PropertyType  *string

	typeErrors map[string]string
}

// SetTypeError marks field as supplied with a value of the wrong type.
// The field counts as present; Validate reports reason for it once every
// required field is known to be there.
func (r *MortgageRecord) SetTypeError(field, reason string) {
	if r.typeErrors == nil {
		r.typeErrors = make(map[string]string)
	}
	r.typeErrors[field] = reason
}

// TypeError returns the reason recorded by SetTypeError for field.
func (r MortgageRecord) TypeError(field string) (string, bool) {
	reason, ok := r.typeErrors[field]
	return reason, ok
}

// Has reports whether the named field is present on the record.
func (r MortgageRecord) Has(field string) bool {
	if _, ok := r.typeErrors[field]; ok {
		return true
	}
	switch field {
	case FieldCreditScore:
		return r.CreditScore != nil
	case FieldLoanAmount:
		return r.LoanAmount != nil
	case FieldPropertyValue:
		return r.PropertyValue != nil
	case FieldAnnualIncome:
		return r.AnnualIncome != nil
	case FieldDebtAmount:
		return r.DebtAmount != nil
	case FieldLoanType:
		return r.LoanType != nil
	case FieldPropertyType:
		return r.PropertyType != nil
	default:
		return false
	}
}

// ---------------------------------------------------------------------------
// ValidatedMortgage – output of Validate, input of the rating engine
// ---------------------------------------------------------------------------

// ValidatedMortgage is a mortgage that passed every validation rule. It can
// only be obtained from Validate, so the rating engine never sees raw input.
type ValidatedMortgage struct {
	loanAmount    decimal.Decimal
	propertyValue decimal.Decimal
	annualIncome  decimal.Decimal
	debtAmount    decimal.Decimal
	loanType      valueobject.LoanType
	propertyType  valueobject.PropertyType
	creditScore   int
}

func (m ValidatedMortgage) CreditScore() int                       { return m.creditScore }
func (m ValidatedMortgage) LoanAmount() decimal.Decimal            { return m.loanAmount }
func (m ValidatedMortgage) PropertyValue() decimal.Decimal         { return m.propertyValue }
func (m ValidatedMortgage) AnnualIncome() decimal.Decimal          { return m.annualIncome }
func (m ValidatedMortgage) DebtAmount() decimal.Decimal            { return m.debtAmount }
func (m ValidatedMortgage) LoanType() valueobject.LoanType         { return m.loanType }
func (m ValidatedMortgage) PropertyType() valueobject.PropertyType { return m.propertyType }

// Record converts the mortgage back into its input representation.
func (m ValidatedMortgage) Record() MortgageRecord {
	creditScore := decimal.NewFromInt(int64(m.creditScore))
	loanAmount, propertyValue := m.loanAmount, m.propertyValue
	annualIncome, debtAmount := m.annualIncome, m.debtAmount
	loanType, propertyType := m.loanType.String(), m.propertyType.String()
	return MortgageRecord{
		CreditScore:   &creditScore,
		LoanAmount:    &loanAmount,
		PropertyValue: &propertyValue,
		AnnualIncome:  &annualIncome,
		DebtAmount:    &debtAmount,
		LoanType:      &loanType,
		PropertyType:  &propertyType,
	}
}

// ---------------------------------------------------------------------------
// Scoring output
// ---------------------------------------------------------------------------

// RiskFactor is a single non-zero contribution to a mortgage's risk score.
type RiskFactor struct {
	Name         string
	Contribution int
}

// MortgageScore is the scoring breakdown of one mortgage within a pool.
type MortgageScore struct {
	LTV         decimal.Decimal
	DTI         decimal.Decimal
	Factors     []RiskFactor
	Index       int
	CreditScore int
	RiskScore   int
}
