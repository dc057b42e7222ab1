package model_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/valueobject"
)

func dec(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func str(s string) *string { return &s }

func validRecord() model.MortgageRecord {
	return model.MortgageRecord{
		CreditScore:   dec("750"),
		LoanAmount:    dec("200000"),
		PropertyValue: dec("250000"),
		AnnualIncome:  dec("60000"),
		DebtAmount:    dec("20000"),
		LoanType:      str("fixed"),
		PropertyType:  str("single_family"),
	}
}

func TestValidate_Valid(t *testing.T) {
	m, err := model.Validate(validRecord())
	require.NoError(t, err)

	assert.Equal(t, 750, m.CreditScore())
	assert.True(t, decimal.NewFromInt(200000).Equal(m.LoanAmount()))
	assert.True(t, decimal.NewFromInt(250000).Equal(m.PropertyValue()))
	assert.True(t, decimal.NewFromInt(60000).Equal(m.AnnualIncome()))
	assert.True(t, decimal.NewFromInt(20000).Equal(m.DebtAmount()))
	assert.True(t, m.LoanType().Equal(valueobject.LoanTypeFixed))
	assert.True(t, m.PropertyType().Equal(valueobject.PropertyTypeSingleFamily))
}

func TestValidate_MissingField(t *testing.T) {
	for _, field := range model.RequiredFields {
		t.Run(field, func(t *testing.T) {
			r := validRecord()
			switch field {
			case model.FieldCreditScore:
				r.CreditScore = nil
			case model.FieldLoanAmount:
				r.LoanAmount = nil
			case model.FieldPropertyValue:
				r.PropertyValue = nil
			case model.FieldAnnualIncome:
				r.AnnualIncome = nil
			case model.FieldDebtAmount:
				r.DebtAmount = nil
			case model.FieldLoanType:
				r.LoanType = nil
			case model.FieldPropertyType:
				r.PropertyType = nil
			}

			_, err := model.Validate(r)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrMissingField)
			assert.EqualError(t, err, "missing required field: "+field)

			var fe *model.FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, field, fe.Field)
			assert.True(t, fe.IsMissing())
		})
	}
}

func TestValidate_PresenceCheckedBeforeRanges(t *testing.T) {
	r := validRecord()
	r.CreditScore = dec("100")
	r.PropertyType = nil

	_, err := model.Validate(r)
	assert.ErrorIs(t, err, model.ErrMissingField)
	assert.EqualError(t, err, "missing required field: property_type")
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		mutate func(*model.MortgageRecord)
		name   string
		field  string
	}{
		{name: "credit score below range", field: model.FieldCreditScore, mutate: func(r *model.MortgageRecord) { r.CreditScore = dec("299") }},
		{name: "credit score above range", field: model.FieldCreditScore, mutate: func(r *model.MortgageRecord) { r.CreditScore = dec("851") }},
		{name: "fractional credit score", field: model.FieldCreditScore, mutate: func(r *model.MortgageRecord) { r.CreditScore = dec("700.5") }},
		{name: "zero loan amount", field: model.FieldLoanAmount, mutate: func(r *model.MortgageRecord) { r.LoanAmount = dec("0") }},
		{name: "negative loan amount", field: model.FieldLoanAmount, mutate: func(r *model.MortgageRecord) { r.LoanAmount = dec("-1") }},
		{name: "zero property value", field: model.FieldPropertyValue, mutate: func(r *model.MortgageRecord) { r.PropertyValue = dec("0") }},
		{name: "zero annual income", field: model.FieldAnnualIncome, mutate: func(r *model.MortgageRecord) { r.AnnualIncome = dec("0") }},
		{name: "negative debt", field: model.FieldDebtAmount, mutate: func(r *model.MortgageRecord) { r.DebtAmount = dec("-0.01") }},
		{name: "unknown loan type", field: model.FieldLoanType, mutate: func(r *model.MortgageRecord) { r.LoanType = str("balloon") }},
		{name: "loan type is case sensitive", field: model.FieldLoanType, mutate: func(r *model.MortgageRecord) { r.LoanType = str("Fixed") }},
		{name: "unknown property type", field: model.FieldPropertyType, mutate: func(r *model.MortgageRecord) { r.PropertyType = str("townhouse") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)

			_, err := model.Validate(r)
			require.Error(t, err)
			assert.ErrorIs(t, err, model.ErrInvalidField)
			assert.NotErrorIs(t, err, model.ErrMissingField)

			var fe *model.FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
			assert.False(t, fe.IsMissing())
		})
	}
}

func TestValidate_Boundaries(t *testing.T) {
	tests := []struct {
		mutate func(*model.MortgageRecord)
		name   string
	}{
		{name: "minimum credit score", mutate: func(r *model.MortgageRecord) { r.CreditScore = dec("300") }},
		{name: "maximum credit score", mutate: func(r *model.MortgageRecord) { r.CreditScore = dec("850") }},
		{name: "integral decimal credit score", mutate: func(r *model.MortgageRecord) { r.CreditScore = dec("700.0") }},
		{name: "zero debt", mutate: func(r *model.MortgageRecord) { r.DebtAmount = dec("0") }},
		{name: "tiny positive loan", mutate: func(r *model.MortgageRecord) { r.LoanAmount = dec("0.01") }},
		{name: "adjustable condo", mutate: func(r *model.MortgageRecord) {
			r.LoanType = str("adjustable")
			r.PropertyType = str("condo")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.mutate(&r)
			_, err := model.Validate(r)
			assert.NoError(t, err)
		})
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	r := validRecord()
	r.LoanAmount = dec("0")
	r.LoanType = str("balloon")

	_, err := model.Validate(r)
	assert.EqualError(t, err, "invalid loan_amount: must be a positive number")
}

func TestValidateAll(t *testing.T) {
	assert.Nil(t, model.ValidateAll(validRecord()))

	r := validRecord()
	r.CreditScore = dec("900")
	r.AnnualIncome = nil
	r.PropertyType = str("castle")

	errs := model.ValidateAll(r)
	require.Len(t, errs, 3)
	assert.EqualError(t, errs[0], "missing required field: annual_income")
	assert.EqualError(t, errs[1], "invalid credit_score: must be an integer between 300 and 850")
	assert.EqualError(t, errs[2], "invalid property_type: must be 'single_family' or 'condo'")
}

func TestValidateBatch(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		ms, err := model.ValidateBatch([]model.MortgageRecord{validRecord(), validRecord()})
		require.NoError(t, err)
		assert.Len(t, ms, 2)
	})

	t.Run("reports first invalid index", func(t *testing.T) {
		bad := validRecord()
		bad.DebtAmount = nil
		worse := validRecord()
		worse.CreditScore = dec("10")

		_, err := model.ValidateBatch([]model.MortgageRecord{validRecord(), bad, worse})
		require.Error(t, err)

		var re *model.RecordError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, 1, re.Index)
		assert.ErrorIs(t, err, model.ErrMissingField)
		assert.EqualError(t, err, "mortgage[1]: missing required field: debt_amount")
	})

	t.Run("empty input", func(t *testing.T) {
		ms, err := model.ValidateBatch(nil)
		require.NoError(t, err)
		assert.Empty(t, ms)
	})
}

func TestValidatedMortgage_Record(t *testing.T) {
	m, err := model.Validate(validRecord())
	require.NoError(t, err)

	again, err := model.Validate(m.Record())
	require.NoError(t, err)
	assert.Equal(t, m, again)
}

func TestValidate_TypeErrorAfterPresence(t *testing.T) {
	r := validRecord()
	r.CreditScore = nil
	r.SetTypeError(model.FieldCreditScore, model.ReasonNotNumber)
	r.DebtAmount = nil

	assert.True(t, r.Has(model.FieldCreditScore))

	_, err := model.Validate(r)
	assert.EqualError(t, err, "missing required field: debt_amount")

	r.DebtAmount = dec("0")
	_, err = model.Validate(r)
	assert.ErrorIs(t, err, model.ErrInvalidField)
	assert.EqualError(t, err, "invalid credit_score: must be a number")
}

func TestValidate_OutOfRangeMagnitudes(t *testing.T) {
	tests := []struct {
		edit  func(r *model.MortgageRecord)
		name  string
		field string
	}{
		{name: "huge exponent", field: model.FieldLoanAmount, edit: func(r *model.MortgageRecord) { r.LoanAmount = dec("1e1100000000") }},
		{name: "tiny exponent", field: model.FieldPropertyValue, edit: func(r *model.MortgageRecord) { r.PropertyValue = dec("1e-1100000000") }},
		{name: "credit score exponent", field: model.FieldCreditScore, edit: func(r *model.MortgageRecord) { r.CreditScore = dec("1e100") }},
		{name: "negative debt exponent", field: model.FieldDebtAmount, edit: func(r *model.MortgageRecord) { r.DebtAmount = dec("1e-65") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecord()
			tt.edit(&r)

			_, err := model.Validate(r)
			require.Error(t, err)
			var fe *model.FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}

	r := validRecord()
	r.LoanAmount = dec("1e64")
	r.PropertyValue = dec("1e-64")
	_, err := model.Validate(r)
	assert.NoError(t, err)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		field  string
		text   string
		reason string
	}{
		{field: model.FieldCreditScore, text: "750"},
		{field: model.FieldCreditScore, text: "750.0", reason: model.ReasonNotInteger},
		{field: model.FieldCreditScore, text: "7.5e2", reason: model.ReasonNotInteger},
		{field: model.FieldCreditScore, text: "seven", reason: model.ReasonNotNumber},
		{field: model.FieldLoanAmount, text: "180000.10"},
		{field: model.FieldLoanAmount, text: "1e3"},
		{field: model.FieldLoanAmount, text: "", reason: model.ReasonNotNumber},
	}

	for _, tt := range tests {
		t.Run(tt.field+" "+tt.text, func(t *testing.T) {
			_, reason := model.ParseNumber(tt.field, tt.text)
			assert.Equal(t, tt.reason, reason)
		})
	}
}
