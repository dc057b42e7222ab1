package service_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/service"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/valueobject"
)

type mortgage struct {
	loanType      string
	propertyType  string
	creditScore   int64
	loanAmount    int64
	propertyValue int64
	annualIncome  int64
	debtAmount    int64
}

func (m mortgage) validated(t *testing.T) model.ValidatedMortgage {
	t.Helper()
	credit := decimal.NewFromInt(m.creditScore)
	loan := decimal.NewFromInt(m.loanAmount)
	value := decimal.NewFromInt(m.propertyValue)
	income := decimal.NewFromInt(m.annualIncome)
	debt := decimal.NewFromInt(m.debtAmount)
	loanType, propertyType := m.loanType, m.propertyType

	v, err := model.Validate(model.MortgageRecord{
		CreditScore:   &credit,
		LoanAmount:    &loan,
		PropertyValue: &value,
		AnnualIncome:  &income,
		DebtAmount:    &debt,
		LoanType:      &loanType,
		PropertyType:  &propertyType,
	})
	require.NoError(t, err)
	return v
}

func pool(t *testing.T, ms ...mortgage) []model.ValidatedMortgage {
	t.Helper()
	out := make([]model.ValidatedMortgage, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.validated(t))
	}
	return out
}

var (
	strongBorrower = mortgage{
		creditScore: 750, loanAmount: 200000, propertyValue: 250000,
		annualIncome: 60000, debtAmount: 20000, loanType: "fixed", propertyType: "single_family",
	}
	weakBorrower = mortgage{
		creditScore: 600, loanAmount: 200000, propertyValue: 220000,
		annualIncome: 40000, debtAmount: 25000, loanType: "adjustable", propertyType: "condo",
	}
)

func TestRatingEngine_ScenarioA(t *testing.T) {
	engine := service.NewRatingEngine()

	res, err := engine.Evaluate(pool(t, strongBorrower))
	require.NoError(t, err)

	assert.Equal(t, valueobject.RatingAAA, res.Rating)
	assert.Equal(t, -3, res.TotalRiskScore)
	assert.Equal(t, -1, res.CreditAdjustment)
	assert.True(t, decimal.NewFromInt(750).Equal(res.AverageCreditScore))

	require.Len(t, res.Mortgages, 1)
	score := res.Mortgages[0]
	assert.Equal(t, -2, score.RiskScore)
	assert.True(t, decimal.NewFromInt(80).Equal(score.LTV))
	assert.Equal(t, []model.RiskFactor{
		{Name: service.FactorCreditScore, Contribution: -1},
		{Name: service.FactorLoanType, Contribution: -1},
	}, score.Factors)
}

func TestRatingEngine_ScenarioB(t *testing.T) {
	engine := service.NewRatingEngine()

	res, err := engine.Evaluate(pool(t, weakBorrower))
	require.NoError(t, err)

	assert.Equal(t, valueobject.RatingC, res.Rating)
	assert.Equal(t, 8, res.TotalRiskScore)
	assert.Equal(t, 1, res.CreditAdjustment)
	assert.Equal(t, 7, res.Mortgages[0].RiskScore)
	assert.True(t, decimal.RequireFromString("62.5").Equal(res.Mortgages[0].DTI))
	assert.Len(t, res.Mortgages[0].Factors, 5)
}

func TestRatingEngine_EmptyBatch(t *testing.T) {
	engine := service.NewRatingEngine()

	_, err := engine.Evaluate(nil)
	assert.ErrorIs(t, err, model.ErrEmptyBatch)

	rating, err := engine.ScoreBatch([]model.ValidatedMortgage{})
	assert.ErrorIs(t, err, model.ErrEmptyBatch)
	assert.True(t, rating.IsZero())
}

func TestRatingEngine_ReferenceCases(t *testing.T) {
	tests := []struct {
		name  string
		want  valueobject.Rating
		pool  []mortgage
		total int
	}{
		{
			name:  "mixed credit scores",
			want:  valueobject.RatingAAA,
			total: 0,
			pool: []mortgage{
				strongBorrower,
				{creditScore: 680, loanAmount: 150000, propertyValue: 175000, annualIncome: 45000, debtAmount: 10000, loanType: "adjustable", propertyType: "condo"},
			},
		},
		{
			name:  "ltv and dti on their thresholds",
			want:  valueobject.RatingBBB,
			total: 3,
			pool: []mortgage{
				{creditScore: 680, loanAmount: 180000, propertyValue: 200000, annualIncome: 50000, debtAmount: 25000, loanType: "adjustable", propertyType: "single_family"},
			},
		},
		{
			name:  "average credit score adjustment",
			want:  valueobject.RatingC,
			total: 8,
			pool: []mortgage{
				{creditScore: 640, loanAmount: 150000, propertyValue: 180000, annualIncome: 45000, debtAmount: 20000, loanType: "adjustable", propertyType: "condo"},
				{creditScore: 630, loanAmount: 180000, propertyValue: 200000, annualIncome: 50000, debtAmount: 25000, loanType: "fixed", propertyType: "single_family"},
			},
		},
	}

	engine := service.NewRatingEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := engine.Evaluate(pool(t, tt.pool...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Rating)
			assert.Equal(t, tt.total, res.TotalRiskScore)
		})
	}
}

func TestRatingEngine_RiskScoreBoundaries(t *testing.T) {
	base := mortgage{
		creditScore: 680, loanAmount: 100000, propertyValue: 200000,
		annualIncome: 100000, debtAmount: 10000, loanType: "adjustable", propertyType: "single_family",
	}

	tests := []struct {
		mutate func(*mortgage)
		name   string
		want   int
	}{
		{name: "baseline", mutate: func(*mortgage) {}, want: 1},
		{name: "ltv exactly 80", mutate: func(m *mortgage) { m.loanAmount = 160000 }, want: 1},
		{name: "ltv just above 80", mutate: func(m *mortgage) { m.loanAmount = 160001 }, want: 2},
		{name: "ltv exactly 90", mutate: func(m *mortgage) { m.loanAmount = 180000 }, want: 2},
		{name: "ltv just above 90", mutate: func(m *mortgage) { m.loanAmount = 180001 }, want: 3},
		{name: "dti exactly 40", mutate: func(m *mortgage) { m.debtAmount = 40000 }, want: 1},
		{name: "dti just above 40", mutate: func(m *mortgage) { m.debtAmount = 40001 }, want: 2},
		{name: "dti exactly 50", mutate: func(m *mortgage) { m.debtAmount = 50000 }, want: 2},
		{name: "dti just above 50", mutate: func(m *mortgage) { m.debtAmount = 50001 }, want: 3},
		{name: "zero debt", mutate: func(m *mortgage) { m.debtAmount = 0 }, want: 1},
		{name: "credit 700", mutate: func(m *mortgage) { m.creditScore = 700 }, want: 0},
		{name: "credit 699", mutate: func(m *mortgage) { m.creditScore = 699 }, want: 1},
		{name: "credit 650", mutate: func(m *mortgage) { m.creditScore = 650 }, want: 1},
		{name: "credit 649", mutate: func(m *mortgage) { m.creditScore = 649 }, want: 2},
		{name: "fixed", mutate: func(m *mortgage) { m.loanType = "fixed" }, want: -1},
		{name: "condo", mutate: func(m *mortgage) { m.propertyType = "condo" }, want: 2},
	}

	engine := service.NewRatingEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base
			tt.mutate(&m)
			score, err := engine.RiskScore(m.validated(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, score.RiskScore)
		})
	}
}

func TestRatingEngine_RatingTiers(t *testing.T) {
	// Credit 680 carries no pool adjustment, so the total is the record's score.
	engine := service.NewRatingEngine()
	tests := []struct {
		m    mortgage
		want valueobject.Rating
	}{
		{m: mortgage{creditScore: 680, loanAmount: 180000, propertyValue: 200000, annualIncome: 100000, debtAmount: 50000, loanType: "fixed", propertyType: "condo"}, want: valueobject.RatingAAA},
		{m: mortgage{creditScore: 680, loanAmount: 180000, propertyValue: 200000, annualIncome: 100000, debtAmount: 50000, loanType: "adjustable", propertyType: "single_family"}, want: valueobject.RatingBBB},
		{m: mortgage{creditScore: 680, loanAmount: 190000, propertyValue: 200000, annualIncome: 100000, debtAmount: 60000, loanType: "adjustable", propertyType: "condo"}, want: valueobject.RatingC},
	}
	for _, tt := range tests {
		rating, err := engine.ScoreBatch(pool(t, tt.m))
		require.NoError(t, err)
		assert.Equal(t, tt.want, rating)
	}
}

func TestRatingEngine_OrderIndependentAndDeterministic(t *testing.T) {
	engine := service.NewRatingEngine()
	middle := mortgage{
		creditScore: 680, loanAmount: 150000, propertyValue: 175000,
		annualIncome: 45000, debtAmount: 10000, loanType: "adjustable", propertyType: "condo",
	}

	forward, err := engine.Evaluate(pool(t, strongBorrower, middle, weakBorrower))
	require.NoError(t, err)
	reversed, err := engine.Evaluate(pool(t, weakBorrower, middle, strongBorrower))
	require.NoError(t, err)

	assert.Equal(t, forward.Rating, reversed.Rating)
	assert.Equal(t, forward.TotalRiskScore, reversed.TotalRiskScore)
	assert.True(t, forward.AverageCreditScore.Equal(reversed.AverageCreditScore))

	again, err := engine.Evaluate(pool(t, strongBorrower, middle, weakBorrower))
	require.NoError(t, err)
	assert.Equal(t, forward.TotalRiskScore, again.TotalRiskScore)
	assert.Equal(t, forward.Rating, again.Rating)
}

func TestRatingEngine_LTVMonotonic(t *testing.T) {
	engine := service.NewRatingEngine()
	prev := -100
	for loan := int64(100000); loan <= 250000; loan += 5000 {
		m := strongBorrower
		m.loanAmount = loan
		score, err := engine.RiskScore(m.validated(t))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score.RiskScore, prev, "loan %d", loan)
		prev = score.RiskScore
	}
}

func TestRatingEngine_ZeroValueMortgage(t *testing.T) {
	engine := service.NewRatingEngine()

	_, err := engine.LTV(model.ValidatedMortgage{})
	assert.ErrorIs(t, err, model.ErrDivisionUndefined)
	assert.ErrorContains(t, err, "property_value")

	_, err = engine.Evaluate([]model.ValidatedMortgage{strongBorrower.validated(t), {}})
	require.Error(t, err)
	var re *model.RecordError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, 1, re.Index)
	assert.ErrorIs(t, err, model.ErrDivisionUndefined)
}
