package service

import (
	"github.com/shopspring/decimal"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/valueobject"
)

// Risk factor names reported in a MortgageScore breakdown.
const (
	FactorLTV          = "ltv"
	FactorDTI          = "dti"
	FactorCreditScore  = "credit_score"
	FactorLoanType     = "loan_type"
	FactorPropertyType = "property_type"
)

var (
	hundred = decimal.NewFromInt(100)

	ltvHigh     = decimal.NewFromInt(90)
	ltvElevated = decimal.NewFromInt(80)
	dtiHigh     = decimal.NewFromInt(50)
	dtiElevated = decimal.NewFromInt(40)

	goodCredit = decimal.NewFromInt(700)
	poorCredit = decimal.NewFromInt(650)
)

// BatchResult is the outcome of rating a pool of mortgages.
type BatchResult struct {
	Rating             valueobject.Rating
	AverageCreditScore decimal.Decimal
	Mortgages          []model.MortgageScore
	// TotalRiskScore includes CreditAdjustment.
	TotalRiskScore   int
	CreditAdjustment int
}

// RatingEngine scores validated mortgages and maps a pool's aggregate risk
// to a rating tier. It holds no state and is safe for concurrent use.
type RatingEngine struct{}

// NewRatingEngine creates a new RatingEngine instance.
func NewRatingEngine() *RatingEngine {
	return &RatingEngine{}
}

// LTV returns the loan-to-value ratio as a percentage.
func (e *RatingEngine) LTV(m model.ValidatedMortgage) (decimal.Decimal, error) {
	return percentage(m.LoanAmount(), m.PropertyValue(), model.FieldPropertyValue)
}

// DTI returns the debt-to-income ratio as a percentage.
func (e *RatingEngine) DTI(m model.ValidatedMortgage) (decimal.Decimal, error) {
	return percentage(m.DebtAmount(), m.AnnualIncome(), model.FieldAnnualIncome)
}

// RiskScore computes the risk score of a single mortgage. Only non-zero
// contributions are listed in the returned factors.
func (e *RatingEngine) RiskScore(m model.ValidatedMortgage) (model.MortgageScore, error) {
	ltv, err := e.LTV(m)
	if err != nil {
		return model.MortgageScore{}, err
	}
	dti, err := e.DTI(m)
	if err != nil {
		return model.MortgageScore{}, err
	}

	factors := make([]model.RiskFactor, 0, 5)
	add := func(name string, contribution int) {
		if contribution != 0 {
			factors = append(factors, model.RiskFactor{Name: name, Contribution: contribution})
		}
	}

	add(FactorLTV, tiered(ltv, ltvHigh, ltvElevated))
	add(FactorDTI, tiered(dti, dtiHigh, dtiElevated))
	add(FactorCreditScore, creditScoreAdjustment(decimal.NewFromInt(int64(m.CreditScore()))))

	switch {
	case m.LoanType().Equal(valueobject.LoanTypeFixed):
		add(FactorLoanType, -1)
	case m.LoanType().Equal(valueobject.LoanTypeAdjustable):
		add(FactorLoanType, 1)
	}

	if m.PropertyType().Equal(valueobject.PropertyTypeCondo) {
		add(FactorPropertyType, 1)
	}

	score := 0
	for _, f := range factors {
		score += f.Contribution
	}

	return model.MortgageScore{
		LTV:         ltv,
		DTI:         dti,
		CreditScore: m.CreditScore(),
		RiskScore:   score,
		Factors:     factors,
	}, nil
}

// Evaluate scores every mortgage, averages the pool's credit scores, applies
// the pool-level credit adjustment once and maps the total to a rating.
func (e *RatingEngine) Evaluate(ms []model.ValidatedMortgage) (BatchResult, error) {
	if len(ms) == 0 {
		return BatchResult{}, model.ErrEmptyBatch
	}

	scores := make([]model.MortgageScore, 0, len(ms))
	total := 0
	creditSum := decimal.Zero
	for i, m := range ms {
		s, err := e.RiskScore(m)
		if err != nil {
			return BatchResult{}, &model.RecordError{Index: i, Err: err}
		}
		s.Index = i
		scores = append(scores, s)
		total += s.RiskScore
		creditSum = creditSum.Add(decimal.NewFromInt(int64(s.CreditScore)))
	}

	avg := creditSum.Div(decimal.NewFromInt(int64(len(ms))))
	adjustment := creditScoreAdjustment(avg)
	total += adjustment

	return BatchResult{
		Rating:             valueobject.RatingFromScore(total),
		TotalRiskScore:     total,
		AverageCreditScore: avg,
		CreditAdjustment:   adjustment,
		Mortgages:          scores,
	}, nil
}

// ScoreBatch returns only the rating for a pool of mortgages.
func (e *RatingEngine) ScoreBatch(ms []model.ValidatedMortgage) (valueobject.Rating, error) {
	res, err := e.Evaluate(ms)
	if err != nil {
		return valueobject.Rating{}, err
	}
	return res.Rating, nil
}

func percentage(numerator, denominator decimal.Decimal, denominatorField string) (decimal.Decimal, error) {
	if denominator.IsZero() {
		return decimal.Decimal{}, model.DivisionUndefined(denominatorField)
	}
	return numerator.Mul(hundred).Div(denominator), nil
}

// tiered returns +2 above high, +1 above elevated, 0 otherwise.
func tiered(v, high, elevated decimal.Decimal) int {
	switch {
	case v.GreaterThan(high):
		return 2
	case v.GreaterThan(elevated):
		return 1
	default:
		return 0
	}
}

func creditScoreAdjustment(score decimal.Decimal) int {
	switch {
	case score.GreaterThanOrEqual(goodCredit):
		return -1
	case score.LessThan(poorCredit):
		return 1
	default:
		return 0
	}
}
