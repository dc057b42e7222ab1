package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/event"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/valueobject"
	"github.com/yashsarjekar/rmbs-credit-evaluator/pkg/events"
)

// highRiskMortgageScore is the per-mortgage score at or above which a
// mortgage is listed in a HighRiskPoolDetected event.
const highRiskMortgageScore = 4

// CreditRating is the aggregate root describing one rating decision for a
// mortgage pool. It lives for a single request and is never persisted.
type CreditRating struct {
	events.EventCollector
	assessedAt         time.Time
	averageCreditScore decimal.Decimal
	rating             valueobject.Rating
	poolID             string
	mortgages          []MortgageScore
	totalRiskScore     int
	id                 uuid.UUID
}

// NewCreditRating records the outcome of rating a pool and raises the
// matching domain events.
func NewCreditRating(
	poolID string,
	rating valueobject.Rating,
	totalRiskScore int,
	averageCreditScore decimal.Decimal,
	mortgages []MortgageScore,
	now time.Time,
) (*CreditRating, error) {
	if rating.IsZero() {
		return nil, errors.New("rating is required")
	}
	if len(mortgages) == 0 {
		return nil, ErrEmptyBatch
	}

	cr := &CreditRating{
		id:                 uuid.New(),
		poolID:             poolID,
		rating:             rating,
		totalRiskScore:     totalRiskScore,
		averageCreditScore: averageCreditScore,
		mortgages:          mortgages,
		assessedAt:         now.UTC(),
	}

	cr.Record(event.NewCreditRatingAssigned(
		cr.id, cr.poolID, cr.rating.String(), cr.averageCreditScore.StringFixed(2),
		cr.totalRiskScore, len(cr.mortgages), cr.assessedAt,
	))

	if cr.rating.Equal(valueobject.RatingC) {
		cr.Record(event.NewHighRiskPoolDetected(
			cr.id, cr.poolID, cr.totalRiskScore, cr.highRiskMortgages(), cr.assessedAt,
		))
	}

	return cr, nil
}

func (c *CreditRating) highRiskMortgages() []int {
	indexes := make([]int, 0)
	for _, m := range c.mortgages {
		if m.RiskScore >= highRiskMortgageScore {
			indexes = append(indexes, m.Index)
		}
	}
	return indexes
}

// --- Accessors ---

func (c *CreditRating) ID() uuid.UUID                       { return c.id }
func (c *CreditRating) PoolID() string                      { return c.poolID }
func (c *CreditRating) Rating() valueobject.Rating          { return c.rating }
func (c *CreditRating) TotalRiskScore() int                 { return c.totalRiskScore }
func (c *CreditRating) AverageCreditScore() decimal.Decimal { return c.averageCreditScore }
func (c *CreditRating) Mortgages() []MortgageScore          { return c.mortgages }
func (c *CreditRating) MortgageCount() int                  { return len(c.mortgages) }
func (c *CreditRating) AssessedAt() time.Time               { return c.assessedAt }
