package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/yashsarjekar/rmbs-credit-evaluator/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	// EventTypeCreditRatingAssigned is emitted whenever a pool receives a rating.
	EventTypeCreditRatingAssigned = "credit_rating.assigned"

	// EventTypeHighRiskPoolDetected is emitted when a pool is rated C.
	EventTypeHighRiskPoolDetected = "credit_rating.high_risk_pool"

	aggregateType = "CreditRating"
)

// CreditRatingAssigned is published when a mortgage pool has been rated.
type CreditRatingAssigned struct {
	events.BaseEvent
	PoolID             string `json:"pool_id,omitempty"`
	Rating             string `json:"rating"`
	AverageCreditScore string `json:"average_credit_score"`
	TotalRiskScore     int    `json:"total_risk_score"`
	MortgageCount      int    `json:"mortgage_count"`
}

func NewCreditRatingAssigned(
	ratingID uuid.UUID,
	poolID, rating, averageCreditScore string,
	totalRiskScore, mortgageCount int,
	at time.Time,
) CreditRatingAssigned {
	return CreditRatingAssigned{
		BaseEvent:          events.NewBaseEvent(EventTypeCreditRatingAssigned, ratingID, aggregateType, at),
		PoolID:             poolID,
		Rating:             rating,
		AverageCreditScore: averageCreditScore,
		TotalRiskScore:     totalRiskScore,
		MortgageCount:      mortgageCount,
	}
}

// HighRiskPoolDetected is published when a pool lands in the lowest tier,
// listing the mortgages that contributed most to the score.
type HighRiskPoolDetected struct {
	events.BaseEvent
	PoolID            string `json:"pool_id,omitempty"`
	HighRiskMortgages []int  `json:"high_risk_mortgages"`
	TotalRiskScore    int    `json:"total_risk_score"`
}

func NewHighRiskPoolDetected(
	ratingID uuid.UUID,
	poolID string,
	totalRiskScore int,
	highRiskMortgages []int,
	at time.Time,
) HighRiskPoolDetected {
	return HighRiskPoolDetected{
		BaseEvent:         events.NewBaseEvent(EventTypeHighRiskPoolDetected, ratingID, aggregateType, at),
		PoolID:            poolID,
		TotalRiskScore:    totalRiskScore,
		HighRiskMortgages: highRiskMortgages,
	}
}
