package port

import (
	"context"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/event"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// MortgagePoolRepository reads stored mortgage pools. Ratings are computed on
// demand and never written back.
type MortgagePoolRepository interface {
	// FindByPoolID returns the pool's mortgages in their stored order, or
	// model.ErrPoolNotFound when the pool does not exist.
	FindByPoolID(ctx context.Context, poolID string) ([]model.MortgageRecord, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}

// ---------------------------------------------------------------------------
// Telemetry port
// ---------------------------------------------------------------------------

// RatingMetrics records rating outcomes.
type RatingMetrics interface {
	RecordRating(ctx context.Context, rating string, mortgageCount int, seconds float64)
	RecordRejection(ctx context.Context, reason string)
}
