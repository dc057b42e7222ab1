// Package telemetry records rating outcomes as OpenTelemetry metrics.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/yashsarjekar/rmbs-credit-evaluator/rating"

// RatingMetrics implements port.RatingMetrics.
type RatingMetrics struct {
	ratings    metric.Int64Counter
	rejections metric.Int64Counter
	duration   metric.Float64Histogram
	poolSize   metric.Int64Histogram
}

// NewRatingMetrics creates the rating instruments on the given provider.
func NewRatingMetrics(provider metric.MeterProvider) (*RatingMetrics, error) {
	meter := provider.Meter(meterName)

	ratings, err := meter.Int64Counter("credit_ratings",
		metric.WithDescription("Mortgage pools rated, by rating tier."))
	if err != nil {
		return nil, fmt.Errorf("create credit_ratings counter: %w", err)
	}

	rejections, err := meter.Int64Counter("credit_rating_rejections",
		metric.WithDescription("Mortgage pools rejected before rating, by reason."))
	if err != nil {
		return nil, fmt.Errorf("create credit_rating_rejections counter: %w", err)
	}

	duration, err := meter.Float64Histogram("credit_rating_duration",
		metric.WithUnit("s"),
		metric.WithDescription("Time spent validating and rating a pool."))
	if err != nil {
		return nil, fmt.Errorf("create credit_rating_duration histogram: %w", err)
	}

	poolSize, err := meter.Int64Histogram("credit_rating_pool_size",
		metric.WithDescription("Number of mortgages in a rated pool."),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 50, 100, 500, 1000, 5000, 10000))
	if err != nil {
		return nil, fmt.Errorf("create credit_rating_pool_size histogram: %w", err)
	}

	return &RatingMetrics{
		ratings:    ratings,
		rejections: rejections,
		duration:   duration,
		poolSize:   poolSize,
	}, nil
}

func (m *RatingMetrics) RecordRating(ctx context.Context, rating string, mortgageCount int, seconds float64) {
	attrs := metric.WithAttributes(attribute.String("rating", rating))
	m.ratings.Add(ctx, 1, attrs)
	m.duration.Record(ctx, seconds, attrs)
	m.poolSize.Record(ctx, int64(mortgageCount))
}

func (m *RatingMetrics) RecordRejection(ctx context.Context, reason string) {
	m.rejections.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
