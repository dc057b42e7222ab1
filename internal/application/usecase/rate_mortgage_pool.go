package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/dto"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/port"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/service"
)

const tracerName = "github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/usecase"

// RateMortgagePool is the use case for validating and rating a pool of
// mortgages supplied by the caller.
type RateMortgagePool struct {
	engine    *service.RatingEngine
	publisher port.EventPublisher
	metrics   port.RatingMetrics
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// NewRateMortgagePool creates a new RateMortgagePool use case. publisher and
// metrics may be nil, in which case events are dropped and nothing is recorded.
func NewRateMortgagePool(
	engine *service.RatingEngine,
	publisher port.EventPublisher,
	metrics port.RatingMetrics,
	logger *slog.Logger,
) *RateMortgagePool {
	return &RateMortgagePool{
		engine:    engine,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
		now:       time.Now,
	}
}

// Execute validates every mortgage, rates the pool and publishes the
// resulting domain events. Validation failures are returned unwrapped so
// callers can report them verbatim.
func (uc *RateMortgagePool) Execute(ctx context.Context, req dto.RatePoolRequest) (dto.CreditRatingResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "RateMortgagePool.Execute", trace.WithAttributes(
		attribute.String("pool.id", req.PoolID),
		attribute.Int("pool.mortgage_count", len(req.Mortgages)),
	))
	defer span.End()

	start := time.Now()

	// 1. Validate every record; the first invalid one aborts the pool.
	validated, err := model.ValidateBatch(req.Mortgages)
	if err != nil {
		return dto.CreditRatingResponse{}, uc.reject(ctx, span, req.PoolID, err)
	}

	// 2. Score and aggregate.
	result, err := uc.engine.Evaluate(validated)
	if err != nil {
		return dto.CreditRatingResponse{}, uc.reject(ctx, span, req.PoolID, err)
	}

	// 3. Build the aggregate, which raises the domain events.
	rating, err := model.NewCreditRating(
		req.PoolID,
		result.Rating,
		result.TotalRiskScore,
		result.AverageCreditScore,
		result.Mortgages,
		uc.now(),
	)
	if err != nil {
		return dto.CreditRatingResponse{}, fmt.Errorf("failed to create credit rating: %w", err)
	}

	// 4. Publish domain events.
	if events := rating.ClearEvents(); len(events) > 0 && uc.publisher != nil {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "publish failed")
			return dto.CreditRatingResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.RecordRating(ctx, rating.Rating().String(), rating.MortgageCount(), time.Since(start).Seconds())
	}

	span.SetAttributes(
		attribute.String("rating", rating.Rating().String()),
		attribute.Int("rating.total_risk_score", rating.TotalRiskScore()),
	)

	uc.logger.InfoContext(ctx, "mortgage pool rated",
		"pool_id", req.PoolID,
		"rating", rating.Rating().String(),
		"total_risk_score", rating.TotalRiskScore(),
		"mortgage_count", rating.MortgageCount(),
	)

	return dto.FromModel(rating), nil
}

func (uc *RateMortgagePool) reject(ctx context.Context, span trace.Span, poolID string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	if uc.metrics != nil {
		uc.metrics.RecordRejection(ctx, RejectionReason(err))
	}

	uc.logger.WarnContext(ctx, "mortgage pool rejected", "pool_id", poolID, "error", err)
	return err
}

// RejectionReason classifies a rating failure for metrics labels.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, model.ErrMissingField):
		return "missing_field"
	case errors.Is(err, model.ErrInvalidField):
		return "invalid_field"
	case errors.Is(err, model.ErrEmptyBatch):
		return "empty_batch"
	case errors.Is(err, model.ErrDivisionUndefined):
		return "division_undefined"
	default:
		return "internal"
	}
}
