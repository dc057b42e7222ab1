package kafka

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/dto"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/infrastructure/codec"
	pkgkafka "github.com/yashsarjekar/rmbs-credit-evaluator/pkg/kafka"
)

// PoolRater is satisfied by *usecase.RateMortgagePool.
type PoolRater interface {
	Execute(ctx context.Context, req dto.RatePoolRequest) (dto.CreditRatingResponse, error)
}

// RequestConsumer rates mortgage pools submitted as envelopes on the request
// topic. Results leave through the rater's event publisher.
type RequestConsumer struct {
	rater  PoolRater
	logger *slog.Logger
}

// NewRequestConsumer creates a RequestConsumer.
func NewRequestConsumer(rater PoolRater, logger *slog.Logger) *RequestConsumer {
	return &RequestConsumer{rater: rater, logger: logger}
}

// Handle processes one request message. The message key, when set, names
// the pool and overrides any pool_id in the body. Requests that can never
// succeed are logged and dropped so they are committed rather than retried.
// Any other failure is returned; the consumer retries it and leaves the
// offset uncommitted until it succeeds.
func (c *RequestConsumer) Handle(ctx context.Context, msg pkgkafka.Message) error {
	pool, err := codec.DecodePool(bytes.NewReader(msg.Value))
	if err != nil {
		if isPermanent(err) {
			c.logger.WarnContext(ctx, "dropping undecodable rating request",
				"key", string(msg.Key), "error", err)
			return nil
		}
		return err
	}

	poolID := pool.PoolID
	if len(msg.Key) > 0 {
		poolID = string(msg.Key)
	}

	resp, err := c.rater.Execute(ctx, dto.RatePoolRequest{PoolID: poolID, Mortgages: pool.Mortgages})
	if err != nil {
		if isPermanent(err) {
			c.logger.WarnContext(ctx, "dropping invalid rating request",
				"pool_id", poolID, "error", err)
			return nil
		}
		return err
	}

	c.logger.InfoContext(ctx, "rating request processed",
		"pool_id", poolID,
		"rating", resp.Rating,
		"mortgage_count", resp.MortgageCount,
	)
	return nil
}

func isPermanent(err error) bool {
	return model.IsValidationError(err) ||
		errors.Is(err, codec.ErrMalformedJSON) ||
		errors.Is(err, codec.ErrInvalidEnvelope)
}
