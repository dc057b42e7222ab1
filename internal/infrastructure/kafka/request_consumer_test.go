package kafka_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/dto"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/usecase"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/service"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/infrastructure/kafka"
	pkgkafka "github.com/yashsarjekar/rmbs-credit-evaluator/pkg/kafka"
)

const weakPool = `{"pool_id":"BODY-ID","mortgages":[{"credit_score":600,"loan_amount":200000,
"property_value":220000,"annual_income":40000,"debt_amount":25000,
"loan_type":"adjustable","property_type":"condo"}]}`

type raterFunc func(ctx context.Context, req dto.RatePoolRequest) (dto.CreditRatingResponse, error)

func (f raterFunc) Execute(ctx context.Context, req dto.RatePoolRequest) (dto.CreditRatingResponse, error) {
	return f(ctx, req)
}

func TestRequestConsumer_RatesAndPublishes(t *testing.T) {
	producer := &fakeProducer{}
	publisher := kafka.NewEventPublisher(producer, "rating-events", discardLogger())
	rater := usecase.NewRateMortgagePool(service.NewRatingEngine(), publisher, nil, discardLogger())
	consumer := kafka.NewRequestConsumer(rater, discardLogger())

	err := consumer.Handle(context.Background(), pkgkafka.Message{
		Key:   []byte("POOL-42"),
		Value: []byte(weakPool),
	})

	require.NoError(t, err)
	require.Len(t, producer.messages, 2)
	assert.Contains(t, string(producer.messages[0].Value), `"pool_id":"POOL-42"`)
	assert.Contains(t, string(producer.messages[0].Value), `"rating":"C"`)
}

func TestRequestConsumer_PoolIDFromBody(t *testing.T) {
	var got dto.RatePoolRequest
	consumer := kafka.NewRequestConsumer(raterFunc(func(_ context.Context, req dto.RatePoolRequest) (dto.CreditRatingResponse, error) {
		got = req
		return dto.CreditRatingResponse{Rating: "C"}, nil
	}), discardLogger())

	require.NoError(t, consumer.Handle(context.Background(), pkgkafka.Message{Value: []byte(weakPool)}))
	assert.Equal(t, "BODY-ID", got.PoolID)
	assert.Len(t, got.Mortgages, 1)
}

func TestRequestConsumer_DropsPermanentFailures(t *testing.T) {
	tests := []struct {
		name  string
		value string
		err   error
	}{
		{name: "malformed json", value: `{"mortgages":`},
		{name: "missing envelope", value: `{"loans":[]}`},
		{name: "validation failure", value: `{"mortgages":[]}`, err: model.ErrEmptyBatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			consumer := kafka.NewRequestConsumer(raterFunc(func(context.Context, dto.RatePoolRequest) (dto.CreditRatingResponse, error) {
				called = true
				return dto.CreditRatingResponse{}, tt.err
			}), discardLogger())

			err := consumer.Handle(context.Background(), pkgkafka.Message{Value: []byte(tt.value)})
			assert.NoError(t, err)
			assert.Equal(t, tt.err != nil, called)
		})
	}
}

func TestRequestConsumer_RetriesTransientFailures(t *testing.T) {
	consumer := kafka.NewRequestConsumer(raterFunc(func(context.Context, dto.RatePoolRequest) (dto.CreditRatingResponse, error) {
		return dto.CreditRatingResponse{}, errors.New("failed to publish events: broker down")
	}), discardLogger())

	err := consumer.Handle(context.Background(), pkgkafka.Message{Value: []byte(weakPool)})
	assert.Error(t, err)
}
