package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Handler processes a consumed Kafka message.
type Handler func(ctx context.Context, msg Message) error

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Handler retry defaults.
const (
	DefaultMaxRetries   = 5
	DefaultRetryBackoff = 200 * time.Millisecond
	maxRetryBackoff     = 10 * time.Second
)

// Consumer wraps a kafka-go reader for consuming messages.
type Consumer struct {
	reader       MessageReader
	handler      Handler
	logger       *slog.Logger
	topic        string
	group        string
	maxRetries   int
	retryBackoff time.Duration
}

// NewConsumer creates a new Consumer for the given topic with the provided handler.
func NewConsumer(cfg Config, topic string, handler Handler, logger *slog.Logger) (*Consumer, error) {
	dialer, err := cfg.dialer()
	if err != nil {
		return nil, err
	}

	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topic,
		GroupID:  cfg.ConsumerGroup,
		MinBytes: 1,
		MaxBytes: 10 * 1024 * 1024, // 10 MB
		Dialer:   dialer,
	})

	return NewConsumerWithReader(r, topic, cfg.ConsumerGroup, handler, logger), nil
}

// NewConsumerWithReader creates a Consumer around an existing reader.
func NewConsumerWithReader(reader MessageReader, topic, group string, handler Handler, logger *slog.Logger) *Consumer {
	return &Consumer{
		reader:       reader,
		handler:      handler,
		logger:       logger,
		topic:        topic,
		group:        group,
		maxRetries:   DefaultMaxRetries,
		retryBackoff: DefaultRetryBackoff,
	}
}

// WithRetry sets how often a failing handler is retried and the base
// backoff between attempts.
func (c *Consumer) WithRetry(maxRetries int, backoff time.Duration) *Consumer {
	c.maxRetries = maxRetries
	c.retryBackoff = backoff
	return c
}

// Start begins consuming messages. Blocks until the context is canceled.
// A message is committed only after its handler succeeds. A handler that
// still fails after its retries stops the consumer with an error, leaving
// the message uncommitted so the group redelivers it.
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("consumer starting", "topic", c.topic, "group", c.group)

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if isStopping(err) {
				c.logger.Info("consumer stopping due to context cancellation")
				return nil
			}
			return fmt.Errorf("fetching message: %w", err)
		}

		if err := c.handle(ctx, m); err != nil {
			if ctx.Err() != nil {
				c.logger.Info("consumer stopping due to context cancellation")
				return nil
			}
			return fmt.Errorf("handling message at offset %d: %w", m.Offset, err)
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			c.logger.Error("commit error",
				"topic", m.Topic,
				"partition", m.Partition,
				"offset", m.Offset,
				"error", err,
			)
		}
	}
}

// handle runs the handler with exponential backoff and jitter between
// attempts.
func (c *Consumer) handle(ctx context.Context, m kafkago.Message) error {
	msg := fromKafkaMessage(m)
	backoff := c.retryBackoff

	var err error
	for attempt := 0; ; attempt++ {
		if err = c.handler(ctx, msg); err == nil {
			return nil
		}
		c.logger.Error("handler error",
			"topic", m.Topic,
			"partition", m.Partition,
			"offset", m.Offset,
			"attempt", attempt+1,
			"error", err,
		)
		if attempt >= c.maxRetries {
			return err
		}

		wait := backoff
		if half := int64(backoff) / 2; half > 0 {
			wait += time.Duration(rand.Int64N(half))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		backoff = min(backoff*2, maxRetryBackoff)
	}
}

func isStopping(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Close closes the reader.
func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("closing kafka reader: %w", err)
	}
	return nil
}
