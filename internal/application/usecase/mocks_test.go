package usecase_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/event"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
)

// --- Mock implementations ---

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockRatingMetrics struct {
	ratings    []string
	rejections []string
}

func (m *mockRatingMetrics) RecordRating(_ context.Context, rating string, _ int, _ float64) {
	m.ratings = append(m.ratings, rating)
}

func (m *mockRatingMetrics) RecordRejection(_ context.Context, reason string) {
	m.rejections = append(m.rejections, reason)
}

type mockPoolRepository struct {
	findFunc func(ctx context.Context, poolID string) ([]model.MortgageRecord, error)
}

func (m *mockPoolRepository) FindByPoolID(ctx context.Context, poolID string) ([]model.MortgageRecord, error) {
	return m.findFunc(ctx, poolID)
}

// --- Fixtures ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func str(s string) *string { return &s }

func strongMortgage() model.MortgageRecord {
	return model.MortgageRecord{
		CreditScore:   dec(750),
		LoanAmount:    dec(200000),
		PropertyValue: dec(250000),
		AnnualIncome:  dec(60000),
		DebtAmount:    dec(20000),
		LoanType:      str("fixed"),
		PropertyType:  str("single_family"),
	}
}

func weakMortgage() model.MortgageRecord {
	return model.MortgageRecord{
		CreditScore:   dec(600),
		LoanAmount:    dec(200000),
		PropertyValue: dec(220000),
		AnnualIncome:  dec(40000),
		DebtAmount:    dec(25000),
		LoanType:      str("adjustable"),
		PropertyType:  str("condo"),
	}
}
