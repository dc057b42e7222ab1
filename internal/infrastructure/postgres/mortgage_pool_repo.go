package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
	pkgpostgres "github.com/yashsarjekar/rmbs-credit-evaluator/pkg/postgres"
)

// MortgagePoolRepo implements port.MortgagePoolRepository.
type MortgagePoolRepo struct {
	pool *pgxpool.Pool
}

// NewMortgagePoolRepo creates a new PostgreSQL-backed mortgage pool repository.
func NewMortgagePoolRepo(pool *pgxpool.Pool) *MortgagePoolRepo {
	return &MortgagePoolRepo{pool: pool}
}

// FindByPoolID loads the mortgages of a pool ordered by position. Both
// queries run in one read-only snapshot.
func (r *MortgagePoolRepo) FindByPoolID(ctx context.Context, poolID string) ([]model.MortgageRecord, error) {
	var records []model.MortgageRecord
	err := pkgpostgres.WithSnapshot(ctx, r.pool, func(q pkgpostgres.Querier) error {
		var exists bool
		if err := q.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM mortgage_pools WHERE id = $1)`, poolID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("query mortgage pool: %w", err)
		}
		if !exists {
			return model.ErrPoolNotFound
		}

		var err error
		records, err = findMortgages(ctx, q, poolID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func findMortgages(ctx context.Context, q pkgpostgres.Querier, poolID string) ([]model.MortgageRecord, error) {
	query := `
		SELECT credit_score::text, loan_amount::text, property_value::text,
		       annual_income::text, debt_amount::text, loan_type, property_type
		FROM pool_mortgages
		WHERE pool_id = $1
		ORDER BY position
	`
	rows, err := q.Query(ctx, query, poolID)
	if err != nil {
		return nil, fmt.Errorf("query pool mortgages: %w", err)
	}
	defer rows.Close()

	records := make([]model.MortgageRecord, 0)
	for rows.Next() {
		rec, err := scanMortgage(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pool mortgages: %w", err)
	}

	return records, nil
}

func scanMortgage(row pgx.Row) (model.MortgageRecord, error) {
	var (
		creditScore, loanAmount, propertyValue *string
		annualIncome, debtAmount               *string
		rec                                    model.MortgageRecord
	)
	if err := row.Scan(
		&creditScore, &loanAmount, &propertyValue,
		&annualIncome, &debtAmount, &rec.LoanType, &rec.PropertyType,
	); err != nil {
		return model.MortgageRecord{}, fmt.Errorf("scan pool mortgage: %w", err)
	}

	var err error
	if rec.CreditScore, err = parseNumeric(creditScore); err != nil {
		return model.MortgageRecord{}, err
	}
	if rec.LoanAmount, err = parseNumeric(loanAmount); err != nil {
		return model.MortgageRecord{}, err
	}
	if rec.PropertyValue, err = parseNumeric(propertyValue); err != nil {
		return model.MortgageRecord{}, err
	}
	if rec.AnnualIncome, err = parseNumeric(annualIncome); err != nil {
		return model.MortgageRecord{}, err
	}
	if rec.DebtAmount, err = parseNumeric(debtAmount); err != nil {
		return model.MortgageRecord{}, err
	}
	return rec, nil
}

func parseNumeric(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("parse numeric %q: %w", *s, err)
	}
	return &d, nil
}
