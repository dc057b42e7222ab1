package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/dto"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/port"
)

// RateStoredPool rates a mortgage pool loaded from the pool repository.
type RateStoredPool struct {
	repo  port.MortgagePoolRepository
	rater *RateMortgagePool
}

// NewRateStoredPool creates a new RateStoredPool use case.
func NewRateStoredPool(repo port.MortgagePoolRepository, rater *RateMortgagePool) *RateStoredPool {
	return &RateStoredPool{repo: repo, rater: rater}
}

// Execute loads the pool and rates it. An unknown pool yields an error
// matching model.ErrPoolNotFound.
func (uc *RateStoredPool) Execute(ctx context.Context, req dto.RateStoredPoolRequest) (dto.CreditRatingResponse, error) {
	poolID := strings.TrimSpace(req.PoolID)
	if poolID == "" {
		return dto.CreditRatingResponse{}, model.InvalidField("pool_id", "must not be empty")
	}

	records, err := uc.repo.FindByPoolID(ctx, poolID)
	if err != nil {
		return dto.CreditRatingResponse{}, fmt.Errorf("failed to load mortgage pool %s: %w", poolID, err)
	}

	return uc.rater.Execute(ctx, dto.RatePoolRequest{PoolID: poolID, Mortgages: records})
}
