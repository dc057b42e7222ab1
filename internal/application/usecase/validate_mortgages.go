package usecase

import (
	"context"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/dto"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
)

// ValidateMortgages reports every validation violation of every mortgage
// without rating the pool.
type ValidateMortgages struct{}

// NewValidateMortgages creates a new ValidateMortgages use case.
func NewValidateMortgages() *ValidateMortgages {
	return &ValidateMortgages{}
}

// Execute validates each mortgage independently.
func (uc *ValidateMortgages) Execute(_ context.Context, req dto.ValidateRequest) dto.ValidationReport {
	report := dto.ValidationReport{Records: make([]dto.RecordValidation, 0, len(req.Mortgages))}

	for i, r := range req.Mortgages {
		errs := model.ValidateAll(r)
		rv := dto.RecordValidation{
			Index:      i,
			Valid:      len(errs) == 0,
			Violations: make([]dto.Violation, 0, len(errs)),
		}
		for _, err := range errs {
			rv.Violations = append(rv.Violations, dto.ViolationFromError(err))
		}
		if rv.Valid {
			report.ValidCount++
		} else {
			report.InvalidCount++
		}
		report.Records = append(report.Records, rv)
	}

	report.Valid = len(req.Mortgages) > 0 && report.InvalidCount == 0
	return report
}
