package dto

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Rating
// ---------------------------------------------------------------------------

// RatePoolRequest is the input DTO for the RateMortgagePool use case.
type RatePoolRequest struct {
	PoolID    string                 `json:"pool_id,omitempty"`
	Mortgages []model.MortgageRecord `json:"-"`
}

// RateStoredPoolRequest is the input DTO for the RateStoredPool use case.
type RateStoredPoolRequest struct {
	PoolID string `json:"pool_id" validate:"required,max=64"`
}

// RiskFactorResponse is one non-zero contribution to a mortgage's score.
type RiskFactorResponse struct {
	Name         string `json:"name"`
	Contribution int    `json:"contribution"`
}

// MortgageScoreResponse is the scoring breakdown of one mortgage.
type MortgageScoreResponse struct {
	LTV         string               `json:"ltv"`
	DTI         string               `json:"dti"`
	Factors     []RiskFactorResponse `json:"factors"`
	Index       int                  `json:"index"`
	CreditScore int                  `json:"credit_score"`
	RiskScore   int                  `json:"risk_score"`
}

// CreditRatingResponse is the output DTO returned after rating a pool.
type CreditRatingResponse struct {
	AssessedAt         time.Time               `json:"assessed_at"`
	Mortgages          []MortgageScoreResponse `json:"mortgages"`
	ID                 uuid.UUID               `json:"id"`
	PoolID             string                  `json:"pool_id,omitempty"`
	Rating             string                  `json:"rating"`
	AverageCreditScore string                  `json:"average_credit_score"`
	TotalRiskScore     int                     `json:"total_risk_score"`
	MortgageCount      int                     `json:"mortgage_count"`
}

// FromModel maps a CreditRating aggregate to the response DTO.
func FromModel(cr *model.CreditRating) CreditRatingResponse {
	mortgages := make([]MortgageScoreResponse, 0, cr.MortgageCount())
	for _, m := range cr.Mortgages() {
		factors := make([]RiskFactorResponse, 0, len(m.Factors))
		for _, f := range m.Factors {
			factors = append(factors, RiskFactorResponse{Name: f.Name, Contribution: f.Contribution})
		}
		mortgages = append(mortgages, MortgageScoreResponse{
			Index:       m.Index,
			CreditScore: m.CreditScore,
			LTV:         m.LTV.StringFixed(2),
			DTI:         m.DTI.StringFixed(2),
			RiskScore:   m.RiskScore,
			Factors:     factors,
		})
	}

	return CreditRatingResponse{
		ID:                 cr.ID(),
		PoolID:             cr.PoolID(),
		Rating:             cr.Rating().String(),
		TotalRiskScore:     cr.TotalRiskScore(),
		AverageCreditScore: cr.AverageCreditScore().StringFixed(2),
		MortgageCount:      cr.MortgageCount(),
		Mortgages:          mortgages,
		AssessedAt:         cr.AssessedAt(),
	}
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

// Violation codes reported in a ValidationReport.
const (
	CodeMissingField = "missing_field"
	CodeInvalidField = "invalid_field"
)

// ValidateRequest is the input DTO for the ValidateMortgages use case.
type ValidateRequest struct {
	Mortgages []model.MortgageRecord `json:"-"`
}

// Violation describes one failed rule on one mortgage.
type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RecordValidation lists the violations found on one mortgage.
type RecordValidation struct {
	Violations []Violation `json:"violations"`
	Index      int         `json:"index"`
	Valid      bool        `json:"valid"`
}

// ValidationReport is the output DTO of the ValidateMortgages use case.
type ValidationReport struct {
	Records      []RecordValidation `json:"records"`
	ValidCount   int                `json:"valid_count"`
	InvalidCount int                `json:"invalid_count"`
	Valid        bool               `json:"valid"`
}

// ViolationFromError maps a validation error to its DTO form.
func ViolationFromError(err error) Violation {
	var fe *model.FieldError
	if errors.As(err, &fe) {
		code := CodeInvalidField
		if fe.IsMissing() {
			code = CodeMissingField
		}
		return Violation{Field: fe.Field, Code: code, Message: fe.Error()}
	}
	return Violation{Code: CodeInvalidField, Message: err.Error()}
}
