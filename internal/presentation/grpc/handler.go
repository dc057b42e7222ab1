package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/dto"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/usecase"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
)

// Compile-time assertion that CreditRatingHandler implements CreditRatingServiceServer.
var _ CreditRatingServiceServer = (*CreditRatingHandler)(nil)

// CreditRatingHandler implements the gRPC CreditRatingServiceServer interface.
type CreditRatingHandler struct {
	UnimplementedCreditRatingServiceServer
	ratePool       *usecase.RateMortgagePool
	rateStoredPool *usecase.RateStoredPool
	validate       *usecase.ValidateMortgages
	logger         *slog.Logger
}

// NewCreditRatingHandler creates a new gRPC handler. rateStoredPool may be
// nil when no pool storage is configured.
func NewCreditRatingHandler(
	ratePool *usecase.RateMortgagePool,
	rateStoredPool *usecase.RateStoredPool,
	validate *usecase.ValidateMortgages,
	logger *slog.Logger,
) *CreditRatingHandler {
	return &CreditRatingHandler{
		ratePool:       ratePool,
		rateStoredPool: rateStoredPool,
		validate:       validate,
		logger:         logger,
	}
}

// Proto-aligned request/response message types.

// MortgageMsg represents the proto Mortgage message. Numeric fields are
// decimal strings; an empty string means the field was not supplied.
type MortgageMsg struct {
	CreditScore   string `json:"credit_score,omitempty"`
	LoanAmount    string `json:"loan_amount,omitempty"`
	PropertyValue string `json:"property_value,omitempty"`
	AnnualIncome  string `json:"annual_income,omitempty"`
	DebtAmount    string `json:"debt_amount,omitempty"`
	LoanType      string `json:"loan_type,omitempty"`
	PropertyType  string `json:"property_type,omitempty"`
}

// RatePoolRequest represents the proto RatePoolRequest message.
type RatePoolRequest struct {
	PoolID    string         `json:"pool_id,omitempty"`
	Mortgages []*MortgageMsg `json:"mortgages"`
}

// RateStoredPoolRequest represents the proto RateStoredPoolRequest message.
type RateStoredPoolRequest struct {
	PoolID string `json:"pool_id"`
}

// RiskFactorMsg represents the proto RiskFactor message.
type RiskFactorMsg struct {
	Name         string `json:"name"`
	Contribution int32  `json:"contribution"`
}

// MortgageScoreMsg represents the proto MortgageScore message.
type MortgageScoreMsg struct {
	LTV         string           `json:"ltv"`
	DTI         string           `json:"dti"`
	Factors     []*RiskFactorMsg `json:"factors"`
	Index       int32            `json:"index"`
	CreditScore int32            `json:"credit_score"`
	RiskScore   int32            `json:"risk_score"`
}

// CreditRatingMsg represents the proto CreditRating message.
type CreditRatingMsg struct {
	ID                 string              `json:"id"`
	PoolID             string              `json:"pool_id,omitempty"`
	Rating             string              `json:"rating"`
	AverageCreditScore string              `json:"average_credit_score"`
	AssessedAt         string              `json:"assessed_at"`
	Mortgages          []*MortgageScoreMsg `json:"mortgages"`
	TotalRiskScore     int32               `json:"total_risk_score"`
	MortgageCount      int32               `json:"mortgage_count"`
}

// RatePoolResponse represents the proto RatePoolResponse message.
type RatePoolResponse struct {
	Rating *CreditRatingMsg `json:"rating"`
}

// ValidateMortgagesRequest represents the proto ValidateMortgagesRequest message.
type ValidateMortgagesRequest struct {
	Mortgages []*MortgageMsg `json:"mortgages"`
}

// ViolationMsg represents the proto Violation message.
type ViolationMsg struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RecordValidationMsg represents the proto RecordValidation message.
type RecordValidationMsg struct {
	Violations []*ViolationMsg `json:"violations"`
	Index      int32           `json:"index"`
	Valid      bool            `json:"valid"`
}

// ValidateMortgagesResponse represents the proto ValidateMortgagesResponse message.
type ValidateMortgagesResponse struct {
	Records      []*RecordValidationMsg `json:"records"`
	ValidCount   int32                  `json:"valid_count"`
	InvalidCount int32                  `json:"invalid_count"`
	Valid        bool                   `json:"valid"`
}

// RatePool rates the mortgages carried in the request.
func (h *CreditRatingHandler) RatePool(ctx context.Context, req *RatePoolRequest) (*RatePoolResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	records := toRecords(req.Mortgages)

	result, err := h.ratePool.Execute(ctx, dto.RatePoolRequest{PoolID: req.PoolID, Mortgages: records})
	if err != nil {
		return nil, h.toStatus(ctx, "failed to rate pool", req.PoolID, err)
	}

	return &RatePoolResponse{Rating: toCreditRatingMsg(result)}, nil
}

// RateStoredPool rates a pool held in pool storage.
func (h *CreditRatingHandler) RateStoredPool(ctx context.Context, req *RateStoredPoolRequest) (*RatePoolResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if h.rateStoredPool == nil {
		return nil, status.Error(codes.Unavailable, "pool storage is not configured")
	}

	result, err := h.rateStoredPool.Execute(ctx, dto.RateStoredPoolRequest{PoolID: req.PoolID})
	if err != nil {
		return nil, h.toStatus(ctx, "failed to rate stored pool", req.PoolID, err)
	}

	return &RatePoolResponse{Rating: toCreditRatingMsg(result)}, nil
}

// ValidateMortgages reports every violation without rating.
func (h *CreditRatingHandler) ValidateMortgages(ctx context.Context, req *ValidateMortgagesRequest) (*ValidateMortgagesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	records := toRecords(req.Mortgages)

	report := h.validate.Execute(ctx, dto.ValidateRequest{Mortgages: records})

	resp := &ValidateMortgagesResponse{
		Valid:        report.Valid,
		ValidCount:   int32(report.ValidCount),   //nolint:gosec // bounded by request size
		InvalidCount: int32(report.InvalidCount), //nolint:gosec // bounded by request size
		Records:      make([]*RecordValidationMsg, 0, len(report.Records)),
	}
	for _, r := range report.Records {
		violations := make([]*ViolationMsg, 0, len(r.Violations))
		for _, v := range r.Violations {
			violations = append(violations, &ViolationMsg{Field: v.Field, Code: v.Code, Message: v.Message})
		}
		resp.Records = append(resp.Records, &RecordValidationMsg{
			Index:      int32(r.Index), //nolint:gosec // bounded by request size
			Valid:      r.Valid,
			Violations: violations,
		})
	}

	return resp, nil
}

func (h *CreditRatingHandler) toStatus(ctx context.Context, msg, poolID string, err error) error {
	switch {
	case model.IsValidationError(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrPoolNotFound):
		return status.Errorf(codes.NotFound, "mortgage pool %s not found", poolID)
	default:
		h.logger.ErrorContext(ctx, msg,
			slog.String("pool_id", poolID),
			slog.String("error", err.Error()),
		)
		return status.Error(codes.Internal, "internal error")
	}
}

func toRecords(msgs []*MortgageMsg) []model.MortgageRecord {
	records := make([]model.MortgageRecord, 0, len(msgs))
	for _, m := range msgs {
		if m == nil {
			m = &MortgageMsg{}
		}
		records = append(records, toRecord(m))
	}
	return records
}

// toRecord maps a message onto a record. Unparseable numbers become type
// errors on the record so validation still checks presence first.
func toRecord(m *MortgageMsg) model.MortgageRecord {
	var rec model.MortgageRecord
	numbers := []struct {
		dst   **decimal.Decimal
		field string
		raw   string
	}{
		{&rec.CreditScore, model.FieldCreditScore, m.CreditScore},
		{&rec.LoanAmount, model.FieldLoanAmount, m.LoanAmount},
		{&rec.PropertyValue, model.FieldPropertyValue, m.PropertyValue},
		{&rec.AnnualIncome, model.FieldAnnualIncome, m.AnnualIncome},
		{&rec.DebtAmount, model.FieldDebtAmount, m.DebtAmount},
	}
	for _, n := range numbers {
		if n.raw == "" {
			continue
		}
		d, reason := model.ParseNumber(n.field, n.raw)
		if reason != "" {
			rec.SetTypeError(n.field, reason)
			continue
		}
		*n.dst = &d
	}
	rec.LoanType = optionalString(m.LoanType)
	rec.PropertyType = optionalString(m.PropertyType)
	return rec
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toCreditRatingMsg(r dto.CreditRatingResponse) *CreditRatingMsg {
	mortgages := make([]*MortgageScoreMsg, 0, len(r.Mortgages))
	for _, m := range r.Mortgages {
		factors := make([]*RiskFactorMsg, 0, len(m.Factors))
		for _, f := range m.Factors {
			factors = append(factors, &RiskFactorMsg{Name: f.Name, Contribution: int32(f.Contribution)}) //nolint:gosec // small constant
		}
		mortgages = append(mortgages, &MortgageScoreMsg{
			Index:       int32(m.Index),       //nolint:gosec // bounded by request size
			CreditScore: int32(m.CreditScore), //nolint:gosec // 300..850
			LTV:         m.LTV,
			DTI:         m.DTI,
			RiskScore:   int32(m.RiskScore), //nolint:gosec // small
			Factors:     factors,
		})
	}

	return &CreditRatingMsg{
		ID:                 r.ID.String(),
		PoolID:             r.PoolID,
		Rating:             r.Rating,
		TotalRiskScore:     int32(r.TotalRiskScore), //nolint:gosec // bounded by request size
		AverageCreditScore: r.AverageCreditScore,
		MortgageCount:      int32(r.MortgageCount), //nolint:gosec // bounded by request size
		AssessedAt:         r.AssessedAt.Format(time.RFC3339),
		Mortgages:          mortgages,
	}
}
