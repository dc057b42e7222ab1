package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/dto"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/application/usecase"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/infrastructure/codec"
)

// maxBodyBytes caps request bodies; a full pool of MaxMortgages fits well within it.
const maxBodyBytes = 8 << 20

// Error codes written in the "code" field of error bodies.
const (
	CodeMalformedJSON      = "malformed_json"
	CodeInvalidEnvelope    = "invalid_envelope"
	CodePoolNotFound       = "pool_not_found"
	CodeStorageUnavailable = "storage_unavailable"
	CodeInternal           = "internal"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RatingHandler exposes the rating use cases over HTTP.
type RatingHandler struct {
	ratePool       *usecase.RateMortgagePool
	rateStoredPool *usecase.RateStoredPool
	validate       *usecase.ValidateMortgages
	logger         *slog.Logger
}

// NewRatingHandler creates the rating HTTP handler. rateStoredPool may be nil
// when no pool storage is configured.
func NewRatingHandler(
	ratePool *usecase.RateMortgagePool,
	rateStoredPool *usecase.RateStoredPool,
	validate *usecase.ValidateMortgages,
	logger *slog.Logger,
) *RatingHandler {
	return &RatingHandler{
		ratePool:       ratePool,
		rateStoredPool: rateStoredPool,
		validate:       validate,
		logger:         logger,
	}
}

// RegisterRoutes attaches the rating routes to the given mux.
func (h *RatingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/ratings", h.ratePoolHandler)
	mux.HandleFunc("GET /v1/pools/{poolID}/rating", h.rateStoredPoolHandler)
	mux.HandleFunc("POST /v1/validations", h.validateHandler)
}

func (h *RatingHandler) ratePoolHandler(w http.ResponseWriter, r *http.Request) {
	pool, err := codec.DecodePool(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, r, "", err)
		return
	}

	result, err := h.ratePool.Execute(r.Context(), dto.RatePoolRequest{
		PoolID:    pool.PoolID,
		Mortgages: pool.Mortgages,
	})
	if err != nil {
		h.writeError(w, r, pool.PoolID, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *RatingHandler) rateStoredPoolHandler(w http.ResponseWriter, r *http.Request) {
	if h.rateStoredPool == nil {
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error: "pool storage is not configured",
			Code:  CodeStorageUnavailable,
		})
		return
	}

	poolID := r.PathValue("poolID")
	result, err := h.rateStoredPool.Execute(r.Context(), dto.RateStoredPoolRequest{PoolID: poolID})
	if err != nil {
		h.writeError(w, r, poolID, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *RatingHandler) validateHandler(w http.ResponseWriter, r *http.Request) {
	pool, err := codec.DecodePool(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, r, "", err)
		return
	}

	writeJSON(w, http.StatusOK, h.validate.Execute(r.Context(), dto.ValidateRequest{Mortgages: pool.Mortgages}))
}

func (h *RatingHandler) writeError(w http.ResponseWriter, r *http.Request, poolID string, err error) {
	var maxBytes *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytes):
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large", Code: CodeInvalidEnvelope})
	case errors.Is(err, codec.ErrMalformedJSON):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON format", Code: CodeMalformedJSON})
	case errors.Is(err, codec.ErrInvalidEnvelope):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidEnvelope})
	case model.IsValidationError(err):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: usecase.RejectionReason(err)})
	case errors.Is(err, model.ErrPoolNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "mortgage pool " + poolID + " not found", Code: CodePoolNotFound})
	default:
		h.logger.ErrorContext(r.Context(), "rating request failed",
			slog.String("path", r.URL.Path),
			slog.String("pool_id", poolID),
			slog.String("error", err.Error()),
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: CodeInternal})
	}
}
