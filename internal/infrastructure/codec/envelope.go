// Package codec reads and writes the JSON mortgage envelope
// {"pool_id": "...", "mortgages": [{...}, ...]} shared by the CLI, the REST
// API and the Kafka request topic.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"

	"github.com/yashsarjekar/rmbs-credit-evaluator/internal/domain/model"
)

// MaxMortgages bounds the size of a single pool.
const MaxMortgages = 10000

var (
	json     = jsoniter.ConfigCompatibleWithStandardLibrary         //nolint:gochecknoglobals // skip
	validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip
)

var (
	// ErrMalformedJSON is returned when the payload is not valid JSON.
	ErrMalformedJSON = errors.New("malformed JSON")
	// ErrInvalidEnvelope is returned when valid JSON lacks a mortgages list.
	ErrInvalidEnvelope = errors.New("invalid mortgage envelope")
)

type envelope struct {
	PoolID    string                `json:"pool_id" validate:"max=64"`
	Mortgages []jsoniter.RawMessage `json:"mortgages" validate:"required,max=10000"`
}

// Pool is a decoded envelope.
type Pool struct {
	PoolID    string
	Mortgages []model.MortgageRecord
}

// DecodeEnvelope reads an envelope and returns its mortgage records.
func DecodeEnvelope(r io.Reader) ([]model.MortgageRecord, error) {
	p, err := DecodePool(r)
	if err != nil {
		return nil, err
	}
	return p.Mortgages, nil
}

// DecodePool reads an envelope including its optional pool id.
//
// A field that is absent or null is left nil on the record so the validator
// reports it as missing. A field of the wrong JSON type is recorded on the
// record with SetTypeError and reported by the validator after presence.
// Only a mortgage that is not a JSON object fails decoding.
func DecodePool(r io.Reader) (Pool, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Pool{}, fmt.Errorf("read envelope: %w", err)
	}
	if !json.Valid(data) {
		return Pool{}, ErrMalformedJSON
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Pool{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	if err := validate.Struct(env); err != nil {
		return Pool{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	records := make([]model.MortgageRecord, 0, len(env.Mortgages))
	for i, raw := range env.Mortgages {
		rec, err := decodeMortgage(raw)
		if err != nil {
			return Pool{}, &model.RecordError{Index: i, Err: err}
		}
		records = append(records, rec)
	}

	return Pool{PoolID: env.PoolID, Mortgages: records}, nil
}

func decodeMortgage(raw jsoniter.RawMessage) (model.MortgageRecord, error) {
	var fields map[string]jsoniter.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return model.MortgageRecord{}, fmt.Errorf("%w: mortgage must be an object", ErrInvalidEnvelope)
	}

	var rec model.MortgageRecord
	numbers := []struct {
		dst   **decimal.Decimal
		field string
	}{
		{&rec.CreditScore, model.FieldCreditScore},
		{&rec.LoanAmount, model.FieldLoanAmount},
		{&rec.PropertyValue, model.FieldPropertyValue},
		{&rec.AnnualIncome, model.FieldAnnualIncome},
		{&rec.DebtAmount, model.FieldDebtAmount},
	}
	for _, n := range numbers {
		v, reason := decodeNumber(n.field, fields[n.field])
		if reason != "" {
			rec.SetTypeError(n.field, reason)
			continue
		}
		*n.dst = v
	}

	strs := []struct {
		dst   **string
		field string
	}{
		{&rec.LoanType, model.FieldLoanType},
		{&rec.PropertyType, model.FieldPropertyType},
	}
	for _, f := range strs {
		v, ok := decodeString(fields[f.field])
		if !ok {
			rec.SetTypeError(f.field, model.ReasonNotString)
			continue
		}
		*f.dst = v
	}
	return rec, nil
}

func isNull(raw jsoniter.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// decodeNumber returns nil for an absent field, or the type error reason
// when the value is not a JSON number the model accepts.
func decodeNumber(field string, raw jsoniter.RawMessage) (*decimal.Decimal, string) {
	if isNull(raw) {
		return nil, ""
	}
	if json.Get(raw).ValueType() != jsoniter.NumberValue {
		return nil, model.ReasonNotNumber
	}
	d, reason := model.ParseNumber(field, string(bytes.TrimSpace(raw)))
	if reason != "" {
		return nil, reason
	}
	return &d, ""
}

func decodeString(raw jsoniter.RawMessage) (*string, bool) {
	if isNull(raw) {
		return nil, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return &s, true
}

// ---------------------------------------------------------------------------
// Encoding
// ---------------------------------------------------------------------------

// number marshals a decimal as a bare JSON number.
type number decimal.Decimal

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

type wireMortgage struct {
	CreditScore   *number `json:"credit_score,omitempty"`
	LoanAmount    *number `json:"loan_amount,omitempty"`
	PropertyValue *number `json:"property_value,omitempty"`
	AnnualIncome  *number `json:"annual_income,omitempty"`
	DebtAmount    *number `json:"debt_amount,omitempty"`
	LoanType      *string `json:"loan_type,omitempty"`
	PropertyType  *string `json:"property_type,omitempty"`
}

type wireEnvelope struct {
	PoolID    string         `json:"pool_id,omitempty"`
	Mortgages []wireMortgage `json:"mortgages"`
}

func toNumber(d *decimal.Decimal) *number {
	if d == nil {
		return nil
	}
	n := number(*d)
	return &n
}

// EncodeEnvelope writes records in the envelope shape DecodePool reads.
// Absent fields are omitted.
func EncodeEnvelope(w io.Writer, poolID string, records []model.MortgageRecord) error {
	env := wireEnvelope{PoolID: poolID, Mortgages: make([]wireMortgage, 0, len(records))}
	for _, r := range records {
		env.Mortgages = append(env.Mortgages, wireMortgage{
			CreditScore:   toNumber(r.CreditScore),
			LoanAmount:    toNumber(r.LoanAmount),
			PropertyValue: toNumber(r.PropertyValue),
			AnnualIncome:  toNumber(r.AnnualIncome),
			DebtAmount:    toNumber(r.DebtAmount),
			LoanType:      r.LoanType,
			PropertyType:  r.PropertyType,
		})
	}
	if err := json.NewEncoder(w).Encode(env); err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return nil
}
