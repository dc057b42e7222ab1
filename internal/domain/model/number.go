package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Numbers are accepted only within these bounds so ratio arithmetic stays
// finite. Exponent is the base-10 exponent of the parsed coefficient.
const (
	maxNumberExponent = 64
	maxNumberDigits   = 64
)

// Type error reasons recorded by decoders.
const (
	ReasonNotNumber  = "must be a number"
	ReasonNotString  = "must be a string"
	ReasonNotInteger = "must be an integer"
)

// ParseNumber parses the text of a numeric field. On failure it returns
// the type error reason to record with SetTypeError. credit_score must be
// written as a plain integer, so "750.0" and "7.5e2" are rejected.
func ParseNumber(field, text string) (decimal.Decimal, string) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, ReasonNotNumber
	}
	if field == FieldCreditScore && strings.ContainsAny(text, ".eE") {
		return decimal.Decimal{}, ReasonNotInteger
	}
	return d, ""
}

// outOfRange reports a value too large or too finely scaled to rate.
func outOfRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp > maxNumberExponent || exp < -maxNumberExponent || d.NumDigits() > maxNumberDigits
}
