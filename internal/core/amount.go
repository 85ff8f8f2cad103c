// Package core defines the ledger record types and the amount parsing
// rules applied at the write boundary.
//
// Amounts ride the wire as plain JSON numbers and stay float64
// throughout; no currency rounding policy is enforced. Display
// formatting is a presentation concern.
package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseAmount parses a user-supplied amount string. It accepts both
// dot and comma decimal separators and rejects negatives, NaN and
// infinities. Whether zero is acceptable depends on the record type,
// so zero passes here and Validate decides.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// CoerceAmount converts a field-edit value to a number, substituting 0
// for anything unparsable. Inline edits never reject input.
func CoerceAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// CoerceSaving converts a savings-editor value to a whole number with
// 0 substituted for garbage, mirroring the integer coercion of the
// savings form.
func CoerceSaving(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Trunc(v)
}

// CoerceSavingValue applies the savings coercion to a decoded JSON
// value. Clients send amounts as either strings or numbers and both
// spellings must land on the same whole number.
func CoerceSavingValue(v any) float64 {
	switch t := v.(type) {
	case string:
		return CoerceSaving(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return math.Trunc(t)
	case json.Number:
		return CoerceSaving(t.String())
	default:
		return 0
	}
}
