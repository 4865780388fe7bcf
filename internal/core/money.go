// Package core holds the client-side domain model and the view-model
// aggregation over server data.
//
// This file contains amount parsing and formatting. The server reports
// amounts as JSON numbers or decimal strings; the client keeps them as
// plain floats and only fixes precision at display time.
package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Amount is a monetary value in currency units. Summation uses ordinary
// floating addition; display truncates to two decimal places.
type Amount float64

// UnmarshalJSON accepts both a JSON number and a quoted decimal string,
// since the server is free to return either.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var q string
		if err := json.Unmarshal(data, &q); err != nil {
			return ErrInvalidAmount
		}
		s = strings.TrimSpace(q)
	}
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ErrInvalidAmount
	}
	*a = Amount(v)
	return nil
}

// Display renders the amount with exactly two decimal places, truncating
// (not rounding) extra precision.
func (a Amount) Display() string {
	v := float64(a)
	neg := v < 0
	if neg {
		v = -v
	}
	cents := math.Trunc(v*100 + 1e-9)
	s := fmt.Sprintf("%d.%02d", int64(cents)/100, int64(cents)%100)
	if neg {
		return "-" + s
	}
	return s
}

// Abs returns the absolute value.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// ParseAmount converts a user-entered decimal string to an Amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// performs half-up rounding on the third decimal place. Only positive
// values are accepted; signs, zero and malformed input return
// ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("12.344") -> 12.34, nil (rounds down)
//	ParseAmount("12.345") -> 12.35, nil (rounds up)
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64 = 0
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 {
				if fracPart[2] >= '5' {
					fracCents++
				}
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return Amount(float64(cents) / 100.0), nil
}
