// Package core holds the clinic's domain types: money in minor units,
// reporting periods, ledger enums and the financial snapshot.
//
// All monetary arithmetic happens on int64 cents. Conversion to major
// units (÷100) happens exactly once, when a snapshot is composed.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in integer minor units (cents).
type Money struct {
	Cents int64
}

// Major returns the major-unit value as a float64 for output boundaries.
// Use Cents for all calculations to avoid floating-point drift.
func (m Money) Major() float64 {
	return float64(m.Cents) / 100.0
}

// Validate rejects non-positive amounts. Ledger entries never carry
// zero or negative amounts; signs are implied by the ledger they live in.
func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// MajorToCents converts a major-unit number to cents with half-away-from-zero
// rounding. Used at the API boundary where amounts arrive as JSON numbers.
func MajorToCents(major float64) int64 {
	if major < 0 {
		return -int64(math.Floor(-major*100 + 0.5))
	}
	return int64(math.Floor(major*100 + 0.5))
}

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Accepts both dot (12.34) and
// comma (12,34) separators. Returns an error for invalid formats,
// negative values, or zero amounts.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
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
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}
