package entities

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ToMinorUnits converts a major-unit price (euros) to integer cents.
//
// Rounding rule: half-up on the shortest decimal representation of the
// float, so 10.005 becomes 1001 even though its binary value is slightly
// below 10.005. Negative, NaN and infinite amounts are rejected.
func ToMinorUnits(major float64) (int64, error) {
	if major < 0 || math.IsNaN(major) || math.IsInf(major, 0) {
		return 0, ErrInvalidAmount
	}

	s := strconv.FormatFloat(major, 'f', -1, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")
	fracPart += "000"

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents, _ := strconv.ParseInt(fracPart[:2], 10, 64)
	if fracPart[2] >= '5' {
		cents++
	}

	if units > (math.MaxInt64-cents)/100 {
		return 0, ErrInvalidAmount
	}
	return units*100 + cents, nil
}

// FromMinorUnits is the inverse used only for presentation and for
// providers that take decimal amounts.
func FromMinorUnits(minor int64) float64 {
	return float64(minor) / 100
}
