// Package emi computes equated monthly installments for reducing-balance
// loans. Amounts are whole rupees.
package emi

import (
	"math"

	dErrors "loanflow/pkg/domain-errors"
)

// AllowedTenures is the enumerated set of repayment durations offered at
// checkout, in months.
var AllowedTenures = []int{3, 6, 12, 18, 24, 36}

// ValidTenure reports whether tenureMonths is one of the offered durations.
func ValidTenure(tenureMonths int) bool {
	for _, t := range AllowedTenures {
		if t == tenureMonths {
			return true
		}
	}
	return false
}

// Compute returns the monthly installment for a reducing-balance loan,
// rounded half-up to the nearest rupee.
//
//	r = annualRatePct / 12 / 100
//	emi = principal * r * (1+r)^n / ((1+r)^n - 1)
//
// A zero rate degrades to principal/tenure, where the general formula is
// undefined.
func Compute(principal int64, annualRatePct float64, tenureMonths int) (int64, error) {
	if principal <= 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "principal must be positive")
	}
	if annualRatePct < 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "interest rate must not be negative")
	}
	if !ValidTenure(tenureMonths) {
		return 0, dErrors.New(dErrors.CodeValidation, "tenure is not an offered duration")
	}

	if annualRatePct == 0 {
		return roundHalfUp(float64(principal) / float64(tenureMonths)), nil
	}

	r := annualRatePct / 12 / 100
	factor := math.Pow(1+r, float64(tenureMonths))
	raw := float64(principal) * r * factor / (factor - 1)
	return roundHalfUp(raw), nil
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
