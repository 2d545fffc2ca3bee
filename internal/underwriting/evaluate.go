// Package underwriting classifies a financing request as approved,
// pending-documentation, or rejected. Evaluation is a pure function over the
// risk profile and requested terms; the same inputs always produce the same
// outcome, so callers may re-evaluate freely.
package underwriting

import (
	"loanflow/internal/emi"
)

// Rejection and documents-required reasons surfaced to the shopper.
const (
	ReasonScoreBelowMinimum  = "credit score below minimum"
	ReasonAmountExceedsLimit = "requested amount exceeds maximum limit"
	ReasonSalaryProofNeeded  = "salary proof needed"
	ReasonInsufficientIncome = "insufficient declared income for requested EMI"
)

// Evaluate applies the policy rule chain in fixed order; the first matching
// rule wins.
//
//  1. Score below floor: reject.
//  2. Amount above preApprovedLimit * multiplier: reject.
//  3. Amount within preApprovedLimit: approve at the tier rate.
//  4. No declared income on file: require salary proof.
//  5. Declared income present: approve when the EMI fits the affordability
//     ratio, reject otherwise.
//
// declaredIncome is the proof-backed figure from the session, nil until the
// shopper has uploaded one. Returns an error only for invalid terms, never
// for a policy rejection.
func Evaluate(p Policy, profile RiskProfile, requestedAmount int64, tenureMonths int, declaredIncome *int64) (Outcome, error) {
	if profile.CreditScore < p.MinScoreFloor {
		return Outcome{Status: StatusRejected, Reason: ReasonScoreBelowMinimum}, nil
	}

	maxAmount := int64(float64(profile.PreApprovedLimit) * p.MaxAmountMultiplier)
	if requestedAmount > maxAmount {
		return Outcome{Status: StatusRejected, Reason: ReasonAmountExceedsLimit}, nil
	}

	rate := p.RateFor(profile.CreditScore)

	if requestedAmount <= profile.PreApprovedLimit {
		return approve(requestedAmount, tenureMonths, rate)
	}

	if declaredIncome == nil {
		return Outcome{Status: StatusDocumentsRequired, Reason: ReasonSalaryProofNeeded}, nil
	}

	installment, err := emi.Compute(requestedAmount, rate, tenureMonths)
	if err != nil {
		return Outcome{}, err
	}
	affordable := int64(float64(*declaredIncome) * p.AffordabilityRatio)
	if installment <= affordable {
		return Outcome{
			Status: StatusApproved,
			Terms:  &Terms{Amount: requestedAmount, TenureMonths: tenureMonths, InterestRatePct: rate, EMI: installment},
		}, nil
	}
	return Outcome{Status: StatusRejected, Reason: ReasonInsufficientIncome}, nil
}

func approve(amount int64, tenureMonths int, rate float64) (Outcome, error) {
	installment, err := emi.Compute(amount, rate, tenureMonths)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Status: StatusApproved,
		Terms:  &Terms{Amount: amount, TenureMonths: tenureMonths, InterestRatePct: rate, EMI: installment},
	}, nil
}
