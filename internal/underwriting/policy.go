package underwriting

// RateTier maps a credit-score floor to an annual interest rate. Tiers are
// checked highest floor first; the first floor at or below the score wins.
type RateTier struct {
	ScoreFloor int
	RatePct    float64
}

// Policy holds the tunable underwriting thresholds. Values are configuration,
// not constants: deployments override them via environment without a code
// change.
type Policy struct {
	// MinScoreFloor rejects any applicant scoring below it, regardless of
	// amount.
	MinScoreFloor int

	// MaxAmountMultiplier caps the requested amount at
	// preApprovedLimit * multiplier.
	MaxAmountMultiplier float64

	// AffordabilityRatio bounds the EMI as a fraction of declared monthly
	// income on the documents-backed path.
	AffordabilityRatio float64

	// RateTiers assigns the annual interest rate by credit-score band.
	RateTiers []RateTier
}

// DefaultPolicy returns the reference policy. The numbers reproduce the
// production approval flows and are a starting configuration, not verified
// ground truth.
func DefaultPolicy() Policy {
	return Policy{
		MinScoreFloor:       680,
		MaxAmountMultiplier: 3.0,
		AffordabilityRatio:  0.5,
		RateTiers: []RateTier{
			{ScoreFloor: 800, RatePct: 10},
			{ScoreFloor: 750, RatePct: 12},
			{ScoreFloor: 700, RatePct: 14},
			{ScoreFloor: 680, RatePct: 16},
		},
	}
}

// RateFor resolves the annual interest rate for a credit score. Scores below
// every tier floor resolve to the lowest tier's rate; callers are expected to
// have applied MinScoreFloor first.
func (p Policy) RateFor(creditScore int) float64 {
	best := RateTier{ScoreFloor: -1}
	for _, tier := range p.RateTiers {
		if creditScore >= tier.ScoreFloor && tier.ScoreFloor > best.ScoreFloor {
			best = tier
		}
	}
	if best.ScoreFloor < 0 && len(p.RateTiers) > 0 {
		lowest := p.RateTiers[0]
		for _, tier := range p.RateTiers {
			if tier.ScoreFloor < lowest.ScoreFloor {
				lowest = tier
			}
		}
		return lowest.RatePct
	}
	return best.RatePct
}
