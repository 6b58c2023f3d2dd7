// Package isee computes the Italian ISEE financial indicator used to gate
// scholarship eligibility tiers.
package isee

import "errors"

// Threshold is the reference ISEE value used to derive the eligibility
// percentage.
const Threshold = 23000.0

// Status is a scholarship eligibility tier.
type Status string

const (
	StatusFull    Status = "FULL"
	StatusMedium  Status = "MEDIUM"
	StatusPartial Status = "PARTIAL"
	StatusNone    Status = "NONE"
)

// ErrZeroCoefficient reports an input combination that would divide by zero.
// The coefficient table cannot produce zero, but the guard keeps malformed
// input from crashing the calculation.
var ErrZeroCoefficient = errors.New("isee: family coefficient is zero")

var familyCoefficients = map[int]float64{
	1: 1.0,
	2: 1.57,
	3: 2.04,
	4: 2.46,
	5: 2.85,
}

// FamilyCoefficient returns the equivalence coefficient for a household of
// the given size. Households larger than five extrapolate at 0.35 per extra
// member.
func FamilyCoefficient(members int) float64 {
	if c, ok := familyCoefficients[members]; ok {
		return c
	}
	return 2.85 + 0.35*float64(members-5)
}

// Result carries the calculated indicator and its eligibility tier.
type Result struct {
	ISEE       float64
	Percentage float64
	Status     Status
}

// Calculate computes the ISEE value from yearly income (EUR), owned property
// size (square meters), and household member count.
func Calculate(income, propertySize float64, members int) (Result, error) {
	coefficient := FamilyCoefficient(members)
	if coefficient == 0 {
		return Result{}, ErrZeroCoefficient
	}

	propertyValue := propertySize * 500
	value := (income + propertyValue*0.2) / coefficient
	percentage := value / Threshold * 100

	return Result{
		ISEE:       value,
		Percentage: percentage,
		Status:     StatusFor(percentage),
	}, nil
}

// StatusFor partitions the percentage scale into the four eligibility bands.
// Boundaries are closed on the lower band: exactly 55 is still FULL.
func StatusFor(percentage float64) Status {
	switch {
	case percentage <= 55:
		return StatusFull
	case percentage <= 71.5:
		return StatusMedium
	case percentage <= 100:
		return StatusPartial
	default:
		return StatusNone
	}
}
