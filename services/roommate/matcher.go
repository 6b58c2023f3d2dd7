// Package roommate pairs students looking for a shared apartment.
package roommate

import (
	"math"
	"sort"

	"studentbot/models"
)

// MaxMatches caps the number of candidates returned to the seeker.
const MaxMatches = 10

// FindMatches filters the candidate pool against the seeker's preferences
// and returns the compatible profiles, most preferred first, capped at
// MaxMatches. A seeker who is not looking gets an empty result.
func FindMatches(seeker models.Profile, candidates []models.Profile) []models.Profile {
	if !seeker.Roommate.Looking {
		return nil
	}

	matches := make([]models.Profile, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.UserID == seeker.UserID {
			continue
		}
		if !candidate.Roommate.Looking {
			continue
		}
		if !Compatible(seeker, candidate) {
			continue
		}
		matches = append(matches, candidate)
	}

	// Stable: candidates sharing the seeker's field of study come first,
	// original order preserved within each group.
	seekerField := seeker.StudyField()
	sort.SliceStable(matches, func(i, j int) bool {
		return sameField(matches[i], seekerField) && !sameField(matches[j], seekerField)
	})

	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}
	return matches
}

// Compatible applies the hard filters: two-way gender preference, exact
// smoker equality, and budget range overlap.
func Compatible(seeker, candidate models.Profile) bool {
	if !genderAccepts(seeker.Roommate.GenderPreference, candidate.Gender) {
		return false
	}
	if !genderAccepts(candidate.Roommate.GenderPreference, seeker.Gender) {
		return false
	}
	if !smokerMatch(seeker.Roommate.Smoker, candidate.Roommate.Smoker) {
		return false
	}
	return budgetsOverlap(seeker.Roommate, candidate.Roommate)
}

func genderAccepts(pref models.GenderPreference, gender models.Gender) bool {
	switch pref {
	case models.PrefAny, "":
		return true
	default:
		return string(pref) == string(gender)
	}
}

// smokerMatch requires both flags to be present and equal. An absent flag
// never matches an explicit one.
func smokerMatch(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// budgetsOverlap treats a missing minimum as 0 and a missing maximum as
// unbounded, rejecting only disjoint ranges.
func budgetsOverlap(a, b models.RoommatePreferences) bool {
	aMin, aMax := budgetBounds(a)
	bMin, bMax := budgetBounds(b)
	return aMax >= bMin && bMax >= aMin
}

func budgetBounds(p models.RoommatePreferences) (float64, float64) {
	min := 0.0
	if p.BudgetMin != nil {
		min = float64(*p.BudgetMin)
	}
	max := math.Inf(1)
	if p.BudgetMax != nil {
		max = float64(*p.BudgetMax)
	}
	return min, max
}

func sameField(p models.Profile, field string) bool {
	return field != "" && p.StudyField() == field
}
