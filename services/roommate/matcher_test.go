package roommate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"studentbot/models"
)

func boolPtr(v bool) *bool    { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func looker(id int64, prefs models.RoommatePreferences) models.Profile {
	prefs.Looking = true
	return models.Profile{UserID: id, FirstName: fmt.Sprintf("user%d", id), Roommate: prefs}
}

func basePrefs() models.RoommatePreferences {
	return models.RoommatePreferences{
		BudgetMin:        intPtr(250),
		BudgetMax:        intPtr(350),
		Smoker:           boolPtr(false),
		GenderPreference: models.PrefAny,
	}
}

func TestFindMatchesNotLooking(t *testing.T) {
	seeker := models.Profile{UserID: 1}
	candidates := []models.Profile{looker(2, basePrefs())}

	assert.Nil(t, FindMatches(seeker, candidates))
}

func TestFindMatchesExcludesSelfAndNonLookers(t *testing.T) {
	seeker := looker(1, basePrefs())
	notLooking := looker(3, basePrefs())
	notLooking.Roommate.Looking = false

	matches := FindMatches(seeker, []models.Profile{seeker, notLooking, looker(2, basePrefs())})
	assert.Len(t, matches, 1)
	assert.Equal(t, int64(2), matches[0].UserID)
}

func TestCompatibleGenderIsTwoWay(t *testing.T) {
	seeker := looker(1, basePrefs())
	seeker.Gender = models.GenderMale
	seeker.Roommate.GenderPreference = models.PrefFemale

	candidate := looker(2, basePrefs())
	candidate.Gender = models.GenderFemale
	candidate.Roommate.GenderPreference = models.PrefFemale

	// Seeker accepts the candidate but not vice versa.
	assert.False(t, Compatible(seeker, candidate))

	candidate.Roommate.GenderPreference = models.PrefMale
	assert.True(t, Compatible(seeker, candidate))

	// Empty preference counts as ANY.
	candidate.Roommate.GenderPreference = ""
	assert.True(t, Compatible(seeker, candidate))
}

func TestCompatibleSmokerFlags(t *testing.T) {
	seeker := looker(1, basePrefs())
	candidate := looker(2, basePrefs())

	candidate.Roommate.Smoker = boolPtr(true)
	assert.False(t, Compatible(seeker, candidate), "opposite flags")

	candidate.Roommate.Smoker = nil
	assert.False(t, Compatible(seeker, candidate), "an absent flag never matches an explicit one")

	seeker.Roommate.Smoker = nil
	assert.True(t, Compatible(seeker, candidate), "both absent match")
}

func TestCompatibleBudgetOverlap(t *testing.T) {
	seeker := looker(1, basePrefs()) // 250-350

	overlapping := looker(2, basePrefs())
	overlapping.Roommate.BudgetMin = intPtr(300)
	overlapping.Roommate.BudgetMax = intPtr(400)
	assert.True(t, Compatible(seeker, overlapping))

	touching := looker(3, basePrefs())
	touching.Roommate.BudgetMin = intPtr(350)
	touching.Roommate.BudgetMax = intPtr(500)
	assert.True(t, Compatible(seeker, touching), "shared boundary counts as overlap")

	disjoint := looker(4, basePrefs())
	disjoint.Roommate.BudgetMin = intPtr(400)
	disjoint.Roommate.BudgetMax = intPtr(500)
	assert.False(t, Compatible(seeker, disjoint))

	unbounded := looker(5, basePrefs())
	unbounded.Roommate.BudgetMin = nil
	unbounded.Roommate.BudgetMax = nil
	assert.True(t, Compatible(seeker, unbounded), "missing bounds mean no constraint")
}

func TestFindMatchesSameFieldFirst(t *testing.T) {
	seeker := looker(1, basePrefs())
	seeker.FieldOfStudy = strPtr("engineering")

	law := looker(2, basePrefs())
	law.FieldOfStudy = strPtr("law")
	eng := looker(3, basePrefs())
	eng.FieldOfStudy = strPtr("engineering")
	none := looker(4, basePrefs())

	matches := FindMatches(seeker, []models.Profile{law, eng, none})
	assert.Equal(t, int64(3), matches[0].UserID)
	// The rest keep their original order.
	assert.Equal(t, int64(2), matches[1].UserID)
	assert.Equal(t, int64(4), matches[2].UserID)
}

func TestFindMatchesCapped(t *testing.T) {
	seeker := looker(1, basePrefs())
	candidates := make([]models.Profile, 0, MaxMatches+5)
	for i := 0; i < MaxMatches+5; i++ {
		candidates = append(candidates, looker(int64(100+i), basePrefs()))
	}

	matches := FindMatches(seeker, candidates)
	assert.Len(t, matches, MaxMatches)
}
