package storage

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studentbot/models"
)

func fullProfile() models.Profile {
	last := "Rossi"
	age := 24
	country := "Iran"
	field := "engineering"
	email := "m.rossi@uni.it"
	budgetMin, budgetMax := 250, 400
	smoker := false
	return models.Profile{
		UserID:       7,
		FirstName:    "Maria",
		LastName:     &last,
		Age:          &age,
		Gender:       models.GenderFemale,
		Country:      &country,
		FieldOfStudy: &field,
		Email:        &email,
		Language:     "it",
		Points:       35,
		Roommate: models.RoommatePreferences{
			Looking:          true,
			BudgetMin:        &budgetMin,
			BudgetMax:        &budgetMax,
			Smoker:           &smoker,
			GenderPreference: models.PrefFemale,
			Notes:            "quiet, early riser",
		},
	}
}

func TestProfileRowRoundTrip(t *testing.T) {
	original := fullProfile()

	got := fromModel(original).toModel()
	assert.Equal(t, original, got)
}

func TestProfileRowMinimal(t *testing.T) {
	original := models.Profile{UserID: 1, FirstName: "Ali", Language: "en"}

	row := fromModel(original)
	assert.False(t, row.LastName.Valid)
	assert.False(t, row.Age.Valid)
	assert.False(t, row.Gender.Valid)
	assert.False(t, row.Smoker.Valid)

	got := row.toModel()
	assert.Nil(t, got.LastName)
	assert.Nil(t, got.Roommate.Smoker)
	// A profile without stored preference reads back as ANY.
	assert.Equal(t, models.PrefAny, got.Roommate.GenderPreference)
}

func TestProfileRowNullableScan(t *testing.T) {
	row := profileRow{
		UserID:    3,
		FirstName: "Sara",
		Language:  "fa",
		Age:       sql.NullInt64{Int64: 22, Valid: true},
		Smoker:    sql.NullBool{Bool: true, Valid: true},
	}

	got := row.toModel()
	require.NotNil(t, got.Age)
	assert.Equal(t, 22, *got.Age)
	require.NotNil(t, got.Roommate.Smoker)
	assert.True(t, *got.Roommate.Smoker)
	assert.Nil(t, got.Roommate.BudgetMin)
}
