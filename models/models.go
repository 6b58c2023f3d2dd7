// Package models defines the domain entities shared between services,
// storage, and handlers.
package models

import "time"

// Gender enumerates profile gender values.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// GenderPreference enumerates the roommate gender preference values.
type GenderPreference string

const (
	PrefMale   GenderPreference = "MALE"
	PrefFemale GenderPreference = "FEMALE"
	PrefAny    GenderPreference = "ANY"
)

// RoommatePreferences captures the roommate-search subset of a profile.
// Pointer fields distinguish "not provided" from zero values; the matcher
// treats an absent smoker flag as incompatible with any explicit flag.
type RoommatePreferences struct {
	Looking          bool             `db:"looking"`
	BudgetMin        *int             `db:"budget_min"`
	BudgetMax        *int             `db:"budget_max"`
	Smoker           *bool            `db:"smoker"`
	GenderPreference GenderPreference `db:"gender_preference"`
	Notes            string           `db:"notes"`
}

// Profile is a registered student profile.
type Profile struct {
	UserID       int64   `db:"user_id"`
	FirstName    string  `db:"first_name"`
	LastName     *string `db:"last_name"`
	Age          *int    `db:"age"`
	Gender       Gender  `db:"gender"`
	Country      *string `db:"country"`
	FieldOfStudy *string `db:"field_of_study"`
	Email        *string `db:"email"`
	Language     string  `db:"language"`
	Points       int     `db:"points"`

	Roommate RoommatePreferences
}

// StudyField returns the field of study or an empty string when unset.
func (p Profile) StudyField() string {
	if p.FieldOfStudy == nil {
		return ""
	}
	return *p.FieldOfStudy
}

// ProfileField identifies a profile attribute in a tagged update.
type ProfileField string

const (
	FieldFirstName    ProfileField = "first_name"
	FieldLastName     ProfileField = "last_name"
	FieldAge          ProfileField = "age"
	FieldCountry      ProfileField = "country"
	FieldFieldOfStudy ProfileField = "field_of_study"
	FieldEmail        ProfileField = "email"
)

// EditableFields lists the profile attributes a user may change.
var EditableFields = []ProfileField{
	FieldFirstName, FieldLastName, FieldAge,
	FieldCountry, FieldFieldOfStudy, FieldEmail,
}

// KnowledgeItem is one curated question/answer pair.
type KnowledgeItem struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// SuccessStory is a user-submitted story held for moderation.
type SuccessStory struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	StoryText string    `db:"story_text"`
	Approved  bool      `db:"approved"`
	CreatedAt time.Time `db:"created_at"`
}
