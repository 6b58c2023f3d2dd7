// Package storage implements the PostgreSQL repositories and the JSON
// knowledge-base loader.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"studentbot/models"
)

// ErrNotFound reports a lookup for a row that does not exist.
var ErrNotFound = errors.New("storage: not found")

// ProfileRepository stores student profiles and their roommate preferences
// as typed columns; filters run as structured queries, not string matching.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository builds the repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// profileRow is the flat scan target for the profiles table.
type profileRow struct {
	UserID           int64          `db:"user_id"`
	FirstName        string         `db:"first_name"`
	LastName         sql.NullString `db:"last_name"`
	Age              sql.NullInt64  `db:"age"`
	Gender           sql.NullString `db:"gender"`
	Country          sql.NullString `db:"country"`
	FieldOfStudy     sql.NullString `db:"field_of_study"`
	Email            sql.NullString `db:"email"`
	Language         string         `db:"language"`
	Points           int            `db:"points"`
	Looking          bool           `db:"looking"`
	BudgetMin        sql.NullInt64  `db:"budget_min"`
	BudgetMax        sql.NullInt64  `db:"budget_max"`
	Smoker           sql.NullBool   `db:"smoker"`
	GenderPreference sql.NullString `db:"gender_preference"`
	Notes            string         `db:"notes"`
}

const profileColumns = `user_id, first_name, last_name, age, gender, country,
	field_of_study, email, language, points, looking, budget_min, budget_max,
	smoker, gender_preference, notes`

func (r profileRow) toModel() models.Profile {
	p := models.Profile{
		UserID:    r.UserID,
		FirstName: r.FirstName,
		Language:  r.Language,
		Points:    r.Points,
		Roommate: models.RoommatePreferences{
			Looking: r.Looking,
			Notes:   r.Notes,
		},
	}
	if r.LastName.Valid {
		v := r.LastName.String
		p.LastName = &v
	}
	if r.Age.Valid {
		v := int(r.Age.Int64)
		p.Age = &v
	}
	if r.Gender.Valid {
		p.Gender = models.Gender(r.Gender.String)
	}
	if r.Country.Valid {
		v := r.Country.String
		p.Country = &v
	}
	if r.FieldOfStudy.Valid {
		v := r.FieldOfStudy.String
		p.FieldOfStudy = &v
	}
	if r.Email.Valid {
		v := r.Email.String
		p.Email = &v
	}
	if r.BudgetMin.Valid {
		v := int(r.BudgetMin.Int64)
		p.Roommate.BudgetMin = &v
	}
	if r.BudgetMax.Valid {
		v := int(r.BudgetMax.Int64)
		p.Roommate.BudgetMax = &v
	}
	if r.Smoker.Valid {
		v := r.Smoker.Bool
		p.Roommate.Smoker = &v
	}
	if r.GenderPreference.Valid {
		p.Roommate.GenderPreference = models.GenderPreference(r.GenderPreference.String)
	} else {
		p.Roommate.GenderPreference = models.PrefAny
	}
	return p
}

// Get loads a profile by Telegram user id.
func (r *ProfileRepository) Get(ctx context.Context, userID int64) (models.Profile, error) {
	var row profileRow
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, ErrNotFound
		}
		return models.Profile{}, fmt.Errorf("profiles: get: %w", err)
	}
	return row.toModel(), nil
}

// Save upserts the full profile, roommate preferences included.
func (r *ProfileRepository) Save(ctx context.Context, p models.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES (:user_id, :first_name, :last_name, :age, :gender, :country,
			:field_of_study, :email, :language, :points, :looking, :budget_min,
			:budget_max, :smoker, :gender_preference, :notes)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			country = EXCLUDED.country,
			field_of_study = EXCLUDED.field_of_study,
			email = EXCLUDED.email,
			language = EXCLUDED.language,
			looking = EXCLUDED.looking,
			budget_min = EXCLUDED.budget_min,
			budget_max = EXCLUDED.budget_max,
			smoker = EXCLUDED.smoker,
			gender_preference = EXCLUDED.gender_preference,
			notes = EXCLUDED.notes,
			updated_at = now()`
	if _, err := r.db.NamedExecContext(ctx, query, fromModel(p)); err != nil {
		return fmt.Errorf("profiles: save: %w", err)
	}
	return nil
}

func fromModel(p models.Profile) profileRow {
	row := profileRow{
		UserID:    p.UserID,
		FirstName: p.FirstName,
		Language:  p.Language,
		Points:    p.Points,
		Looking:   p.Roommate.Looking,
		Notes:     p.Roommate.Notes,
	}
	if p.LastName != nil {
		row.LastName = sql.NullString{String: *p.LastName, Valid: true}
	}
	if p.Age != nil {
		row.Age = sql.NullInt64{Int64: int64(*p.Age), Valid: true}
	}
	if p.Gender != "" {
		row.Gender = sql.NullString{String: string(p.Gender), Valid: true}
	}
	if p.Country != nil {
		row.Country = sql.NullString{String: *p.Country, Valid: true}
	}
	if p.FieldOfStudy != nil {
		row.FieldOfStudy = sql.NullString{String: *p.FieldOfStudy, Valid: true}
	}
	if p.Email != nil {
		row.Email = sql.NullString{String: *p.Email, Valid: true}
	}
	if p.Roommate.BudgetMin != nil {
		row.BudgetMin = sql.NullInt64{Int64: int64(*p.Roommate.BudgetMin), Valid: true}
	}
	if p.Roommate.BudgetMax != nil {
		row.BudgetMax = sql.NullInt64{Int64: int64(*p.Roommate.BudgetMax), Valid: true}
	}
	if p.Roommate.Smoker != nil {
		row.Smoker = sql.NullBool{Bool: *p.Roommate.Smoker, Valid: true}
	}
	if p.Roommate.GenderPreference != "" {
		row.GenderPreference = sql.NullString{String: string(p.Roommate.GenderPreference), Valid: true}
	}
	return row
}

// UpdateField applies a single tagged profile change. The field enum and the
// value type are validated here, at the storage boundary.
func (r *ProfileRepository) UpdateField(ctx context.Context, userID int64, field models.ProfileField, value any) error {
	column := ""
	switch field {
	case models.FieldFirstName, models.FieldLastName, models.FieldCountry,
		models.FieldFieldOfStudy, models.FieldEmail:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("profiles: field %s expects text", field)
		}
		column = string(field)
	case models.FieldAge:
		if _, ok := value.(int); !ok {
			return fmt.Errorf("profiles: field %s expects an integer", field)
		}
		column = string(field)
	default:
		return fmt.Errorf("profiles: unknown field %q", field)
	}

	query := fmt.Sprintf(`UPDATE profiles SET %s = $1, updated_at = now() WHERE user_id = $2`, column)
	res, err := r.db.ExecContext(ctx, query, value, userID)
	if err != nil {
		return fmt.Errorf("profiles: update %s: %w", field, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Lookers returns all profiles with an active roommate search, excluding the
// seeker, in stable insertion order.
func (r *ProfileRepository) Lookers(ctx context.Context, excludeUserID int64) ([]models.Profile, error) {
	var rows []profileRow
	query := `SELECT ` + profileColumns + `
		FROM profiles
		WHERE looking = TRUE AND user_id <> $1
		ORDER BY created_at, user_id`
	if err := r.db.SelectContext(ctx, &rows, query, excludeUserID); err != nil {
		return nil, fmt.Errorf("profiles: lookers: %w", err)
	}
	profiles := make([]models.Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, row.toModel())
	}
	return profiles, nil
}

// AddPoints increments the gamification points counter.
func (r *ProfileRepository) AddPoints(ctx context.Context, userID int64, points int) error {
	query := `UPDATE profiles SET points = points + $1, updated_at = now() WHERE user_id = $2`
	res, err := r.db.ExecContext(ctx, query, points, userID)
	if err != nil {
		return fmt.Errorf("profiles: add points: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
