package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"studentbot/models"
)

// StoryRepository stores user-submitted success stories awaiting moderation.
type StoryRepository struct {
	db *sqlx.DB
}

// NewStoryRepository builds the repository.
func NewStoryRepository(db *sqlx.DB) *StoryRepository {
	return &StoryRepository{db: db}
}

// Save inserts a new story pending approval.
func (r *StoryRepository) Save(ctx context.Context, story models.SuccessStory) error {
	query := `
		INSERT INTO success_stories (user_id, story_text, approved)
		VALUES ($1, $2, FALSE)`
	if _, err := r.db.ExecContext(ctx, query, story.UserID, story.StoryText); err != nil {
		return fmt.Errorf("stories: save: %w", err)
	}
	return nil
}

// Approved returns the latest approved stories, newest first.
func (r *StoryRepository) Approved(ctx context.Context, limit int) ([]models.SuccessStory, error) {
	if limit <= 0 {
		limit = 5
	}
	var stories []models.SuccessStory
	query := `
		SELECT id, user_id, story_text, approved, created_at
		FROM success_stories
		WHERE approved = TRUE
		ORDER BY created_at DESC
		LIMIT $1`
	if err := r.db.SelectContext(ctx, &stories, query, limit); err != nil {
		return nil, fmt.Errorf("stories: approved: %w", err)
	}
	return stories, nil
}

// Approve marks a story as published.
func (r *StoryRepository) Approve(ctx context.Context, storyID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE success_stories SET approved = TRUE WHERE id = $1`, storyID)
	if err != nil {
		return fmt.Errorf("stories: approve: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
