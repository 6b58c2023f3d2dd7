// Package gamification awards engagement points for user actions.
package gamification

import (
	"context"
	"log/slog"

	"studentbot/core/logger"
)

// Action names recognised by the points table.
const (
	ActionCompleteRegistration = "complete_registration"
	ActionAskQuestion          = "ask_question"
	ActionReceiveAnswer        = "receive_answer"
	ActionSubmitFeedback       = "submit_feedback"
)

var actionPoints = map[string]int{
	ActionCompleteRegistration: 25,
	ActionAskQuestion:          1,
	ActionReceiveAnswer:        2,
	ActionSubmitFeedback:       10,
}

// Ledger persists accumulated points per user.
type Ledger interface {
	AddPoints(ctx context.Context, userID int64, points int) error
}

// Service awards points through the ledger.
type Service struct {
	ledger Ledger
}

// NewService builds the gamification service.
func NewService(ledger Ledger) *Service {
	return &Service{ledger: ledger}
}

// Award grants the points configured for the action. Unknown actions are
// logged and ignored; a ledger failure is logged, not surfaced, because
// points must never block the interaction that earned them.
func (s *Service) Award(ctx context.Context, userID int64, action string) {
	points, ok := actionPoints[action]
	if !ok {
		logger.Warn(ctx, "gamification", "points.unknown_action",
			slog.String("action", action),
		)
		return
	}
	if s.ledger == nil {
		return
	}
	if err := s.ledger.AddPoints(ctx, userID, points); err != nil {
		logger.Error(ctx, "gamification", "points.award",
			slog.Int64("user_id", userID),
			slog.String("action", action),
			slog.Int("points", points),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.Debug(ctx, "gamification", "points.award",
		slog.Int64("user_id", userID),
		slog.String("action", action),
		slog.Int("points", points),
	)
}
