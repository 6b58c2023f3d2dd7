package gamification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeLedger struct {
	userID int64
	points int
	calls  int
	err    error
}

func (l *fakeLedger) AddPoints(_ context.Context, userID int64, points int) error {
	l.calls++
	l.userID = userID
	l.points = points
	return l.err
}

func TestAwardKnownActions(t *testing.T) {
	tests := []struct {
		action string
		points int
	}{
		{ActionCompleteRegistration, 25},
		{ActionAskQuestion, 1},
		{ActionReceiveAnswer, 2},
		{ActionSubmitFeedback, 10},
	}
	for _, tt := range tests {
		ledger := &fakeLedger{}
		svc := NewService(ledger)

		svc.Award(context.Background(), 42, tt.action)

		assert.Equalf(t, 1, ledger.calls, "action %s", tt.action)
		assert.Equal(t, int64(42), ledger.userID)
		assert.Equalf(t, tt.points, ledger.points, "action %s", tt.action)
	}
}

func TestAwardUnknownActionIgnored(t *testing.T) {
	ledger := &fakeLedger{}
	svc := NewService(ledger)

	svc.Award(context.Background(), 42, "mystery_action")
	assert.Zero(t, ledger.calls)
}

func TestAwardSwallowsLedgerError(t *testing.T) {
	ledger := &fakeLedger{err: errors.New("db down")}
	svc := NewService(ledger)

	// Must not panic or surface the error.
	svc.Award(context.Background(), 42, ActionAskQuestion)
	assert.Equal(t, 1, ledger.calls)
}

func TestAwardNilLedger(t *testing.T) {
	svc := NewService(nil)
	svc.Award(context.Background(), 42, ActionAskQuestion)
}
