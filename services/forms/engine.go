// Package forms drives multi-step conversational forms: each flow is an
// ordered sequence of prompts whose answers are validated before the
// session advances.
package forms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"studentbot/core/logger"
)

// SkipToken lets users leave an optional step unanswered.
const SkipToken = "/skip"

var (
	// ErrUnknownFlow reports a Start against a flow name that was never registered.
	ErrUnknownFlow = errors.New("forms: unknown flow")
	// ErrNoActiveSession reports a Submit without a session in progress.
	ErrNoActiveSession = errors.New("forms: no active session")
)

// ValidationError rejects one answer and names the message to re-prompt with.
// The session does not advance; the same step stays current.
type ValidationError struct {
	MessageKey string
}

func (e *ValidationError) Error() string {
	return "forms: invalid input, re-prompt " + e.MessageKey
}

// Input is what a validator sees for a single submitted answer.
type Input struct {
	Raw string
	// Lang plus the locale's yes/no token pair, for binary answers.
	Lang     string
	YesToken string
	NoToken  string
}

// ValidatorFunc parses raw text into a typed value or returns *ValidationError.
type ValidatorFunc func(in Input) (any, error)

// StepSpec is one prompt/validation unit within a flow.
type StepSpec struct {
	Name      string
	PromptKey string
	// Optional steps accept SkipToken and advance without storing a value.
	Optional bool
	Validate ValidatorFunc
	// TerminalIf completes the flow right after this step when it returns
	// true for the validated value. Used by answers that make the remaining
	// steps pointless.
	TerminalIf func(value any) bool
}

// FlowDefinition is an immutable ordered list of steps registered under a name.
type FlowDefinition struct {
	Name  string
	Steps []StepSpec
}

// FlowResult carries the collected fields of a completed flow.
type FlowResult struct {
	Flow   string
	UserID int64
	Fields map[string]any
}

// Int reads a collected int field; the zero value covers skipped steps.
func (r *FlowResult) Int(name string) (int, bool) {
	v, ok := r.Fields[name].(int)
	return v, ok
}

// Float reads a collected float field.
func (r *FlowResult) Float(name string) (float64, bool) {
	v, ok := r.Fields[name].(float64)
	return v, ok
}

// String reads a collected string field.
func (r *FlowResult) String(name string) (string, bool) {
	v, ok := r.Fields[name].(string)
	return v, ok
}

// Bool reads a collected bool field.
func (r *FlowResult) Bool(name string) (bool, bool) {
	v, ok := r.Fields[name].(bool)
	return v, ok
}

// StepResult is the successful outcome of submitting one answer.
type StepResult struct {
	// NextPrompt names the next step's prompt when the flow continues.
	NextPrompt string
	// Result is set exactly once, when the flow completed; the session is
	// already cleared by the time the caller sees it.
	Result *FlowResult
}

// Engine sequences users through registered flows using a session store.
type Engine struct {
	store Store
	flows map[string]*FlowDefinition
}

// NewEngine builds an engine over the given session store.
func NewEngine(store Store) *Engine {
	return &Engine{
		store: store,
		flows: make(map[string]*FlowDefinition),
	}
}

// Register adds a flow definition. Empty or duplicate definitions are rejected.
func (e *Engine) Register(def *FlowDefinition) error {
	if def == nil || def.Name == "" || len(def.Steps) == 0 {
		return fmt.Errorf("forms: invalid flow definition")
	}
	if _, exists := e.flows[def.Name]; exists {
		return fmt.Errorf("forms: flow already registered: %s", def.Name)
	}
	for _, step := range def.Steps {
		if step.Name == "" || step.PromptKey == "" || step.Validate == nil {
			return fmt.Errorf("forms: flow %s has an incomplete step", def.Name)
		}
	}
	e.flows[def.Name] = def
	return nil
}

// Start opens a session at the flow's first step and returns its prompt key.
// Any session the user already had is replaced, never stacked.
func (e *Engine) Start(ctx context.Context, flowName string, userID int64) (string, error) {
	def, ok := e.flows[flowName]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFlow, flowName)
	}

	e.store.Put(userID, &Session{
		Flow:   flowName,
		Step:   0,
		Fields: make(map[string]any),
	})

	logger.Debug(ctx, "forms", "flow.start",
		slog.String("flow", flowName),
		slog.Int64("user_id", userID),
	)
	return def.Steps[0].PromptKey, nil
}

// Active reports the flow the user is currently in, if any.
func (e *Engine) Active(userID int64) (string, bool) {
	sess, ok := e.store.Get(userID)
	if !ok {
		return "", false
	}
	return sess.Flow, true
}

// InProgress reports whether the user has an open session.
func (e *Engine) InProgress(userID int64) bool {
	_, ok := e.store.Get(userID)
	return ok
}

// Submit validates the answer for the current step. On success the session
// advances; completing the final step clears the session and returns the
// collected fields. On *ValidationError the step stays current.
func (e *Engine) Submit(ctx context.Context, userID int64, in Input) (StepResult, error) {
	sess, ok := e.store.Get(userID)
	if !ok {
		return StepResult{}, ErrNoActiveSession
	}

	def, ok := e.flows[sess.Flow]
	if !ok || sess.Step >= len(def.Steps) {
		// Session refers to a flow that is gone; drop it rather than wedge the user.
		e.store.Delete(userID)
		return StepResult{}, ErrNoActiveSession
	}

	step := def.Steps[sess.Step]
	raw := strings.TrimSpace(in.Raw)

	terminal := false
	skipped := step.Optional && strings.EqualFold(raw, SkipToken)
	if !skipped {
		in.Raw = raw
		value, err := step.Validate(in)
		if err != nil {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				verr = &ValidationError{MessageKey: "invalid_input"}
			}
			logger.Debug(ctx, "forms", "flow.step.invalid",
				slog.String("flow", sess.Flow),
				slog.String("step", step.Name),
				slog.Int64("user_id", userID),
			)
			return StepResult{}, verr
		}
		sess.Fields[step.Name] = value
		terminal = step.TerminalIf != nil && step.TerminalIf(value)
	}

	sess.Step++
	if !terminal && sess.Step < len(def.Steps) {
		e.store.Put(userID, sess)
		return StepResult{NextPrompt: def.Steps[sess.Step].PromptKey}, nil
	}

	// Terminal step: clear first so a double submit cannot replay the result.
	e.store.Delete(userID)
	logger.Info(ctx, "forms", "flow.complete",
		slog.String("flow", sess.Flow),
		slog.Int64("user_id", userID),
		slog.Int("fields", len(sess.Fields)),
	)
	return StepResult{Result: &FlowResult{
		Flow:   sess.Flow,
		UserID: userID,
		Fields: sess.Fields,
	}}, nil
}

// Cancel clears any active session. Calling it without one is a no-op.
func (e *Engine) Cancel(ctx context.Context, userID int64) {
	if _, ok := e.store.Get(userID); !ok {
		return
	}
	e.store.Delete(userID)
	logger.Debug(ctx, "forms", "flow.cancel",
		slog.Int64("user_id", userID),
	)
}
