// Package router dispatches incoming updates to command, flow and callback
// handlers registered in the telegram registry.
package router

import (
	"time"

	tg "studentbot/core/telegram"
	"studentbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// FlowGate reports whether a user currently has a conversational form in
// progress. Active form input takes priority over command lookup.
type FlowGate interface {
	InProgress(userID int64) bool
}

// TextOptions controls routing of plain text updates.
type TextOptions struct {
	// FlowHandler consumes text while the user's form is in progress.
	FlowHandler tele.HandlerFunc
	// UnknownText handles text that matched neither a form nor a command
	// when the registry has no text fallback.
	UnknownText tele.HandlerFunc
}

// TextRoutes builds the OnText route. Dispatch order: active form input,
// then command lookup, then registry text fallback.
func TextRoutes(gate FlowGate, reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if gate != nil && opts.FlowHandler != nil && gate.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "flow", start, func() error {
				return opts.FlowHandler(c)
			})
		}

		if name, cmdHandler, ok := lookupTextCommand(reg, text); ok {
			return handleWithSummary(c, name, start, func() error {
				return cmdHandler(c)
			})
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
	}
}

// lookupTextCommand resolves plain text to a dispatchable command handler.
// Admin-only commands are never dispatched from free text: they reach users
// solely through their registered command routes, where the admin check
// wraps the handler.
func lookupTextCommand(reg *tg.Registry, text string) (string, tele.HandlerFunc, bool) {
	if reg == nil {
		return "", nil, false
	}
	key, cmd, ok := reg.LookupCommand(text)
	if !ok || cmd.Handler == nil || cmd.AdminOnly {
		return "", nil, false
	}
	return normalizeHandlerName(key), cmd.Handler, true
}
