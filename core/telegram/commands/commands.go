// Package commands declares the command metadata consumed by the registry.
package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command binds a bot command handler to its menu description and metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}
