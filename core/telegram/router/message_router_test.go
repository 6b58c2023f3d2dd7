package router

import (
	"testing"

	tg "studentbot/core/telegram"
	"studentbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func newTestRegistry() *tg.Registry {
	reg := tg.NewRegistry()
	noop := func(c tele.Context) error { return nil }
	reg.RegisterCommand("/help", commands.Command{
		Handler: noop, Description: "Show help",
	})
	reg.RegisterCommand("/reload_knowledge", commands.Command{
		Handler: noop, Description: "Reload the knowledge base", AdminOnly: true, Hidden: true,
	})
	return reg
}

func TestLookupTextCommandResolvesSlashless(t *testing.T) {
	reg := newTestRegistry()

	name, h, ok := lookupTextCommand(reg, "help")
	if !ok || h == nil {
		t.Fatal("expected /help to resolve from slashless text")
	}
	if name != "help" {
		t.Fatalf("handler name = %q", name)
	}
}

func TestLookupTextCommandSkipsAdminOnly(t *testing.T) {
	reg := newTestRegistry()

	for _, text := range []string{"reload_knowledge", "/reload_knowledge"} {
		if _, _, ok := lookupTextCommand(reg, text); ok {
			t.Fatalf("admin-only command must not be dispatchable from text %q", text)
		}
	}
}

func TestLookupTextCommandUnknown(t *testing.T) {
	if _, _, ok := lookupTextCommand(newTestRegistry(), "how do I apply"); ok {
		t.Fatal("free text must not resolve to a command")
	}
	if _, _, ok := lookupTextCommand(nil, "help"); ok {
		t.Fatal("nil registry must not resolve")
	}
}
