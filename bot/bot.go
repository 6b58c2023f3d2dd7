// Package bot registers the command, flow and callback handlers that make up
// the student assistant.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	coreconfig "studentbot/core/config"
	"studentbot/core/logger"
	tg "studentbot/core/telegram"
	"studentbot/core/telegram/commands"
	tghelpers "studentbot/core/telegram/helpers"
	"studentbot/i18n"
	"studentbot/models"
	"studentbot/services/answers"
	"studentbot/services/forms"
	"studentbot/services/gamification"
	"studentbot/storage"

	tele "gopkg.in/telebot.v4"
)

// Deps aggregates everything the handlers need.
type Deps struct {
	Config   *coreconfig.Config
	Engine   *forms.Engine
	Bundle   *i18n.Bundle
	Profiles *storage.ProfileRepository
	Stories  *storage.StoryRepository
	Answers  *answers.Pipeline
	Points   *gamification.Service
}

// Handlers holds handler state shared across updates.
type Handlers struct {
	deps Deps

	// pendingEdits tracks users who picked a profile field to edit and owe
	// us the new value as their next text message.
	pendingMu    sync.Mutex
	pendingEdits map[int64]models.ProfileField
}

// New builds the handler set.
func New(deps Deps) *Handlers {
	return &Handlers{
		deps:         deps,
		pendingEdits: make(map[int64]models.ProfileField),
	}
}

// Setup registers every command, callback and the free-text fallback.
func (h *Handlers) Setup(reg *tg.Registry) {
	reg.RegisterCommand("/start", commands.Command{Handler: h.Start, Description: "Start the bot"})
	reg.RegisterCommand("/help", commands.Command{Handler: h.Help, Description: "Show available commands"})
	reg.RegisterCommand("/register", commands.Command{Handler: h.StartRegistration, Description: "Create your profile"})
	reg.RegisterCommand("/profile", commands.Command{Handler: h.ShowProfile, Description: "View your profile"})
	reg.RegisterCommand("/edit_profile", commands.Command{Handler: h.EditProfile, Description: "Change a profile field"})
	reg.RegisterCommand("/guide", commands.Command{Handler: h.ShowGuide, Description: "Browse the student guide"})
	reg.RegisterCommand("/isee", commands.Command{Handler: h.StartISEE, Description: "Estimate your ISEE and scholarship tier"})
	reg.RegisterCommand("/consult", commands.Command{Handler: h.StartConsultation, Description: "Request an academic consultation"})
	reg.RegisterCommand("/roommate", commands.Command{Handler: h.StartRoommate, Description: "Set your roommate preferences"})
	reg.RegisterCommand("/matches", commands.Command{Handler: h.ShowMatches, Description: "Find compatible roommates"})
	reg.RegisterCommand("/submit_story", commands.Command{Handler: h.StartStory, Description: "Share your success story"})
	reg.RegisterCommand("/stories", commands.Command{Handler: h.ShowStories, Description: "Read published success stories"})
	reg.RegisterCommand("/language", commands.Command{Handler: h.ChooseLanguage, Description: "Change language"})
	reg.RegisterCommand("/cancel", commands.Command{Handler: h.Cancel, Description: "Abort the current form"})

	reg.RegisterCommand("/approve_story", commands.Command{
		Handler: h.ApproveStory, Description: "Approve a pending story", AdminOnly: true, Hidden: true,
	})
	reg.RegisterCommand("/reload_knowledge", commands.Command{
		Handler: h.ReloadKnowledge, Description: "Reload the knowledge base", AdminOnly: true, Hidden: true,
	})

	_ = reg.RegisterCallback(cbSetLanguage, h.SetLanguage)
	_ = reg.RegisterCallback(cbEditField, h.PickEditField)
	_ = reg.RegisterCallback(cbGuideTopic, h.ShowGuideTopic)
	_ = reg.RegisterCallback(cbGuideMenu, h.BackToGuideMenu)

	reg.SetTextFallback(h.AnswerQuestion)
}

// InProgress makes Handlers a router.FlowGate: form sessions and pending
// profile edits both claim the user's next text message.
func (h *Handlers) InProgress(userID int64) bool {
	if h.deps.Engine.InProgress(userID) {
		return true
	}
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()
	_, ok := h.pendingEdits[userID]
	return ok
}

// HandleText consumes a text message while the user is mid-form or mid-edit.
func (h *Handlers) HandleText(c tele.Context) error {
	userID := c.Sender().ID

	if field, ok := h.takePendingEdit(userID); ok {
		return h.applyEdit(c, field)
	}
	return h.submitStep(c)
}

func (h *Handlers) takePendingEdit(userID int64) (models.ProfileField, bool) {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()
	field, ok := h.pendingEdits[userID]
	if ok {
		delete(h.pendingEdits, userID)
	}
	return field, ok
}

func (h *Handlers) setPendingEdit(userID int64, field models.ProfileField) {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()
	h.pendingEdits[userID] = field
}

func (h *Handlers) clearPendingEdit(userID int64) {
	h.pendingMu.Lock()
	defer h.pendingMu.Unlock()
	delete(h.pendingEdits, userID)
}

// lang resolves the reply language: stored profile language first, then the
// Telegram client language, then the configured default.
func (h *Handlers) lang(ctx context.Context, c tele.Context) string {
	user := c.Sender()
	if user == nil {
		return h.deps.Config.Locale.DefaultLanguage
	}
	if profile, err := h.deps.Profiles.Get(ctx, user.ID); err == nil && profile.Language != "" {
		return profile.Language
	}
	if user.LanguageCode != "" && h.deps.Bundle.Has(user.LanguageCode) {
		return user.LanguageCode
	}
	return h.deps.Config.Locale.DefaultLanguage
}

func (h *Handlers) t(ctx context.Context, c tele.Context, key string) string {
	return h.deps.Bundle.Get(h.lang(ctx, c), key)
}

// reply sends a localized message through the async sender.
func (h *Handlers) reply(c tele.Context, key string) error {
	ctx := tghelpers.BuildContext(c)
	return tghelpers.SendText(c, h.t(ctx, c, key))
}

// Start greets the user.
func (h *Handlers) Start(c tele.Context) error {
	return h.reply(c, "welcome")
}

// Help lists the available commands.
func (h *Handlers) Help(c tele.Context) error {
	return h.reply(c, "help")
}

// Cancel aborts the active form or pending edit, if any.
func (h *Handlers) Cancel(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	_, hadEdit := h.takePendingEdit(userID)
	hadFlow := h.deps.Engine.InProgress(userID)
	h.deps.Engine.Cancel(ctx, userID)

	if !hadEdit && !hadFlow {
		return h.reply(c, "no_active_form")
	}
	return h.reply(c, "cancelled")
}

// notifyAdmin sends a plain text message to the configured admin chat.
func (h *Handlers) notifyAdmin(c tele.Context, text string) {
	adminID := h.deps.Config.Telegram.AdminID
	if adminID == 0 {
		return
	}
	ctx := tghelpers.BuildContext(c)
	if _, err := c.Bot().Send(&tele.User{ID: adminID}, text); err != nil {
		logger.Warn(ctx, "bot", "admin.notify_failed",
			slog.Int64("admin_id", adminID),
			slog.String("err", err.Error()),
		)
	}
}

func (h *Handlers) profileOrNil(ctx context.Context, userID int64) (models.Profile, bool) {
	profile, err := h.deps.Profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Error(ctx, "bot", "profile.load",
				slog.Int64("user_id", userID),
				slog.String("err", err.Error()),
			)
		}
		return models.Profile{}, false
	}
	return profile, true
}
