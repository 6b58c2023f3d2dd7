package bot

import (
	"log/slog"
	"sort"

	"studentbot/core/logger"
	"studentbot/core/telegram/callbacks"
	tghelpers "studentbot/core/telegram/helpers"
	"studentbot/core/telegram/keyboard"
	"studentbot/models"

	tele "gopkg.in/telebot.v4"
)

const cbSetLanguage = "set_lang"

var languageLabels = map[string]string{
	"en": "English",
	"it": "Italiano",
	"fa": "فارسی",
}

// ChooseLanguage shows the language picker built from the loaded locales.
func (h *Handlers) ChooseLanguage(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	langs := h.deps.Bundle.Languages()
	sort.Strings(langs)

	buttons := make([]keyboard.InlineBtn, 0, len(langs))
	for _, lang := range langs {
		label := languageLabels[lang]
		if label == "" {
			label = lang
		}
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   label,
			Unique: cbSetLanguage,
			Data:   lang,
		})
	}
	markup := keyboard.InlineButtonsNPerRow(buttons, 2)
	return tghelpers.SendText(c, h.t(ctx, c, "language_prompt"), &tele.SendOptions{ReplyMarkup: markup})
}

// SetLanguage persists the picked language on the profile. Users without a
// profile get a minimal one so the preference survives.
func (h *Handlers) SetLanguage(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	lang := callbacks.CallbackPayload(c)
	if !h.deps.Bundle.Has(lang) {
		return h.reply(c, "invalid_input")
	}

	user := c.Sender()
	profile, ok := h.profileOrNil(ctx, user.ID)
	if !ok {
		profile = models.Profile{
			UserID:    user.ID,
			FirstName: user.FirstName,
		}
	}
	profile.Language = lang

	if err := h.deps.Profiles.Save(ctx, profile); err != nil {
		logger.Error(ctx, "bot", "language.save",
			slog.Int64("user_id", user.ID),
			slog.String("lang", lang),
			slog.String("err", err.Error()),
		)
		return h.reply(c, "retry_later")
	}
	return tghelpers.SendText(c, h.deps.Bundle.Get(lang, "language_saved"))
}
