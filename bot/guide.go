package bot

import (
	"studentbot/core/telegram/callbacks"
	tghelpers "studentbot/core/telegram/helpers"
	"studentbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

const (
	cbGuideTopic = "guide_topic"
	cbGuideMenu  = "guide_menu"
)

// guideTopics lists the informational guide sections in menu order.
var guideTopics = []string{"housing", "transport", "university"}

// ShowGuide displays the guide topic menu.
func (h *Handlers) ShowGuide(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	lang := h.lang(ctx, c)
	return tghelpers.SendText(c, h.deps.Bundle.Get(lang, "guide_menu_title"),
		&tele.SendOptions{ReplyMarkup: h.guideMenuMarkup(lang)})
}

// ShowGuideTopic renders one topic's content with a back button.
func (h *Handlers) ShowGuideTopic(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	lang := h.lang(ctx, c)

	topic := callbacks.CallbackPayload(c)
	if !isGuideTopic(topic) {
		return h.reply(c, "invalid_input")
	}

	back := keyboard.InlineButtons([]keyboard.InlineBtn{{
		Text:   h.deps.Bundle.Get(lang, "back_button"),
		Unique: cbGuideMenu,
	}})
	return tghelpers.EditOrSendMD(c, h.deps.Bundle.Get(lang, "guide_topic_"+topic), back)
}

// BackToGuideMenu returns from a topic back to the menu, editing in place.
func (h *Handlers) BackToGuideMenu(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	lang := h.lang(ctx, c)
	return tghelpers.EditOrSendMD(c, h.deps.Bundle.Get(lang, "guide_menu_title"), h.guideMenuMarkup(lang))
}

func (h *Handlers) guideMenuMarkup(lang string) *tele.ReplyMarkup {
	buttons := make([]keyboard.InlineBtn, 0, len(guideTopics))
	for _, topic := range guideTopics {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   h.deps.Bundle.Get(lang, "guide_button_"+topic),
			Unique: cbGuideTopic,
			Data:   topic,
		})
	}
	return keyboard.InlineButtonsNPerRow(buttons, 2)
}

func isGuideTopic(topic string) bool {
	for _, t := range guideTopics {
		if t == topic {
			return true
		}
	}
	return false
}
