package bot

import (
	tghelpers "studentbot/core/telegram/helpers"
	"studentbot/services/gamification"

	tele "gopkg.in/telebot.v4"
)

// AnswerQuestion handles free text that matched neither a form nor a command:
// an exact-match pass over the Q/A table, then a semantic pass against the
// knowledge base. A miss gets the localized fallback message.
func (h *Handlers) AnswerQuestion(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	h.deps.Points.Award(ctx, userID, gamification.ActionAskQuestion)

	answer, ok := h.deps.Answers.Resolve(ctx, c.Text())
	if !ok {
		return h.reply(c, "unknown_fallback")
	}

	h.deps.Points.Award(ctx, userID, gamification.ActionReceiveAnswer)
	return tghelpers.SendText(c, answer)
}
