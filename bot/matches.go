package bot

import (
	"fmt"
	"log/slog"
	"strings"

	"studentbot/core/logger"
	"studentbot/core/telegram/format"
	tghelpers "studentbot/core/telegram/helpers"
	"studentbot/services/roommate"

	tele "gopkg.in/telebot.v4"
)

// ShowMatches runs the compatibility matcher for the caller.
func (h *Handlers) ShowMatches(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	seeker, ok := h.profileOrNil(ctx, userID)
	if !ok {
		return h.reply(c, "profile_not_found")
	}

	candidates, err := h.deps.Profiles.Lookers(ctx, userID)
	if err != nil {
		logger.Error(ctx, "bot", "matches.load",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return h.reply(c, "retry_later")
	}

	matches := roommate.FindMatches(seeker, candidates)
	if len(matches) == 0 {
		return h.reply(c, "matches_none")
	}

	var b strings.Builder
	b.WriteString("*" + h.t(ctx, c, "matches_header") + "*\n")
	for i, match := range matches {
		fmt.Fprintf(&b, "\n%d. %s", i+1, format.EscapeMarkdown(match.FirstName))
		if field := match.StudyField(); field != "" {
			b.WriteString(", " + format.EscapeMarkdown(field))
		}
		if match.Roommate.BudgetMin != nil && match.Roommate.BudgetMax != nil {
			fmt.Fprintf(&b, " (%d-%d EUR)", *match.Roommate.BudgetMin, *match.Roommate.BudgetMax)
		}
		if notes := match.Roommate.Notes; notes != "" {
			b.WriteString("\n   " + format.EscapeMarkdown(logger.SanitizeLimit(notes, 120)))
		}
	}

	return tghelpers.SendMD(c, b.String())
}
