package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"studentbot/core/logger"
	"studentbot/core/telegram/format"
	tghelpers "studentbot/core/telegram/helpers"
	"studentbot/storage"

	tele "gopkg.in/telebot.v4"
)

const storiesPageSize = 5

// ShowStories renders the latest approved success stories.
func (h *Handlers) ShowStories(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	stories, err := h.deps.Stories.Approved(ctx, storiesPageSize)
	if err != nil {
		logger.Error(ctx, "bot", "stories.load",
			slog.String("err", err.Error()),
		)
		return h.reply(c, "retry_later")
	}
	if len(stories) == 0 {
		return h.reply(c, "stories_none")
	}

	var b strings.Builder
	b.WriteString("*" + h.t(ctx, c, "stories_header") + "*\n")
	for i, story := range stories {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, format.EscapeMarkdown(story.StoryText))
	}
	return tghelpers.SendMD(c, b.String())
}

// ApproveStory publishes a pending story. Admin only; usage: /approve_story <id>.
func (h *Handlers) ApproveStory(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	args := c.Args()
	if len(args) != 1 {
		return tghelpers.SendText(c, "Usage: /approve_story <id>")
	}
	storyID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return tghelpers.SendText(c, "Usage: /approve_story <id>")
	}

	if err := h.deps.Stories.Approve(ctx, storyID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return tghelpers.SendText(c, fmt.Sprintf("Story %d not found.", storyID))
		}
		logger.Error(ctx, "bot", "story.approve",
			slog.Int64("story_id", storyID),
			slog.String("err", err.Error()),
		)
		return h.reply(c, "retry_later")
	}
	return tghelpers.SendText(c, fmt.Sprintf("Story %d approved.", storyID))
}

// ReloadKnowledge re-reads the Q/A tables and recomputes embeddings. Admin only.
func (h *Handlers) ReloadKnowledge(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	if err := h.deps.Answers.Reload(ctx); err != nil {
		logger.Warn(ctx, "bot", "knowledge.reload_degraded",
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, "Knowledge reloaded, but embeddings are unavailable: "+err.Error())
	}
	return tghelpers.SendText(c, "Knowledge base reloaded.")
}
