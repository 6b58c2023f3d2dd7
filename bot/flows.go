package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"studentbot/core/logger"
	tghelpers "studentbot/core/telegram/helpers"
	"studentbot/models"
	"studentbot/services/forms"
	"studentbot/services/gamification"
	"studentbot/services/isee"

	tele "gopkg.in/telebot.v4"
)

// StartRegistration opens the registration form.
func (h *Handlers) StartRegistration(c tele.Context) error {
	return h.startFlow(c, forms.FlowRegistration)
}

// StartISEE opens the ISEE estimation form.
func (h *Handlers) StartISEE(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if err := tghelpers.SendText(c, h.t(ctx, c, "isee_intro")); err != nil {
		return err
	}
	return h.startFlow(c, forms.FlowISEE)
}

// StartConsultation opens the consultation request form.
func (h *Handlers) StartConsultation(c tele.Context) error {
	return h.startFlow(c, forms.FlowConsultation)
}

// StartRoommate opens the roommate preferences form. Registration comes first
// so the collected preferences have a profile to land on.
func (h *Handlers) StartRoommate(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if _, ok := h.profileOrNil(ctx, c.Sender().ID); !ok {
		return h.reply(c, "profile_not_found")
	}
	return h.startFlow(c, forms.FlowRoommate)
}

// StartStory opens the success story form.
func (h *Handlers) StartStory(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if _, ok := h.profileOrNil(ctx, c.Sender().ID); !ok {
		return h.reply(c, "profile_not_found")
	}
	return h.startFlow(c, forms.FlowStory)
}

func (h *Handlers) startFlow(c tele.Context, flow string) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID

	// Starting a flow supersedes a half-finished profile edit.
	h.clearPendingEdit(userID)

	promptKey, err := h.deps.Engine.Start(ctx, flow, userID)
	if err != nil {
		logger.Error(ctx, "bot", "flow.start_failed",
			slog.String("flow", flow),
			slog.String("err", err.Error()),
		)
		return h.reply(c, "retry_later")
	}
	return tghelpers.SendText(c, h.t(ctx, c, promptKey))
}

// submitStep feeds one text answer into the active form.
func (h *Handlers) submitStep(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID
	lang := h.lang(ctx, c)
	yes, no := h.deps.Bundle.YesNo(lang)

	step, err := h.deps.Engine.Submit(ctx, userID, forms.Input{
		Raw:      c.Text(),
		Lang:     lang,
		YesToken: yes,
		NoToken:  no,
	})
	if err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			return tghelpers.SendText(c, h.deps.Bundle.Get(lang, verr.MessageKey))
		}
		if errors.Is(err, forms.ErrNoActiveSession) {
			return h.reply(c, "no_active_form")
		}
		return h.reply(c, "retry_later")
	}

	if step.Result != nil {
		return h.completeFlow(c, ctx, step.Result)
	}
	return tghelpers.SendText(c, h.deps.Bundle.Get(lang, step.NextPrompt))
}

func (h *Handlers) completeFlow(c tele.Context, ctx context.Context, result *forms.FlowResult) error {
	switch result.Flow {
	case forms.FlowRegistration:
		return h.finishRegistration(c, ctx, result)
	case forms.FlowISEE:
		return h.finishISEE(c, ctx, result)
	case forms.FlowConsultation:
		return h.finishConsultation(c, ctx, result)
	case forms.FlowRoommate:
		return h.finishRoommate(c, ctx, result)
	case forms.FlowStory:
		return h.finishStory(c, ctx, result)
	}
	logger.Error(ctx, "bot", "flow.unknown_result",
		slog.String("flow", result.Flow),
	)
	return h.reply(c, "retry_later")
}

func (h *Handlers) finishRegistration(c tele.Context, ctx context.Context, result *forms.FlowResult) error {
	profile := models.Profile{
		UserID:   result.UserID,
		Language: h.lang(ctx, c),
	}
	// A re-registration keeps roommate preferences and accumulated points.
	if existing, ok := h.profileOrNil(ctx, result.UserID); ok {
		profile.Roommate = existing.Roommate
		profile.Points = existing.Points
		profile.Gender = existing.Gender
	}

	profile.FirstName, _ = result.String(forms.FieldFirstName)
	if v, ok := result.String(forms.FieldLastName); ok {
		profile.LastName = &v
	}
	if v, ok := result.Int(forms.FieldAge); ok {
		profile.Age = &v
	}
	if v, ok := result.String(forms.FieldCountry); ok {
		profile.Country = &v
	}
	if v, ok := result.String(forms.FieldFieldOfStudy); ok {
		profile.FieldOfStudy = &v
	}
	if v, ok := result.String(forms.FieldEmail); ok {
		profile.Email = &v
	}

	if err := h.deps.Profiles.Save(ctx, profile); err != nil {
		logger.Error(ctx, "bot", "registration.save",
			slog.Int64("user_id", result.UserID),
			slog.String("err", err.Error()),
		)
		return h.reply(c, "retry_later")
	}

	h.deps.Points.Award(ctx, result.UserID, gamification.ActionCompleteRegistration)
	return h.reply(c, "register_success")
}

func (h *Handlers) finishISEE(c tele.Context, ctx context.Context, result *forms.FlowResult) error {
	income, _ := result.Float(forms.FieldIncome)
	propertySize, _ := result.Float(forms.FieldPropertySize)
	members, _ := result.Int(forms.FieldFamilyMembers)

	res, err := isee.Calculate(income, propertySize, members)
	if err != nil {
		logger.Error(ctx, "bot", "isee.calculate",
			slog.String("err", err.Error()),
		)
		return h.reply(c, "retry_later")
	}

	lang := h.lang(ctx, c)
	statusText := h.deps.Bundle.Get(lang, "scholarship_status_"+string(res.Status))
	text := fmt.Sprintf(h.deps.Bundle.Get(lang, "isee_result"), res.ISEE, statusText)
	return tghelpers.SendText(c, text)
}

func (h *Handlers) finishConsultation(c tele.Context, ctx context.Context, result *forms.FlowResult) error {
	name, _ := result.String(forms.FieldName)
	field, _ := result.String(forms.FieldFieldOfStudy)
	gpa, _ := result.String(forms.FieldGPA)
	budget, _ := result.Float(forms.FieldBudget)
	level, _ := result.String(forms.FieldLanguageLevel)

	h.notifyAdmin(c, fmt.Sprintf(
		"New consultation request\nUser: %d\nName: %s\nField: %s\nGPA: %s\nBudget: %.0f EUR\nLanguage level: %s",
		result.UserID, name, field, gpa, budget, level,
	))

	logger.Info(ctx, "bot", "consultation.submitted",
		slog.Int64("user_id", result.UserID),
		slog.String("field", logger.SanitizeLimit(field, 64)),
	)
	return h.reply(c, "consult_done")
}

func (h *Handlers) finishRoommate(c tele.Context, ctx context.Context, result *forms.FlowResult) error {
	profile, ok := h.profileOrNil(ctx, result.UserID)
	if !ok {
		return h.reply(c, "profile_not_found")
	}

	looking, _ := result.Bool(forms.FieldLooking)
	profile.Roommate.Looking = looking

	if !looking {
		// The flow short-circuited; keep previously stored details intact.
		if err := h.deps.Profiles.Save(ctx, profile); err != nil {
			logger.Error(ctx, "bot", "roommate.save",
				slog.Int64("user_id", result.UserID),
				slog.String("err", err.Error()),
			)
			return h.reply(c, "retry_later")
		}
		return h.reply(c, "roommate_not_looking")
	}

	if budget, ok := result.Fields[forms.FieldBudget].(forms.Range); ok {
		min, max := budget.Min, budget.Max
		profile.Roommate.BudgetMin = &min
		profile.Roommate.BudgetMax = &max
	}
	if smoker, ok := result.Bool(forms.FieldSmoker); ok {
		profile.Roommate.Smoker = &smoker
	}
	if notes, ok := result.String(forms.FieldNotes); ok {
		profile.Roommate.Notes = notes
	}
	if profile.Roommate.GenderPreference == "" {
		profile.Roommate.GenderPreference = models.PrefAny
	}

	if err := h.deps.Profiles.Save(ctx, profile); err != nil {
		logger.Error(ctx, "bot", "roommate.save",
			slog.Int64("user_id", result.UserID),
			slog.String("err", err.Error()),
		)
		return h.reply(c, "retry_later")
	}
	return h.reply(c, "roommate_saved")
}

func (h *Handlers) finishStory(c tele.Context, ctx context.Context, result *forms.FlowResult) error {
	text, _ := result.String(forms.FieldStoryText)
	story := models.SuccessStory{
		UserID:    result.UserID,
		StoryText: text,
	}
	if err := h.deps.Stories.Save(ctx, story); err != nil {
		logger.Error(ctx, "bot", "story.save",
			slog.Int64("user_id", result.UserID),
			slog.String("err", err.Error()),
		)
		return h.reply(c, "retry_later")
	}

	h.deps.Points.Award(ctx, result.UserID, gamification.ActionSubmitFeedback)
	h.notifyAdmin(c, fmt.Sprintf("New story pending approval from user %d:\n\n%s", result.UserID, text))
	return h.reply(c, "story_submitted")
}
