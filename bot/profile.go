package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"studentbot/core/logger"
	"studentbot/core/telegram/callbacks"
	"studentbot/core/telegram/format"
	tghelpers "studentbot/core/telegram/helpers"
	"studentbot/core/telegram/keyboard"
	"studentbot/models"
	"studentbot/services/forms"
	"studentbot/storage"

	tele "gopkg.in/telebot.v4"
)

const cbEditField = "edit_field"

// ShowProfile renders the caller's profile.
func (h *Handlers) ShowProfile(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	profile, ok := h.profileOrNil(ctx, c.Sender().ID)
	if !ok {
		return h.reply(c, "profile_not_found")
	}

	var b strings.Builder
	b.WriteString("*" + h.t(ctx, c, "profile_header") + "*\n")
	writeLine := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s: %s\n", label, format.EscapeMarkdown(value))
	}
	writeLine("Name", profile.FirstName)
	writeLine("Last name", format.DerefString(profile.LastName, ""))
	if age := format.DerefInt(profile.Age, 0); age > 0 {
		fmt.Fprintf(&b, "Age: %d\n", age)
	}
	writeLine("Country", format.DerefString(profile.Country, ""))
	writeLine("Field of study", format.DerefString(profile.FieldOfStudy, ""))
	writeLine("Email", format.DerefString(profile.Email, ""))
	writeLine("Language", profile.Language)
	fmt.Fprintf(&b, "Points: %d\n", profile.Points)
	if profile.Roommate.Looking {
		b.WriteString("Looking for a roommate: yes\n")
	}

	return tghelpers.SendMD(c, b.String())
}

// EditProfile shows the editable field picker.
func (h *Handlers) EditProfile(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	if _, ok := h.profileOrNil(ctx, c.Sender().ID); !ok {
		return h.reply(c, "profile_not_found")
	}

	buttons := make([]keyboard.InlineBtn, 0, len(models.EditableFields))
	for _, field := range models.EditableFields {
		buttons = append(buttons, keyboard.InlineBtn{
			Text:   fieldLabel(field),
			Unique: cbEditField,
			Data:   string(field),
		})
	}
	markup := keyboard.InlineButtonsNPerRow(buttons, 2)
	return tghelpers.SendText(c, h.t(ctx, c, "edit_profile_field"), &tele.SendOptions{ReplyMarkup: markup})
}

// PickEditField handles the field-picker callback and waits for the new value.
func (h *Handlers) PickEditField(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	payload := callbacks.CallbackPayload(c)

	field := models.ProfileField(payload)
	if !isEditable(field) {
		return h.reply(c, "edit_profile_invalid_field")
	}

	h.setPendingEdit(c.Sender().ID, field)
	return tghelpers.SendText(c, h.t(ctx, c, "edit_profile_value"))
}

// applyEdit validates and persists the value for a pending profile edit.
// The field validators are the same ones the registration form uses.
func (h *Handlers) applyEdit(c tele.Context, field models.ProfileField) error {
	ctx := tghelpers.BuildContext(c)
	userID := c.Sender().ID
	lang := h.lang(ctx, c)

	value, verr := validateFieldValue(field, strings.TrimSpace(c.Text()), lang)
	if verr != nil {
		// Invalid value keeps the edit pending so the user can retry.
		h.setPendingEdit(userID, field)
		return tghelpers.SendText(c, h.deps.Bundle.Get(lang, verr.MessageKey))
	}

	if err := h.deps.Profiles.UpdateField(ctx, userID, field, value); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return h.reply(c, "profile_not_found")
		}
		logger.Error(ctx, "bot", "profile.edit",
			slog.Int64("user_id", userID),
			slog.String("field", string(field)),
			slog.String("err", err.Error()),
		)
		return h.reply(c, "retry_later")
	}
	return h.reply(c, "edit_profile_done")
}

func validateFieldValue(field models.ProfileField, raw, lang string) (any, *forms.ValidationError) {
	var validator forms.ValidatorFunc
	switch field {
	case models.FieldAge:
		validator = forms.BoundedInt(16, 100, "invalid_age")
	case models.FieldEmail:
		validator = forms.Email("invalid_email")
	default:
		validator = forms.Text(1, "invalid_input")
	}

	value, err := validator(forms.Input{Raw: raw, Lang: lang})
	if err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			return nil, verr
		}
		return nil, &forms.ValidationError{MessageKey: "invalid_input"}
	}
	return value, nil
}

func isEditable(field models.ProfileField) bool {
	for _, f := range models.EditableFields {
		if f == field {
			return true
		}
	}
	return false
}

func fieldLabel(field models.ProfileField) string {
	label := strings.ReplaceAll(string(field), "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
