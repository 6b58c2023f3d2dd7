package forms

// Registered flow names.
const (
	FlowRegistration = "registration"
	FlowISEE         = "isee"
	FlowConsultation = "consultation"
	FlowRoommate     = "roommate"
	FlowStory        = "story"
)

// Field names shared with the handlers that consume flow results.
const (
	FieldFirstName     = "first_name"
	FieldLastName      = "last_name"
	FieldAge           = "age"
	FieldCountry       = "country"
	FieldFieldOfStudy  = "field_of_study"
	FieldEmail         = "email"
	FieldIncome        = "income"
	FieldPropertySize  = "property_size"
	FieldFamilyMembers = "family_members"
	FieldName          = "name"
	FieldGPA           = "gpa"
	FieldBudget        = "budget"
	FieldLanguageLevel = "language_level"
	FieldLooking       = "looking"
	FieldSmoker        = "smoker"
	FieldNotes         = "notes"
	FieldStoryText     = "story_text"
)

// RegistrationFlow collects a new student profile. Everything after the
// first name may be skipped.
func RegistrationFlow() *FlowDefinition {
	return &FlowDefinition{
		Name: FlowRegistration,
		Steps: []StepSpec{
			{Name: FieldFirstName, PromptKey: "register_first_name", Validate: Text(1, "invalid_input")},
			{Name: FieldLastName, PromptKey: "register_last_name", Optional: true, Validate: Text(1, "invalid_input")},
			{Name: FieldAge, PromptKey: "register_age", Optional: true, Validate: BoundedInt(16, 100, "invalid_age")},
			{Name: FieldCountry, PromptKey: "register_country", Optional: true, Validate: Text(1, "invalid_input")},
			{Name: FieldFieldOfStudy, PromptKey: "register_field_of_study", Optional: true, Validate: Text(1, "invalid_input")},
			{Name: FieldEmail, PromptKey: "register_email", Optional: true, Validate: Email("invalid_email")},
		},
	}
}

// ISEEFlow collects the three inputs of the ISEE calculation.
func ISEEFlow() *FlowDefinition {
	return &FlowDefinition{
		Name: FlowISEE,
		Steps: []StepSpec{
			{Name: FieldIncome, PromptKey: "ask_income", Validate: NonNegativeFloat("invalid_input")},
			{Name: FieldPropertySize, PromptKey: "ask_property", Validate: NonNegativeFloat("invalid_input")},
			{Name: FieldFamilyMembers, PromptKey: "ask_family_members", Validate: BoundedInt(1, 10, "invalid_family_members")},
		},
	}
}

// ConsultationFlow collects an academic consultation request.
func ConsultationFlow() *FlowDefinition {
	return &FlowDefinition{
		Name: FlowConsultation,
		Steps: []StepSpec{
			{Name: FieldName, PromptKey: "consult_name", Validate: Text(1, "invalid_input")},
			{Name: FieldFieldOfStudy, PromptKey: "consult_field", Validate: Text(1, "invalid_input")},
			{Name: FieldGPA, PromptKey: "consult_gpa", Validate: Text(1, "invalid_input")},
			{Name: FieldBudget, PromptKey: "consult_budget", Validate: Float("invalid_budget")},
			{Name: FieldLanguageLevel, PromptKey: "consult_language", Validate: Text(1, "invalid_input")},
		},
	}
}

// RoommateFlow collects roommate-search preferences. The budget is a literal
// "min-max" range; yes/no answers follow the locale token pair.
func RoommateFlow() *FlowDefinition {
	return &FlowDefinition{
		Name: FlowRoommate,
		Steps: []StepSpec{
			{
				Name:      FieldLooking,
				PromptKey: "roommate_looking",
				Validate:  YesNo("invalid_yes_no"),
				// A "no" ends the flow; there is nothing left to ask.
				TerminalIf: func(v any) bool { b, ok := v.(bool); return ok && !b },
			},
			{Name: FieldBudget, PromptKey: "roommate_budget", Validate: BudgetRange("invalid_budget_range")},
			{Name: FieldSmoker, PromptKey: "roommate_smoker", Validate: YesNo("invalid_yes_no")},
			{Name: FieldNotes, PromptKey: "roommate_notes", Optional: true, Validate: Text(1, "invalid_input")},
		},
	}
}

// StoryFlow collects a success story; short submissions are rejected.
func StoryFlow() *FlowDefinition {
	return &FlowDefinition{
		Name: FlowStory,
		Steps: []StepSpec{
			{Name: FieldStoryText, PromptKey: "story_prompt", Validate: Text(50, "story_too_short")},
		},
	}
}

// RegisterAll registers the five built-in flows on the engine.
func RegisterAll(e *Engine) error {
	for _, def := range []*FlowDefinition{
		RegistrationFlow(),
		ISEEFlow(),
		ConsultationFlow(),
		RoommateFlow(),
		StoryFlow(),
	} {
		if err := e.Register(def); err != nil {
			return err
		}
	}
	return nil
}
