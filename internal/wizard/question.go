package wizard

// QuestionType is the closed set of supported question kinds. Adding a new
// kind means adding a variant here plus an assembler case.
type QuestionType string

const (
	QuestionTypeString         QuestionType = "string"
	QuestionTypeBoolean        QuestionType = "boolean"
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeString, QuestionTypeBoolean, QuestionTypeMultipleChoice:
		return true
	}
	return false
}

// Option is one selectable choice of a multiple-choice question. Text is the
// option's identity: answers store the chosen Text, and code lookup at
// assembly time matches on it.
type Option struct {
	Text  string `json:"text"`
	Code  string `json:"code"`
	Image string `json:"image,omitempty"`
}

// Details carries the type-specific configuration of a question. Only the
// fields matching the question's type are meaningful; the assembler treats
// missing fields as "no contribution".
type Details struct {
	// string questions
	Placeholder string `json:"placeholder,omitempty"`
	HelperImage string `json:"helper_image,omitempty"`
	// boolean questions
	TrueCode  string `json:"true_code,omitempty"`
	FalseCode string `json:"false_code,omitempty"`
	TrueText  string `json:"true_text,omitempty"`
	FalseText string `json:"false_text,omitempty"`
	// multiple-choice questions
	Options []Option `json:"options,omitempty"`
}

// Question is the read-only definition the wizard runs against. Definitions
// are authored on the admin surface and are immutable for the duration of a
// session.
type Question struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Details Details      `json:"details"`
}

// OptionByText returns the option whose Text equals text.
func (q Question) OptionByText(text string) (Option, bool) {
	for _, opt := range q.Details.Options {
		if opt.Text == text {
			return opt, true
		}
	}
	return Option{}, false
}
