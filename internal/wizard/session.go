package wizard

import "errors"

// Mode is where the user is in the flow: picking a creation method, inside
// the question sequence, or previewing a finished document.
type Mode string

const (
	ModeChoice  Mode = "choice"
	ModeActive  Mode = "active"
	ModePreview Mode = "preview"
)

var (
	ErrFullTemplateUnavailable = errors.New("full template unavailable")
	ErrNoQuestions             = errors.New("no questions configured")
	ErrBuilderNotStarted       = errors.New("builder not started")
	ErrUnknownQuestion         = errors.New("unknown question")
	ErrTypeMismatch            = errors.New("answer type does not match question type")
)

// Session orchestrates the answer store, the navigator and the assembler for
// one wizard run. Every answer-affecting event mutates the store and
// recomputes the live output in the same call, so the output never reflects
// a stale answer. Session is not safe for concurrent use; the owning service
// serializes access.
type Session struct {
	questions []Question
	byID      map[string]Question
	baseCode  string
	fullCode  string

	answers *AnswerStore
	nav     *Navigator
	mode    Mode
	output  string
}

// NewSession starts in choice mode with an empty output. The question
// sequence and templates are fixed for the lifetime of the session.
func NewSession(questions []Question, baseCode, fullCode string) *Session {
	byID := make(map[string]Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return &Session{
		questions: questions,
		byID:      byID,
		baseCode:  baseCode,
		fullCode:  fullCode,
		answers:   NewAnswerStore(),
		nav:       NewNavigator(len(questions)),
		mode:      ModeChoice,
	}
}

func (s *Session) Mode() Mode            { return s.mode }
func (s *Session) Output() string        { return s.output }
func (s *Session) Questions() []Question { return s.questions }

func (s *Session) HasFullTemplate() bool { return s.fullCode != "" }
func (s *Session) HasQuestions() bool    { return len(s.questions) > 0 }

// Position returns the current question index and the sequence length.
func (s *Session) Position() (int, int) {
	return s.nav.Index(), s.nav.Count()
}

// Current returns the question at the navigator position, if any.
func (s *Session) Current() (Question, bool) {
	if len(s.questions) == 0 {
		return Question{}, false
	}
	return s.questions[s.nav.Index()], true
}

// Answers returns a copy of the answer store, suitable for persisting.
func (s *Session) Answers() map[string]Answer {
	return s.answers.Entries()
}

// ChooseFullTemplate bypasses the question flow and shows the pre-authored
// full template verbatim. Reported as an error, not swallowed, when no full
// template is configured.
func (s *Session) ChooseFullTemplate() error {
	if s.fullCode == "" {
		return ErrFullTemplateUnavailable
	}
	s.output = s.fullCode
	s.mode = ModePreview
	return nil
}

// StartBuilder resets the answer store and navigation and enters the
// question flow. The initial output is the untouched base template.
func (s *Session) StartBuilder() error {
	if len(s.questions) == 0 {
		return ErrNoQuestions
	}
	s.answers.Reset()
	s.nav = NewNavigator(len(s.questions))
	s.mode = ModeActive
	s.output = Assemble(s.baseCode, s.questions, s.answers)
	return nil
}

func (s *Session) question(questionID string, want QuestionType) (Question, error) {
	if s.mode != ModeActive {
		return Question{}, ErrBuilderNotStarted
	}
	q, ok := s.byID[questionID]
	if !ok {
		return Question{}, ErrUnknownQuestion
	}
	if q.Type != want {
		return Question{}, ErrTypeMismatch
	}
	return q, nil
}

// AnswerString records a free-text answer and reassembles the output.
func (s *Session) AnswerString(questionID, value string) error {
	q, err := s.question(questionID, QuestionTypeString)
	if err != nil {
		return err
	}
	s.answers.AnswerString(q, value)
	s.reassemble()
	return nil
}

// AnswerBoolean records a true/false answer and reassembles the output.
func (s *Session) AnswerBoolean(questionID string, value bool) error {
	q, err := s.question(questionID, QuestionTypeBoolean)
	if err != nil {
		return err
	}
	s.answers.AnswerBoolean(q, value)
	s.reassemble()
	return nil
}

// AnswerChoice records a multiple-choice answer by option text and
// reassembles the output.
func (s *Session) AnswerChoice(questionID, optionText string) error {
	if s.mode != ModeActive {
		return ErrBuilderNotStarted
	}
	q, ok := s.byID[questionID]
	if !ok {
		return ErrUnknownQuestion
	}
	if q.Type != QuestionTypeMultipleChoice {
		return ErrTypeMismatch
	}
	s.answers.AnswerChoice(q, optionText)
	s.reassemble()
	return nil
}

// SkipCurrent records a skip for the current question, reassembles, and
// advances. The returned bool reports whether there was a further question
// to advance to; false at the last question is a signal for the caller, not
// an error.
func (s *Session) SkipCurrent() (bool, error) {
	if s.mode != ModeActive {
		return false, ErrBuilderNotStarted
	}
	q, ok := s.Current()
	if !ok {
		return false, ErrNoQuestions
	}
	s.answers.MarkSkipped(q.ID, q.Type)
	s.reassemble()
	return s.nav.Next(), nil
}

// Next advances the navigator; no-op at the last question.
func (s *Session) Next() bool {
	if s.mode != ModeActive {
		return false
	}
	return s.nav.Next()
}

// Previous steps the navigator back; no-op at the first question.
func (s *Session) Previous() bool {
	if s.mode != ModeActive {
		return false
	}
	return s.nav.Previous()
}

// Finish leaves the question flow, keeping the assembled output visible as a
// preview. Persisting the snapshot is the caller's job.
func (s *Session) Finish() {
	s.mode = ModePreview
}

// Restore loads a saved snapshot wholesale. The saved code is shown verbatim
// rather than re-assembled. An incomplete snapshot re-enters the question
// flow at the inferred resume position; a complete one stays in preview.
func (s *Session) Restore(answers map[string]Answer, code string, isComplete bool) {
	s.output = code
	if isComplete {
		s.mode = ModePreview
		return
	}
	s.answers.Reset()
	for id, a := range answers {
		s.answers.Set(id, a)
	}
	s.nav = NewNavigator(len(s.questions))
	s.nav.JumpTo(InferResumeIndex(s.questions, s.answers))
	s.mode = ModeActive
}

func (s *Session) reassemble() {
	s.output = Assemble(s.baseCode, s.questions, s.answers)
}
