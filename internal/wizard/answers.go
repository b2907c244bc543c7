package wizard

// AnswerState distinguishes an explicit skip from a question the user never
// touched. Both contribute nothing at assembly time; resume inference treats
// both as "needs attention".
type AnswerState string

const (
	AnswerStateSkipped  AnswerState = "skipped"
	AnswerStateAnswered AnswerState = "answered"
)

// Answer records the most recent user interaction with a question. Value is
// authoritative for which choice was made; Code is a cache derived from Value
// when the answer is written and is never trusted over Value at assembly
// time. Placeholder is duplicated from the question for defensive snapshot
// reconstruction.
type Answer struct {
	State       AnswerState  `json:"state"`
	Type        QuestionType `json:"type"`
	Value       string       `json:"value,omitempty"`
	BoolValue   bool         `json:"bool_value,omitempty"`
	Code        string       `json:"code,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
}

func (a Answer) Answered() bool {
	return a.State == AnswerStateAnswered
}

// AnswerStore holds the mapping from question id to the user's answer.
// Unanswered questions are simply absent. The store has no side effects
// beyond map mutation; the session controller owns recomputation of the
// derived output.
type AnswerStore struct {
	entries map[string]Answer
}

func NewAnswerStore() *AnswerStore {
	return &AnswerStore{entries: make(map[string]Answer)}
}

// AnswerString records a free-text answer for a string question, duplicating
// the placeholder token so a snapshot can be reconstructed without the
// question list.
func (s *AnswerStore) AnswerString(q Question, value string) {
	s.entries[q.ID] = Answer{
		State:       AnswerStateAnswered,
		Type:        QuestionTypeString,
		Value:       value,
		Placeholder: q.Details.Placeholder,
	}
}

// AnswerBoolean records a true/false answer, caching the fragment chosen by
// the value.
func (s *AnswerStore) AnswerBoolean(q Question, value bool) {
	code := q.Details.FalseCode
	if value {
		code = q.Details.TrueCode
	}
	s.entries[q.ID] = Answer{
		State:     AnswerStateAnswered,
		Type:      QuestionTypeBoolean,
		BoolValue: value,
		Code:      code,
	}
}

// AnswerChoice records a multiple-choice answer by option text. An option
// text with no matching option is still recorded (it contributes nothing at
// assembly time), keeping answer entry and code cache in sync with Value.
func (s *AnswerStore) AnswerChoice(q Question, optionText string) {
	var code string
	if opt, ok := q.OptionByText(optionText); ok {
		code = opt.Code
	}
	s.entries[q.ID] = Answer{
		State: AnswerStateAnswered,
		Type:  QuestionTypeMultipleChoice,
		Value: optionText,
		Code:  code,
	}
}

// MarkSkipped replaces any recorded value with an explicit skip entry.
// Skipping twice yields the same entry as skipping once.
func (s *AnswerStore) MarkSkipped(questionID string, t QuestionType) {
	s.entries[questionID] = Answer{State: AnswerStateSkipped, Type: t}
}

// Set writes a raw answer entry. Used when restoring a snapshot; no
// validation beyond what the snapshot recorded.
func (s *AnswerStore) Set(questionID string, a Answer) {
	s.entries[questionID] = a
}

func (s *AnswerStore) Get(questionID string) (Answer, bool) {
	a, ok := s.entries[questionID]
	return a, ok
}

// Reset clears all entries. Invoked when a fresh wizard run starts.
func (s *AnswerStore) Reset() {
	s.entries = make(map[string]Answer)
}

func (s *AnswerStore) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the store, safe to persist in a snapshot.
func (s *AnswerStore) Entries() map[string]Answer {
	out := make(map[string]Answer, len(s.entries))
	for id, a := range s.entries {
		out[id] = a
	}
	return out
}
