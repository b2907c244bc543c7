package wizard

import (
	"strings"
	"testing"
)

func stringQuestion(id, placeholder string) Question {
	return Question{
		ID:      id,
		Text:    "enter a value",
		Type:    QuestionTypeString,
		Details: Details{Placeholder: placeholder},
	}
}

func booleanQuestion(id, trueCode, falseCode string) Question {
	return Question{
		ID:      id,
		Text:    "yes or no",
		Type:    QuestionTypeBoolean,
		Details: Details{TrueCode: trueCode, FalseCode: falseCode},
	}
}

func choiceQuestion(id string, options ...Option) Question {
	return Question{
		ID:      id,
		Text:    "pick one",
		Type:    QuestionTypeMultipleChoice,
		Details: Details{Options: options},
	}
}

func TestAssembleSubstitution(t *testing.T) {
	q := stringQuestion("q1", "{{X}}")
	questions := []Question{q}

	cases := []struct {
		name     string
		baseCode string
		answer   func(store *AnswerStore)
		want     string
	}{
		{
			name:     "answered_replaces_token",
			baseCode: "value = {{X}};\n",
			answer:   func(store *AnswerStore) { store.AnswerString(q, "42") },
			want:     "value = 42;\n",
		},
		{
			name:     "all_occurrences_replaced",
			baseCode: "a = {{X}}; b = {{X}}; c = {{X}};",
			answer:   func(store *AnswerStore) { store.AnswerString(q, "7") },
			want:     "a = 7; b = 7; c = 7;",
		},
		{
			name:     "unanswered_leaves_token",
			baseCode: "value = {{X}};\n",
			answer:   func(store *AnswerStore) {},
			want:     "value = {{X}};\n",
		},
		{
			name:     "skipped_rewrites_to_marker",
			baseCode: "value = {{X}};\n",
			answer:   func(store *AnswerStore) { store.MarkSkipped(q.ID, q.Type) },
			want:     "value = /* SKIPPED: {{X}} */;\n",
		},
		{
			name:     "empty_value_substitutes_empty",
			baseCode: "value = {{X}};\n",
			answer:   func(store *AnswerStore) { store.AnswerString(q, "") },
			want:     "value = ;\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewAnswerStore()
			tc.answer(store)
			got := Assemble(tc.baseCode, questions, store)
			if got != tc.want {
				t.Fatalf("Assemble(%q)=%q, want %q", tc.baseCode, got, tc.want)
			}
		})
	}
}

func TestAssembleTokenWithRegexpMetacharacters(t *testing.T) {
	q := stringQuestion("q1", "{{X.*[a-z]+}}")
	store := NewAnswerStore()
	store.AnswerString(q, "safe")

	got := Assemble("v = {{X.*[a-z]+}};", []Question{q}, store)
	if got != "v = safe;" {
		t.Fatalf("Assemble=%q, want %q", got, "v = safe;")
	}
}

func TestAssembleBooleanAppend(t *testing.T) {
	q := booleanQuestion("q2", "doTrue()", "doFalse()")
	questions := []Question{q}
	baseCode := "// base\n"

	t.Run("true_appends_true_fragment", func(t *testing.T) {
		store := NewAnswerStore()
		store.AnswerBoolean(q, true)
		got := Assemble(baseCode, questions, store)
		if got != "// base\n\ndoTrue()\n" {
			t.Fatalf("Assemble=%q", got)
		}
	})

	t.Run("false_appends_false_fragment", func(t *testing.T) {
		store := NewAnswerStore()
		store.AnswerBoolean(q, false)
		got := Assemble(baseCode, questions, store)
		if got != "// base\n\ndoFalse()\n" {
			t.Fatalf("Assemble=%q", got)
		}
	})

	t.Run("unanswered_leaves_base_unchanged", func(t *testing.T) {
		got := Assemble(baseCode, questions, NewAnswerStore())
		if got != baseCode {
			t.Fatalf("Assemble=%q, want %q", got, baseCode)
		}
	})

	t.Run("skipped_leaves_base_unchanged", func(t *testing.T) {
		store := NewAnswerStore()
		store.MarkSkipped(q.ID, q.Type)
		got := Assemble(baseCode, questions, store)
		if got != baseCode {
			t.Fatalf("Assemble=%q, want %q", got, baseCode)
		}
	})
}

func TestAssembleChoiceAppend(t *testing.T) {
	q := choiceQuestion("q3",
		Option{Text: "fast", Code: "mode := \"fast\""},
		Option{Text: "slow", Code: "mode := \"slow\""},
	)
	store := NewAnswerStore()
	store.AnswerChoice(q, "slow")

	got := Assemble("// base\n", []Question{q}, store)
	want := "// base\n\nmode := \"slow\"\n"
	if got != want {
		t.Fatalf("Assemble=%q, want %q", got, want)
	}
}

func TestAssembleValueAuthoritativeOverCachedCode(t *testing.T) {
	q := choiceQuestion("q3",
		Option{Text: "fast", Code: "fastCode()"},
		Option{Text: "slow", Code: "slowCode()"},
	)
	store := NewAnswerStore()
	// Snapshot with a stale code cache: value says "fast" but code says slow.
	store.Set(q.ID, Answer{
		State: AnswerStateAnswered,
		Type:  QuestionTypeMultipleChoice,
		Value: "fast",
		Code:  "slowCode()",
	})

	got := Assemble("", []Question{q}, store)
	if !strings.Contains(got, "fastCode()") || strings.Contains(got, "slowCode()") {
		t.Fatalf("Assemble resolved fragment from cached code, not value: %q", got)
	}
}

func TestAssembleAppendOrderFollowsQuestionSequence(t *testing.T) {
	q1 := booleanQuestion("q1", "first()", "")
	q2 := choiceQuestion("q2", Option{Text: "only", Code: "second()"})
	questions := []Question{q1, q2}

	// Answer in reverse of sequence order.
	store := NewAnswerStore()
	store.AnswerChoice(q2, "only")
	store.AnswerBoolean(q1, true)

	got := Assemble("// base", questions, store)
	first := strings.Index(got, "first()")
	second := strings.Index(got, "second()")
	if first == -1 || second == -1 {
		t.Fatalf("missing fragment in output: %q", got)
	}
	if first > second {
		t.Fatalf("fragments out of sequence order: %q", got)
	}
}

func TestAssembleMalformedDetailsContributeNothing(t *testing.T) {
	cases := []struct {
		name     string
		question Question
		answer   func(store *AnswerStore, q Question)
	}{
		{
			name:     "string_without_placeholder",
			question: Question{ID: "q1", Type: QuestionTypeString},
			answer:   func(store *AnswerStore, q Question) { store.AnswerString(q, "ignored") },
		},
		{
			name:     "boolean_with_empty_fragment",
			question: booleanQuestion("q2", "", "doFalse()"),
			answer:   func(store *AnswerStore, q Question) { store.AnswerBoolean(q, true) },
		},
		{
			name:     "choice_with_unknown_option",
			question: choiceQuestion("q3", Option{Text: "a", Code: "a()"}),
			answer:   func(store *AnswerStore, q Question) { store.AnswerChoice(q, "missing") },
		},
		{
			name:     "choice_with_no_options",
			question: Question{ID: "q4", Type: QuestionTypeMultipleChoice},
			answer:   func(store *AnswerStore, q Question) { store.AnswerChoice(q, "anything") },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewAnswerStore()
			tc.answer(store, tc.question)
			got := Assemble("// base", []Question{tc.question}, store)
			if got != "// base" {
				t.Fatalf("malformed question contributed to output: %q", got)
			}
		})
	}
}

func TestAssembleDeterministic(t *testing.T) {
	questions := []Question{
		stringQuestion("q1", "{{NAME}}"),
		booleanQuestion("q2", "t()", "f()"),
		choiceQuestion("q3", Option{Text: "x", Code: "x()"}),
	}
	store := NewAnswerStore()
	store.AnswerString(questions[0], "scanner")
	store.AnswerBoolean(questions[1], true)
	store.AnswerChoice(questions[2], "x")

	baseCode := "name = {{NAME}}\n"
	first := Assemble(baseCode, questions, store)
	second := Assemble(baseCode, questions, store)
	if first != second {
		t.Fatalf("Assemble not deterministic:\n%q\n%q", first, second)
	}
}

func TestAssembleNilStore(t *testing.T) {
	got := Assemble("// base", []Question{stringQuestion("q1", "{{X}}")}, nil)
	if got != "// base" {
		t.Fatalf("Assemble with nil store=%q", got)
	}
}
