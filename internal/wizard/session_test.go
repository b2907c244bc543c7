package wizard

import (
	"errors"
	"strings"
	"testing"
)

func sessionQuestions() []Question {
	return []Question{
		stringQuestion("q1", "{{NAME}}"),
		booleanQuestion("q2", "enableFilter()", "disableFilter()"),
		choiceQuestion("q3",
			Option{Text: "daily", Code: "tf := \"D\""},
			Option{Text: "weekly", Code: "tf := \"W\""},
		),
	}
}

func TestSessionStartsInChoiceMode(t *testing.T) {
	s := NewSession(sessionQuestions(), "base", "full")
	if s.Mode() != ModeChoice {
		t.Fatalf("mode=%q, want choice", s.Mode())
	}
	if s.Output() != "" {
		t.Fatalf("fresh session output=%q, want empty", s.Output())
	}
}

func TestChooseFullTemplate(t *testing.T) {
	t.Run("shows_full_template_verbatim", func(t *testing.T) {
		s := NewSession(sessionQuestions(), "base", "full template body")
		if err := s.ChooseFullTemplate(); err != nil {
			t.Fatalf("ChooseFullTemplate: %v", err)
		}
		if s.Output() != "full template body" {
			t.Fatalf("output=%q", s.Output())
		}
		if s.Mode() != ModePreview {
			t.Fatalf("mode=%q, want preview", s.Mode())
		}
	})

	t.Run("errors_when_unavailable", func(t *testing.T) {
		s := NewSession(sessionQuestions(), "base", "")
		err := s.ChooseFullTemplate()
		if !errors.Is(err, ErrFullTemplateUnavailable) {
			t.Fatalf("err=%v, want ErrFullTemplateUnavailable", err)
		}
		if s.Mode() != ModeChoice {
			t.Fatalf("failed choose changed mode to %q", s.Mode())
		}
	})
}

func TestStartBuilder(t *testing.T) {
	t.Run("requires_questions", func(t *testing.T) {
		s := NewSession(nil, "base", "full")
		if err := s.StartBuilder(); !errors.Is(err, ErrNoQuestions) {
			t.Fatalf("err=%v, want ErrNoQuestions", err)
		}
	})

	t.Run("initial_output_is_base_template", func(t *testing.T) {
		s := NewSession(sessionQuestions(), "name = {{NAME}}\n", "full")
		if err := s.StartBuilder(); err != nil {
			t.Fatalf("StartBuilder: %v", err)
		}
		if s.Output() != "name = {{NAME}}\n" {
			t.Fatalf("output=%q, want untouched base", s.Output())
		}
		if idx, total := s.Position(); idx != 0 || total != 3 {
			t.Fatalf("position=%d/%d, want 0/3", idx, total)
		}
	})

	t.Run("resets_previous_answers", func(t *testing.T) {
		s := NewSession(sessionQuestions(), "name = {{NAME}}\n", "full")
		if err := s.StartBuilder(); err != nil {
			t.Fatalf("StartBuilder: %v", err)
		}
		if err := s.AnswerString("q1", "comet"); err != nil {
			t.Fatalf("AnswerString: %v", err)
		}
		if err := s.StartBuilder(); err != nil {
			t.Fatalf("restart: %v", err)
		}
		if len(s.Answers()) != 0 {
			t.Fatalf("answers survived restart: %v", s.Answers())
		}
		if s.Output() != "name = {{NAME}}\n" {
			t.Fatalf("restart output=%q", s.Output())
		}
	})
}

func TestAnswerEventsRecomputeOutputSynchronously(t *testing.T) {
	s := NewSession(sessionQuestions(), "name = {{NAME}}\n", "")
	if err := s.StartBuilder(); err != nil {
		t.Fatalf("StartBuilder: %v", err)
	}

	if err := s.AnswerString("q1", "comet"); err != nil {
		t.Fatalf("AnswerString: %v", err)
	}
	if s.Output() != "name = comet\n" {
		t.Fatalf("output after answer=%q", s.Output())
	}

	if err := s.AnswerBoolean("q2", true); err != nil {
		t.Fatalf("AnswerBoolean: %v", err)
	}
	if !strings.Contains(s.Output(), "enableFilter()") {
		t.Fatalf("output missing boolean fragment: %q", s.Output())
	}

	if err := s.AnswerChoice("q3", "weekly"); err != nil {
		t.Fatalf("AnswerChoice: %v", err)
	}
	if !strings.Contains(s.Output(), "tf := \"W\"") {
		t.Fatalf("output missing choice fragment: %q", s.Output())
	}

	// Re-answering replaces the earlier contribution.
	if err := s.AnswerBoolean("q2", false); err != nil {
		t.Fatalf("AnswerBoolean: %v", err)
	}
	if strings.Contains(s.Output(), "enableFilter()") {
		t.Fatalf("stale fragment in output: %q", s.Output())
	}
	if !strings.Contains(s.Output(), "disableFilter()") {
		t.Fatalf("output missing re-answered fragment: %q", s.Output())
	}
}

func TestAnswerValidation(t *testing.T) {
	s := NewSession(sessionQuestions(), "base", "")

	if err := s.AnswerString("q1", "early"); !errors.Is(err, ErrBuilderNotStarted) {
		t.Fatalf("answer before start: err=%v", err)
	}

	if err := s.StartBuilder(); err != nil {
		t.Fatalf("StartBuilder: %v", err)
	}
	if err := s.AnswerString("nope", "v"); !errors.Is(err, ErrUnknownQuestion) {
		t.Fatalf("unknown question: err=%v", err)
	}
	if err := s.AnswerString("q2", "v"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("type mismatch: err=%v", err)
	}
	if err := s.AnswerBoolean("q1", true); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("type mismatch: err=%v", err)
	}
	if err := s.AnswerChoice("q2", "daily"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("type mismatch: err=%v", err)
	}
}

func TestSkipCurrentAdvancesAndSignalsEnd(t *testing.T) {
	s := NewSession(sessionQuestions(), "name = {{NAME}}\n", "")
	if err := s.StartBuilder(); err != nil {
		t.Fatalf("StartBuilder: %v", err)
	}

	advanced, err := s.SkipCurrent()
	if err != nil || !advanced {
		t.Fatalf("first skip: advanced=%v err=%v", advanced, err)
	}
	if !strings.Contains(s.Output(), "/* SKIPPED: {{NAME}} */") {
		t.Fatalf("skip marker missing: %q", s.Output())
	}
	if idx, _ := s.Position(); idx != 1 {
		t.Fatalf("index after skip=%d, want 1", idx)
	}

	if _, err := s.SkipCurrent(); err != nil {
		t.Fatalf("second skip: %v", err)
	}
	advanced, err = s.SkipCurrent()
	if err != nil {
		t.Fatalf("last skip: %v", err)
	}
	if advanced {
		t.Fatal("skip at last question should report no further question")
	}

	// The skip itself is still recorded even at the boundary.
	if a, ok := s.Answers()["q3"]; !ok || a.State != AnswerStateSkipped {
		t.Fatalf("last question skip not recorded: %+v", a)
	}
}

func TestRestoreIncompleteSnapshotResumes(t *testing.T) {
	questions := sessionQuestions()
	s := NewSession(questions, "name = {{NAME}}\n", "")

	answers := map[string]Answer{
		"q1": {State: AnswerStateAnswered, Type: QuestionTypeString, Value: "comet", Placeholder: "{{NAME}}"},
		"q2": {State: AnswerStateSkipped, Type: QuestionTypeBoolean},
	}
	s.Restore(answers, "name = comet\n", false)

	if s.Mode() != ModeActive {
		t.Fatalf("mode=%q, want active", s.Mode())
	}
	if s.Output() != "name = comet\n" {
		t.Fatalf("restored output not verbatim: %q", s.Output())
	}
	if idx, _ := s.Position(); idx != 1 {
		t.Fatalf("resume index=%d, want 1 (first skipped question)", idx)
	}
	if len(s.Answers()) != 2 {
		t.Fatalf("restored answers=%v", s.Answers())
	}
}

func TestRestoreCompleteSnapshotStaysInPreview(t *testing.T) {
	s := NewSession(sessionQuestions(), "base", "")
	s.Restore(map[string]Answer{
		"q1": {State: AnswerStateAnswered, Type: QuestionTypeString, Value: "v"},
	}, "finished code", true)

	if s.Mode() != ModePreview {
		t.Fatalf("mode=%q, want preview", s.Mode())
	}
	if s.Output() != "finished code" {
		t.Fatalf("output=%q", s.Output())
	}
	// A complete snapshot is display-only; the live store is untouched.
	if len(s.Answers()) != 0 {
		t.Fatalf("complete restore populated the store: %v", s.Answers())
	}
}

func TestFinishKeepsOutput(t *testing.T) {
	s := NewSession(sessionQuestions(), "name = {{NAME}}\n", "")
	if err := s.StartBuilder(); err != nil {
		t.Fatalf("StartBuilder: %v", err)
	}
	if err := s.AnswerString("q1", "comet"); err != nil {
		t.Fatalf("AnswerString: %v", err)
	}
	s.Finish()
	if s.Mode() != ModePreview {
		t.Fatalf("mode=%q, want preview", s.Mode())
	}
	if s.Output() != "name = comet\n" {
		t.Fatalf("finish changed output: %q", s.Output())
	}
}

func TestNavigationRequiresActiveMode(t *testing.T) {
	s := NewSession(sessionQuestions(), "base", "")
	if s.Next() || s.Previous() {
		t.Fatal("navigation should be a no-op outside the question flow")
	}
}
