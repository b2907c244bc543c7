package wizard

import (
	"reflect"
	"testing"
)

func TestMarkSkippedIdempotent(t *testing.T) {
	store := NewAnswerStore()
	store.MarkSkipped("q1", QuestionTypeBoolean)
	first, _ := store.Get("q1")

	store.MarkSkipped("q1", QuestionTypeBoolean)
	second, _ := store.Get("q1")

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("skip not idempotent: %+v vs %+v", first, second)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", store.Len())
	}
}

func TestMarkSkippedDropsRecordedValue(t *testing.T) {
	q := booleanQuestion("q1", "t()", "f()")
	store := NewAnswerStore()
	store.AnswerBoolean(q, true)
	store.MarkSkipped(q.ID, q.Type)

	answer, ok := store.Get(q.ID)
	if !ok {
		t.Fatal("skip entry missing")
	}
	if answer.State != AnswerStateSkipped {
		t.Fatalf("state=%q, want skipped", answer.State)
	}
	if answer.Code != "" || answer.Value != "" || answer.BoolValue {
		t.Fatalf("skip kept stale value: %+v", answer)
	}
}

func TestAnswerOverwritesKeepCodeInSyncWithValue(t *testing.T) {
	q := booleanQuestion("q1", "t()", "f()")
	store := NewAnswerStore()

	store.AnswerBoolean(q, true)
	if a, _ := store.Get(q.ID); a.Code != "t()" {
		t.Fatalf("code=%q, want t()", a.Code)
	}

	store.AnswerBoolean(q, false)
	if a, _ := store.Get(q.ID); a.Code != "f()" {
		t.Fatalf("code not recomputed on overwrite: %q", a.Code)
	}
	if store.Len() != 1 {
		t.Fatalf("expected single entry per question, got %d", store.Len())
	}
}

func TestAnswerChoiceCachesOptionCode(t *testing.T) {
	q := choiceQuestion("q1",
		Option{Text: "a", Code: "a()"},
		Option{Text: "b", Code: "b()"},
	)
	store := NewAnswerStore()

	store.AnswerChoice(q, "b")
	if a, _ := store.Get(q.ID); a.Value != "b" || a.Code != "b()" {
		t.Fatalf("answer=%+v, want value b / code b()", a)
	}

	store.AnswerChoice(q, "missing")
	if a, _ := store.Get(q.ID); a.Value != "missing" || a.Code != "" {
		t.Fatalf("unknown option should record empty code cache: %+v", a)
	}
}

func TestAnswerStringDuplicatesPlaceholder(t *testing.T) {
	q := stringQuestion("q1", "{{X}}")
	store := NewAnswerStore()
	store.AnswerString(q, "42")

	a, _ := store.Get(q.ID)
	if a.Placeholder != "{{X}}" {
		t.Fatalf("placeholder=%q, want {{X}}", a.Placeholder)
	}
}

func TestResetClearsAllEntries(t *testing.T) {
	store := NewAnswerStore()
	store.AnswerString(stringQuestion("q1", "{{X}}"), "v")
	store.MarkSkipped("q2", QuestionTypeBoolean)

	store.Reset()
	if store.Len() != 0 {
		t.Fatalf("expected empty store after reset, got %d entries", store.Len())
	}
	if _, ok := store.Get("q1"); ok {
		t.Fatal("entry survived reset")
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	store := NewAnswerStore()
	store.AnswerString(stringQuestion("q1", "{{X}}"), "v")

	entries := store.Entries()
	entries["q1"] = Answer{State: AnswerStateSkipped}
	delete(entries, "q1")

	if a, ok := store.Get("q1"); !ok || a.State != AnswerStateAnswered {
		t.Fatalf("mutating the copy changed the store: %+v", a)
	}
}
