package wizard

import "testing"

func TestInferResumeIndex(t *testing.T) {
	q1 := stringQuestion("q1", "{{A}}")
	q2 := booleanQuestion("q2", "t()", "f()")
	q3 := choiceQuestion("q3", Option{Text: "x", Code: "x()"})
	questions := []Question{q1, q2, q3}

	cases := []struct {
		name    string
		prepare func(store *AnswerStore)
		want    int
	}{
		{
			name:    "nothing_answered",
			prepare: func(store *AnswerStore) {},
			want:    0,
		},
		{
			name: "skip_counts_as_needing_attention",
			prepare: func(store *AnswerStore) {
				store.AnswerString(q1, "v")
				store.MarkSkipped(q2.ID, q2.Type)
			},
			want: 1,
		},
		{
			name: "first_gap_wins",
			prepare: func(store *AnswerStore) {
				store.AnswerString(q1, "v")
				store.AnswerChoice(q3, "x")
			},
			want: 1,
		},
		{
			name: "all_answered_returns_last",
			prepare: func(store *AnswerStore) {
				store.AnswerString(q1, "v")
				store.AnswerBoolean(q2, false)
				store.AnswerChoice(q3, "x")
			},
			want: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewAnswerStore()
			tc.prepare(store)
			got := InferResumeIndex(questions, store)
			if got != tc.want {
				t.Fatalf("InferResumeIndex=%d, want %d", got, tc.want)
			}
		})
	}
}

func TestInferResumeIndexEmptySequence(t *testing.T) {
	if got := InferResumeIndex(nil, NewAnswerStore()); got != 0 {
		t.Fatalf("InferResumeIndex(empty)=%d, want 0", got)
	}
}

func TestInferResumeIndexNilStore(t *testing.T) {
	questions := []Question{stringQuestion("q1", "{{A}}")}
	if got := InferResumeIndex(questions, nil); got != 0 {
		t.Fatalf("InferResumeIndex(nil store)=%d, want 0", got)
	}
}
