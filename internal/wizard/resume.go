package wizard

// InferResumeIndex returns the position a partially completed session should
// continue at: the first question that is unanswered or explicitly skipped.
// When every question carries a non-skipped answer it returns the last index,
// and 0 for an empty sequence.
func InferResumeIndex(questions []Question, answers *AnswerStore) int {
	if len(questions) == 0 {
		return 0
	}
	for i, q := range questions {
		if answers == nil {
			return i
		}
		answer, ok := answers.Get(q.ID)
		if !ok || !answer.Answered() {
			return i
		}
	}
	return len(questions) - 1
}
