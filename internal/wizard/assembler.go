package wizard

import (
	"fmt"
	"strings"
)

// SkipMarker is spliced in place of a string question's placeholder when the
// user explicitly skipped it. Leaving the raw token in generated code hides
// the skip from anyone reading the output, so the token is rewritten to a
// visible comment instead.
func SkipMarker(placeholder string) string {
	return fmt.Sprintf("/* SKIPPED: %s */", placeholder)
}

// Assemble folds the base template, the ordered question sequence and the
// answer store into the final output document. Iteration is always in
// question-sequence order, never answer-insertion order, so append-style
// fragments land in a stable position regardless of the order the user
// answered in.
//
// Per question:
//   - string, answered: global literal replacement of the placeholder token
//     with the answer value. Plain string search, never a pattern, so tokens
//     containing regexp metacharacters are safe.
//   - string, skipped: the placeholder is rewritten to a visible skip marker.
//   - string, unanswered: the token is left in place.
//   - boolean / multiple-choice, answered: the fragment selected by the
//     recorded value is appended, framed by newlines. Value is authoritative:
//     the fragment is re-resolved from the question here, not echoed from the
//     cached Answer.Code.
//   - anything malformed (missing placeholder, unknown option, empty
//     fragment): contributes nothing.
//
// Assemble is deterministic and never fails: identical inputs yield
// byte-identical output.
func Assemble(baseCode string, questions []Question, answers *AnswerStore) string {
	output := baseCode
	if answers == nil {
		return output
	}
	for _, q := range questions {
		answer, ok := answers.Get(q.ID)
		switch q.Type {
		case QuestionTypeString:
			if q.Details.Placeholder == "" {
				continue
			}
			if !ok {
				continue
			}
			if answer.State == AnswerStateSkipped {
				output = strings.ReplaceAll(output, q.Details.Placeholder, SkipMarker(q.Details.Placeholder))
				continue
			}
			if answer.Answered() {
				output = strings.ReplaceAll(output, q.Details.Placeholder, answer.Value)
			}
		case QuestionTypeBoolean:
			if !ok || !answer.Answered() {
				continue
			}
			fragment := q.Details.FalseCode
			if answer.BoolValue {
				fragment = q.Details.TrueCode
			}
			if fragment == "" {
				continue
			}
			output += "\n" + fragment + "\n"
		case QuestionTypeMultipleChoice:
			if !ok || !answer.Answered() {
				continue
			}
			opt, found := q.OptionByText(answer.Value)
			if !found || opt.Code == "" {
				continue
			}
			output += "\n" + opt.Code + "\n"
		}
	}
	return output
}
