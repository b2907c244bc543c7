package services

import (
	"encoding/json"
	"errors"
	"testing"

	pkgerrors "github.com/chasinalts/comet-scanner-wizard/internal/pkg/errors"
	"github.com/chasinalts/comet-scanner-wizard/internal/types"
	"github.com/chasinalts/comet-scanner-wizard/internal/wizard"
)

func TestParseQuestionsYAML(t *testing.T) {
	raw := []byte(`
questions:
  - text: "What ticker should the scanner watch?"
    type: string
    placeholder: "{{TICKER}}"
  - text: "Include volume filter?"
    type: boolean
    true_code: "vol = volume > sma(volume, 20)"
    false_code: ""
  - text: "Pick a timeframe"
    type: multiple-choice
    options:
      - text: "1h"
        code: "tf = \"60\""
      - text: "1d"
        code: "tf = \"D\""
`)

	records, err := parseQuestionsYAML(raw)
	if err != nil {
		t.Fatalf("parseQuestionsYAML returned error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(records))
	}
	for i, record := range records {
		if record.Position != i {
			t.Errorf("question %d: position = %d, want %d", i, record.Position, i)
		}
	}
	if records[0].Type != string(wizard.QuestionTypeString) {
		t.Errorf("first question type = %q, want string", records[0].Type)
	}

	var details wizard.Details
	if err := json.Unmarshal(records[2].Details, &details); err != nil {
		t.Fatalf("failed to decode details: %v", err)
	}
	if len(details.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(details.Options))
	}
	if details.Options[0].Text != "1h" {
		t.Errorf("first option text = %q, want 1h", details.Options[0].Text)
	}
}

func TestParseQuestionsYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed yaml", raw: "questions: [unclosed"},
		{name: "no questions", raw: "questions: []"},
		{name: "missing text", raw: "questions:\n  - type: string"},
		{name: "unknown type", raw: "questions:\n  - text: hi\n    type: dropdown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseQuestionsYAML([]byte(tt.raw))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name     string
		question types.Question
		wantErr  bool
	}{
		{name: "valid string", question: types.Question{Text: "q", Type: "string"}},
		{name: "valid boolean", question: types.Question{Text: "q", Type: "boolean"}},
		{name: "valid multiple-choice", question: types.Question{Text: "q", Type: "multiple-choice"}},
		{name: "empty text", question: types.Question{Type: "string"}, wantErr: true},
		{name: "bad type", question: types.Question{Text: "q", Type: "number"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateQuestion(&tt.question)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateQuestion() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
