package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	pkgerrors "github.com/chasinalts/comet-scanner-wizard/internal/pkg/errors"
	"github.com/chasinalts/comet-scanner-wizard/internal/repos"
	"github.com/chasinalts/comet-scanner-wizard/internal/sse"
	"github.com/chasinalts/comet-scanner-wizard/internal/types"
	"github.com/chasinalts/comet-scanner-wizard/internal/wizard"
)

type QuestionService interface {
	GetAll(ctx context.Context) ([]*types.Question, error)
	GetWizardQuestions(ctx context.Context) ([]wizard.Question, error)
	Create(ctx context.Context, question *types.Question) (*types.Question, error)
	Update(ctx context.Context, question *types.Question) (*types.Question, error)
	Reorder(ctx context.Context, orderedIDs []uuid.UUID) error
	Delete(ctx context.Context, questionID uuid.UUID) error
	ImportYAML(ctx context.Context, raw []byte) ([]*types.Question, error)
}

type questionService struct {
	db           *gorm.DB
	log          *logger.Logger
	questionRepo repos.QuestionRepo
	hub          *sse.SSEHub
	bus          SSEBus
}

func NewQuestionService(db *gorm.DB, log *logger.Logger, questionRepo repos.QuestionRepo, hub *sse.SSEHub, bus SSEBus) QuestionService {
	serviceLog := log.With("service", "QuestionService")
	return &questionService{db: db, log: serviceLog, questionRepo: questionRepo, hub: hub, bus: bus}
}

func (qs *questionService) GetAll(ctx context.Context) ([]*types.Question, error) {
	questions, err := qs.questionRepo.GetAllOrdered(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to load questions: %w", err)
	}
	return questions, nil
}

// GetWizardQuestions converts the stored definitions to the wizard engine's
// shape. A record whose details payload fails to decode still yields a
// question (with empty details, so it contributes nothing at assembly);
// the decode failure is logged, never surfaced.
func (qs *questionService) GetWizardQuestions(ctx context.Context) ([]wizard.Question, error) {
	records, err := qs.questionRepo.GetAllOrdered(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to load questions: %w", err)
	}
	out := make([]wizard.Question, 0, len(records))
	for _, record := range records {
		q := wizard.Question{
			ID:   record.ID.String(),
			Text: record.Text,
			Type: wizard.QuestionType(record.Type),
		}
		if len(record.Details) > 0 {
			if dErr := json.Unmarshal(record.Details, &q.Details); dErr != nil {
				qs.log.Warn("Malformed question details, treating as empty", "questionID", record.ID, "error", dErr)
				q.Details = wizard.Details{}
			}
		}
		out = append(out, q)
	}
	return out, nil
}

func (qs *questionService) Create(ctx context.Context, question *types.Question) (*types.Question, error) {
	if question == nil {
		return nil, pkgerrors.ErrInvalidArgument
	}
	if err := validateQuestion(question); err != nil {
		return nil, err
	}
	err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, gErr := qs.questionRepo.GetAllOrdered(ctx, tx)
		if gErr != nil {
			return fmt.Errorf("Failed to load questions: %w", gErr)
		}
		question.ID = uuid.New()
		question.Position = len(existing)
		if _, cErr := qs.questionRepo.Create(ctx, tx, []*types.Question{question}); cErr != nil {
			return fmt.Errorf("Failed to create question: %w", cErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	publishSSE(ctx, qs.log, qs.hub, qs.bus, sse.AdminChannel, sse.SSEEventQuestionsUpdated, question.ID.String())
	return question, nil
}

func (qs *questionService) Update(ctx context.Context, question *types.Question) (*types.Question, error) {
	if question == nil {
		return nil, pkgerrors.ErrInvalidArgument
	}
	if err := validateQuestion(question); err != nil {
		return nil, err
	}
	err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, gErr := qs.questionRepo.GetByIDs(ctx, tx, []uuid.UUID{question.ID})
		if gErr != nil {
			return fmt.Errorf("Failed to load question: %w", gErr)
		}
		if len(existing) == 0 {
			return pkgerrors.ErrNotFound
		}
		if uErr := qs.questionRepo.Update(ctx, tx, question); uErr != nil {
			return fmt.Errorf("Failed to update question: %w", uErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	publishSSE(ctx, qs.log, qs.hub, qs.bus, sse.AdminChannel, sse.SSEEventQuestionsUpdated, question.ID.String())
	return question, nil
}

// Reorder rewrites every question's position to its index in orderedIDs.
// IDs missing from the list keep their relative order after the listed ones.
func (qs *questionService) Reorder(ctx context.Context, orderedIDs []uuid.UUID) error {
	err := qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			if err := qs.questionRepo.UpdatePosition(ctx, tx, id, i); err != nil {
				return fmt.Errorf("Failed to reorder question %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	publishSSE(ctx, qs.log, qs.hub, qs.bus, sse.AdminChannel, sse.SSEEventQuestionsUpdated, nil)
	return nil
}

func (qs *questionService) Delete(ctx context.Context, questionID uuid.UUID) error {
	if err := qs.questionRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{questionID}); err != nil {
		return fmt.Errorf("Failed to delete question: %w", err)
	}
	publishSSE(ctx, qs.log, qs.hub, qs.bus, sse.AdminChannel, sse.SSEEventQuestionsUpdated, questionID.String())
	return nil
}

// yamlQuestion is the seed-file shape for bulk question import.
type yamlQuestion struct {
	Text        string `yaml:"text"`
	Type        string `yaml:"type"`
	Placeholder string `yaml:"placeholder,omitempty"`
	HelperImage string `yaml:"helper_image,omitempty"`
	TrueCode    string `yaml:"true_code,omitempty"`
	FalseCode   string `yaml:"false_code,omitempty"`
	TrueText    string `yaml:"true_text,omitempty"`
	FalseText   string `yaml:"false_text,omitempty"`
	Options     []struct {
		Text  string `yaml:"text"`
		Code  string `yaml:"code"`
		Image string `yaml:"image,omitempty"`
	} `yaml:"options,omitempty"`
}

type yamlQuestionFile struct {
	Questions []yamlQuestion `yaml:"questions"`
}

// parseQuestionsYAML turns a YAML seed payload into ready-to-insert records,
// positions assigned from file order.
func parseQuestionsYAML(raw []byte) ([]*types.Question, error) {
	var file yamlQuestionFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: failed to parse questions YAML: %v", pkgerrors.ErrInvalidArgument, err)
	}
	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("%w: questions YAML contains no questions", pkgerrors.ErrInvalidArgument)
	}

	records := make([]*types.Question, 0, len(file.Questions))
	for i, yq := range file.Questions {
		details := wizard.Details{
			Placeholder: yq.Placeholder,
			HelperImage: yq.HelperImage,
			TrueCode:    yq.TrueCode,
			FalseCode:   yq.FalseCode,
			TrueText:    yq.TrueText,
			FalseText:   yq.FalseText,
		}
		for _, opt := range yq.Options {
			details.Options = append(details.Options, wizard.Option{Text: opt.Text, Code: opt.Code, Image: opt.Image})
		}
		rawDetails, mErr := json.Marshal(details)
		if mErr != nil {
			return nil, fmt.Errorf("Failed to encode question details: %w", mErr)
		}
		record := &types.Question{
			ID:       uuid.New(),
			Position: i,
			Text:     yq.Text,
			Type:     yq.Type,
			Details:  datatypes.JSON(rawDetails),
		}
		if err := validateQuestion(record); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// ImportYAML replaces the whole question list with the definitions in the
// YAML payload, in file order.
func (qs *questionService) ImportYAML(ctx context.Context, raw []byte) ([]*types.Question, error) {
	records, err := parseQuestionsYAML(raw)
	if err != nil {
		return nil, err
	}

	err = qs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if dErr := qs.questionRepo.FullDeleteAll(ctx, tx); dErr != nil {
			return fmt.Errorf("Failed to clear questions: %w", dErr)
		}
		if _, cErr := qs.questionRepo.Create(ctx, tx, records); cErr != nil {
			return fmt.Errorf("Failed to create questions: %w", cErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	publishSSE(ctx, qs.log, qs.hub, qs.bus, sse.AdminChannel, sse.SSEEventQuestionsUpdated, nil)
	return records, nil
}

func validateQuestion(question *types.Question) error {
	if question.Text == "" {
		return fmt.Errorf("%w: question text required", pkgerrors.ErrInvalidArgument)
	}
	if !wizard.QuestionType(question.Type).Valid() {
		return fmt.Errorf("%w: unknown question type %q", pkgerrors.ErrInvalidArgument, question.Type)
	}
	return nil
}
