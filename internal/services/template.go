package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	pkgerrors "github.com/chasinalts/comet-scanner-wizard/internal/pkg/errors"
	"github.com/chasinalts/comet-scanner-wizard/internal/repos"
	"github.com/chasinalts/comet-scanner-wizard/internal/types"
	"github.com/chasinalts/comet-scanner-wizard/internal/wizard"
)

type TemplateService interface {
	SaveSnapshot(ctx context.Context, userID uuid.UUID, name string, answers map[string]wizard.Answer, code string, isComplete bool) (*types.SavedTemplate, error)
	ListSnapshots(ctx context.Context, userID uuid.UUID) ([]*types.SavedTemplate, error)
	GetSnapshot(ctx context.Context, userID uuid.UUID, name string) (*types.SavedTemplate, error)
	DeleteSnapshot(ctx context.Context, userID uuid.UUID, name string) error
	DecodeAnswers(raw datatypes.JSON) map[string]wizard.Answer
}

type templateService struct {
	db           *gorm.DB
	log          *logger.Logger
	templateRepo repos.SavedTemplateRepo
}

func NewTemplateService(db *gorm.DB, log *logger.Logger, templateRepo repos.SavedTemplateRepo) TemplateService {
	serviceLog := log.With("service", "TemplateService")
	return &templateService{db: db, log: serviceLog, templateRepo: templateRepo}
}

// SaveSnapshot stores the answer map and generated code under (user, name).
// Saving to an existing name overwrites that snapshot, same name means same
// slot.
func (ts *templateService) SaveSnapshot(ctx context.Context, userID uuid.UUID, name string, answers map[string]wizard.Answer, code string, isComplete bool) (*types.SavedTemplate, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: snapshot name required", pkgerrors.ErrInvalidArgument)
	}
	if answers == nil {
		answers = map[string]wizard.Answer{}
	}
	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("Failed to encode answers: %w", err)
	}

	var snapshot *types.SavedTemplate
	err = ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, gErr := ts.templateRepo.GetByUserAndNames(ctx, tx, userID, []string{name})
		if gErr != nil {
			return fmt.Errorf("Failed to load snapshot: %w", gErr)
		}
		if len(existing) > 0 {
			snapshot = existing[0]
			snapshot.Answers = datatypes.JSON(rawAnswers)
			snapshot.Code = code
			snapshot.IsComplete = isComplete
			if uErr := ts.templateRepo.Update(ctx, tx, snapshot); uErr != nil {
				return fmt.Errorf("Failed to update snapshot: %w", uErr)
			}
			return nil
		}
		snapshot = &types.SavedTemplate{
			ID:         uuid.New(),
			UserID:     userID,
			Name:       name,
			Answers:    datatypes.JSON(rawAnswers),
			Code:       code,
			IsComplete: isComplete,
		}
		if _, cErr := ts.templateRepo.Create(ctx, tx, []*types.SavedTemplate{snapshot}); cErr != nil {
			return fmt.Errorf("Failed to create snapshot: %w", cErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// ListSnapshots returns the user's snapshots newest first by save time.
// Re-saving an existing name bumps UpdatedAt, so an upserted snapshot moves
// to the front.
func (ts *templateService) ListSnapshots(ctx context.Context, userID uuid.UUID) ([]*types.SavedTemplate, error) {
	snapshots, err := ts.templateRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("Failed to list snapshots: %w", err)
	}
	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].UpdatedAt.After(snapshots[j].UpdatedAt)
	})
	return snapshots, nil
}

func (ts *templateService) GetSnapshot(ctx context.Context, userID uuid.UUID, name string) (*types.SavedTemplate, error) {
	snapshots, err := ts.templateRepo.GetByUserAndNames(ctx, nil, userID, []string{name})
	if err != nil {
		return nil, fmt.Errorf("Failed to load snapshot: %w", err)
	}
	if len(snapshots) == 0 {
		return nil, pkgerrors.ErrNotFound
	}
	return snapshots[0], nil
}

func (ts *templateService) DeleteSnapshot(ctx context.Context, userID uuid.UUID, name string) error {
	return ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		snapshots, gErr := ts.templateRepo.GetByUserAndNames(ctx, tx, userID, []string{name})
		if gErr != nil {
			return fmt.Errorf("Failed to load snapshot: %w", gErr)
		}
		if len(snapshots) == 0 {
			return pkgerrors.ErrNotFound
		}
		if dErr := ts.templateRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{snapshots[0].ID}); dErr != nil {
			return fmt.Errorf("Failed to delete snapshot: %w", dErr)
		}
		return nil
	})
}

// DecodeAnswers turns a stored answers payload back into the wizard's answer
// map. A payload that fails to decode yields an empty map, the snapshot then
// resumes from the first question instead of failing the load.
func (ts *templateService) DecodeAnswers(raw datatypes.JSON) map[string]wizard.Answer {
	answers := map[string]wizard.Answer{}
	if len(raw) == 0 {
		return answers
	}
	if err := json.Unmarshal(raw, &answers); err != nil {
		ts.log.Warn("Malformed snapshot answers, treating as empty", "error", err)
		return map[string]wizard.Answer{}
	}
	return answers
}
