package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/types"
)

type SavedTemplateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, templates []*types.SavedTemplate) ([]*types.SavedTemplate, error)
	Update(ctx context.Context, tx *gorm.DB, template *types.SavedTemplate) error
	GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.SavedTemplate, error)
	GetByUserAndNames(ctx context.Context, tx *gorm.DB, userID uuid.UUID, names []string) ([]*types.SavedTemplate, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) error
}

type savedTemplateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSavedTemplateRepo(db *gorm.DB, baseLog *logger.Logger) SavedTemplateRepo {
	repoLog := baseLog.With("repo", "SavedTemplateRepo")
	return &savedTemplateRepo{db: db, log: repoLog}
}

func (r *savedTemplateRepo) Create(ctx context.Context, tx *gorm.DB, templates []*types.SavedTemplate) ([]*types.SavedTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(templates) == 0 {
		return []*types.SavedTemplate{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *savedTemplateRepo) Update(ctx context.Context, tx *gorm.DB, template *types.SavedTemplate) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if template == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.SavedTemplate{}).
		Where("id = ?", template.ID).
		Updates(map[string]interface{}{
			"answers":     template.Answers,
			"code":        template.Code,
			"is_complete": template.IsComplete,
		}).Error; err != nil {
		return err
	}
	return nil
}

// GetByUserIDs returns snapshots in write order (created_at ascending).
// Presentation order (newest first) is the caller's concern so the stored
// order stays stable for debugging.
func (r *savedTemplateRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.SavedTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SavedTemplate
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *savedTemplateRepo) GetByUserAndNames(ctx context.Context, tx *gorm.DB, userID uuid.UUID, names []string) ([]*types.SavedTemplate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SavedTemplate
	if len(names) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND name IN ?", userID, names).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *savedTemplateRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, templateIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(templateIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", templateIDs).
		Delete(&types.SavedTemplate{}).Error; err != nil {
		return err
	}
	return nil
}
