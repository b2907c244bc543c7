package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/types"
)

type QuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, questions []*types.Question) ([]*types.Question, error)
	GetAllOrdered(ctx context.Context, tx *gorm.DB) ([]*types.Question, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.Question, error)
	Update(ctx context.Context, tx *gorm.DB, question *types.Question) error
	UpdatePosition(ctx context.Context, tx *gorm.DB, questionID uuid.UUID, position int) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) error
	FullDeleteAll(ctx context.Context, tx *gorm.DB) error
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	repoLog := baseLog.With("repo", "QuestionRepo")
	return &questionRepo{db: db, log: repoLog}
}

func (r *questionRepo) Create(ctx context.Context, tx *gorm.DB, questions []*types.Question) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(questions) == 0 {
		return []*types.Question{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) GetAllOrdered(ctx context.Context, tx *gorm.DB) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Question
	if err := transaction.WithContext(ctx).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *questionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) ([]*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Question
	if len(questionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", questionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *questionRepo) Update(ctx context.Context, tx *gorm.DB, question *types.Question) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if question == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Question{}).
		Where("id = ?", question.ID).
		Updates(map[string]interface{}{
			"text":    question.Text,
			"type":    question.Type,
			"details": question.Details,
		}).Error; err != nil {
		return err
	}
	return nil
}

func (r *questionRepo) UpdatePosition(ctx context.Context, tx *gorm.DB, questionID uuid.UUID, position int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.Question{}).
		Where("id = ?", questionID).
		Update("position", position).Error; err != nil {
		return err
	}
	return nil
}

func (r *questionRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, questionIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(questionIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", questionIDs).
		Delete(&types.Question{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *questionRepo) FullDeleteAll(ctx context.Context, tx *gorm.DB) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("1 = 1").
		Delete(&types.Question{}).Error; err != nil {
		return err
	}
	return nil
}
