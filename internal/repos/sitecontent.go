package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/types"
)

type SiteContentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, records []*types.SiteContent) ([]*types.SiteContent, error)
	GetByKeys(ctx context.Context, tx *gorm.DB, keys []string) ([]*types.SiteContent, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.SiteContent, error)
	UpdateValueByKey(ctx context.Context, tx *gorm.DB, key, value string, updatedBy *uuid.UUID) error
	FullDeleteByKeys(ctx context.Context, tx *gorm.DB, keys []string) error
}

type siteContentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSiteContentRepo(db *gorm.DB, baseLog *logger.Logger) SiteContentRepo {
	repoLog := baseLog.With("repo", "SiteContentRepo")
	return &siteContentRepo{db: db, log: repoLog}
}

func (r *siteContentRepo) Create(ctx context.Context, tx *gorm.DB, records []*types.SiteContent) ([]*types.SiteContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(records) == 0 {
		return []*types.SiteContent{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *siteContentRepo) GetByKeys(ctx context.Context, tx *gorm.DB, keys []string) ([]*types.SiteContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SiteContent
	if len(keys) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("key IN ?", keys).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *siteContentRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.SiteContent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.SiteContent
	if err := transaction.WithContext(ctx).
		Order("key ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *siteContentRepo) UpdateValueByKey(ctx context.Context, tx *gorm.DB, key, value string, updatedBy *uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Model(&types.SiteContent{}).
		Where("key = ?", key).
		Updates(map[string]interface{}{
			"value":      value,
			"updated_by": updatedBy,
		}).Error; err != nil {
		return err
	}
	return nil
}

func (r *siteContentRepo) FullDeleteByKeys(ctx context.Context, tx *gorm.DB, keys []string) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(keys) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("key IN ?", keys).
		Delete(&types.SiteContent{}).Error; err != nil {
		return err
	}
	return nil
}
