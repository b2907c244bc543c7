package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	"github.com/chasinalts/comet-scanner-wizard/internal/types"
)

type GalleryImageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, images []*types.GalleryImage) ([]*types.GalleryImage, error)
	GetAllOrdered(ctx context.Context, tx *gorm.DB) ([]*types.GalleryImage, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) ([]*types.GalleryImage, error)
	FullDeleteByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) error
}

type galleryImageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGalleryImageRepo(db *gorm.DB, baseLog *logger.Logger) GalleryImageRepo {
	repoLog := baseLog.With("repo", "GalleryImageRepo")
	return &galleryImageRepo{db: db, log: repoLog}
}

func (r *galleryImageRepo) Create(ctx context.Context, tx *gorm.DB, images []*types.GalleryImage) ([]*types.GalleryImage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(images) == 0 {
		return []*types.GalleryImage{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *galleryImageRepo) GetAllOrdered(ctx context.Context, tx *gorm.DB) ([]*types.GalleryImage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.GalleryImage
	if err := transaction.WithContext(ctx).
		Order("position ASC, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *galleryImageRepo) GetByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) ([]*types.GalleryImage, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.GalleryImage
	if len(imageIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", imageIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *galleryImageRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, imageIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(imageIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Unscoped().
		Where("id IN ?", imageIDs).
		Delete(&types.GalleryImage{}).Error; err != nil {
		return err
	}
	return nil
}
