package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	pkgerrors "github.com/chasinalts/comet-scanner-wizard/internal/pkg/errors"
	"github.com/chasinalts/comet-scanner-wizard/internal/repos"
	"github.com/chasinalts/comet-scanner-wizard/internal/sse"
	"github.com/chasinalts/comet-scanner-wizard/internal/types"
)

type GalleryService interface {
	List(ctx context.Context) ([]*types.GalleryImage, error)
	Upload(ctx context.Context, uploadedBy uuid.UUID, title, filename string, raw []byte) (*types.GalleryImage, error)
	Delete(ctx context.Context, imageID uuid.UUID) error
}

type galleryService struct {
	db            *gorm.DB
	log           *logger.Logger
	galleryRepo   repos.GalleryImageRepo
	bucketService BucketService
	hub           *sse.SSEHub
	bus           SSEBus
}

func NewGalleryService(
	db *gorm.DB,
	log *logger.Logger,
	galleryRepo repos.GalleryImageRepo,
	bucketService BucketService,
	hub *sse.SSEHub,
	bus SSEBus,
) GalleryService {
	serviceLog := log.With("service", "GalleryService")
	return &galleryService{
		db:            db,
		log:           serviceLog,
		galleryRepo:   galleryRepo,
		bucketService: bucketService,
		hub:           hub,
		bus:           bus,
	}
}

func (gs *galleryService) List(ctx context.Context) ([]*types.GalleryImage, error) {
	images, err := gs.galleryRepo.GetAllOrdered(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to list gallery images: %w", err)
	}
	return images, nil
}

// Upload stores the image bytes in the bucket and records the gallery entry.
// The object key is versioned so overwritten titles never serve stale bytes.
func (gs *galleryService) Upload(ctx context.Context, uploadedBy uuid.UUID, title, filename string, raw []byte) (*types.GalleryImage, error) {
	if gs.bucketService == nil {
		return nil, fmt.Errorf("%w: object storage is not configured", pkgerrors.ErrInvalidArgument)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty image payload", pkgerrors.ErrInvalidArgument)
	}
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return nil, fmt.Errorf("%w: unsupported image extension %q", pkgerrors.ErrInvalidArgument, ext)
	}

	key := fmt.Sprintf("gallery/%d%s", time.Now().UnixNano(), ext)
	if err := gs.bucketService.UploadFile(ctx, key, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("Failed to upload gallery image: %w", err)
	}

	image := &types.GalleryImage{
		ID:         uuid.New(),
		Title:      title,
		StorageKey: key,
		URL:        gs.bucketService.GetPublicURL(key),
		UploadedBy: uploadedBy,
	}
	err := gs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, gErr := gs.galleryRepo.GetAllOrdered(ctx, tx)
		if gErr != nil {
			return fmt.Errorf("Failed to load gallery images: %w", gErr)
		}
		image.Position = len(existing)
		if _, cErr := gs.galleryRepo.Create(ctx, tx, []*types.GalleryImage{image}); cErr != nil {
			return fmt.Errorf("Failed to record gallery image: %w", cErr)
		}
		return nil
	})
	if err != nil {
		// The DB record failed; remove the orphaned object best-effort.
		if dErr := gs.bucketService.DeleteFile(ctx, key); dErr != nil {
			gs.log.Warn("Failed to remove orphaned gallery object", "key", key, "error", dErr)
		}
		return nil, err
	}

	publishSSE(ctx, gs.log, gs.hub, gs.bus, sse.AdminChannel, sse.SSEEventGalleryUpdated, image.ID.String())
	return image, nil
}

func (gs *galleryService) Delete(ctx context.Context, imageID uuid.UUID) error {
	if gs.bucketService == nil {
		return fmt.Errorf("%w: object storage is not configured", pkgerrors.ErrInvalidArgument)
	}
	images, err := gs.galleryRepo.GetByIDs(ctx, nil, []uuid.UUID{imageID})
	if err != nil {
		return fmt.Errorf("Failed to load gallery image: %w", err)
	}
	if len(images) == 0 {
		return pkgerrors.ErrNotFound
	}
	image := images[0]

	if err := gs.galleryRepo.FullDeleteByIDs(ctx, nil, []uuid.UUID{image.ID}); err != nil {
		return fmt.Errorf("Failed to delete gallery image: %w", err)
	}
	if dErr := gs.bucketService.DeleteFile(ctx, image.StorageKey); dErr != nil {
		gs.log.Warn("Failed to delete gallery object", "key", image.StorageKey, "error", dErr)
	}

	publishSSE(ctx, gs.log, gs.hub, gs.bus, sse.AdminChannel, sse.SSEEventGalleryUpdated, image.ID.String())
	return nil
}
