package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	pkgerrors "github.com/chasinalts/comet-scanner-wizard/internal/pkg/errors"
	"github.com/chasinalts/comet-scanner-wizard/internal/repos"
	"github.com/chasinalts/comet-scanner-wizard/internal/sse"
	"github.com/chasinalts/comet-scanner-wizard/internal/types"
)

type ContentService interface {
	Get(ctx context.Context, key string) (*types.SiteContent, error)
	GetAll(ctx context.Context) ([]*types.SiteContent, error)
	Set(ctx context.Context, key, value string, updatedBy *uuid.UUID) (*types.SiteContent, error)
	BaseTemplate(ctx context.Context) (string, error)
	FullTemplate(ctx context.Context) (string, error)
}

type contentService struct {
	db          *gorm.DB
	log         *logger.Logger
	contentRepo repos.SiteContentRepo
	hub         *sse.SSEHub
	bus         SSEBus
}

func NewContentService(db *gorm.DB, log *logger.Logger, contentRepo repos.SiteContentRepo, hub *sse.SSEHub, bus SSEBus) ContentService {
	serviceLog := log.With("service", "ContentService")
	return &contentService{db: db, log: serviceLog, contentRepo: contentRepo, hub: hub, bus: bus}
}

func (cs *contentService) Get(ctx context.Context, key string) (*types.SiteContent, error) {
	records, err := cs.contentRepo.GetByKeys(ctx, nil, []string{key})
	if err != nil {
		return nil, fmt.Errorf("Failed to load site content: %w", err)
	}
	if len(records) == 0 {
		return nil, pkgerrors.ErrNotFound
	}
	return records[0], nil
}

func (cs *contentService) GetAll(ctx context.Context) ([]*types.SiteContent, error) {
	records, err := cs.contentRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to load site content: %w", err)
	}
	return records, nil
}

// Set upserts the content row for key. Unknown keys are created on first
// write so new content slots never need a migration.
func (cs *contentService) Set(ctx context.Context, key, value string, updatedBy *uuid.UUID) (*types.SiteContent, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: content key required", pkgerrors.ErrInvalidArgument)
	}
	var result *types.SiteContent
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, gErr := cs.contentRepo.GetByKeys(ctx, tx, []string{key})
		if gErr != nil {
			return fmt.Errorf("Failed to load site content: %w", gErr)
		}
		if len(existing) == 0 {
			record := &types.SiteContent{
				ID:        uuid.New(),
				Key:       key,
				Value:     value,
				UpdatedBy: updatedBy,
			}
			if _, cErr := cs.contentRepo.Create(ctx, tx, []*types.SiteContent{record}); cErr != nil {
				return fmt.Errorf("Failed to create site content: %w", cErr)
			}
			result = record
			return nil
		}
		if uErr := cs.contentRepo.UpdateValueByKey(ctx, tx, key, value, updatedBy); uErr != nil {
			return fmt.Errorf("Failed to update site content: %w", uErr)
		}
		result = existing[0]
		result.Value = value
		result.UpdatedBy = updatedBy
		return nil
	})
	if err != nil {
		return nil, err
	}
	publishSSE(ctx, cs.log, cs.hub, cs.bus, sse.AdminChannel, sse.SSEEventContentUpdated, key)
	return result, nil
}

// BaseTemplate returns the admin-managed base code, empty string when the
// slot has never been set.
func (cs *contentService) BaseTemplate(ctx context.Context) (string, error) {
	return cs.valueOrEmpty(ctx, types.ContentKeyBaseTemplate)
}

// FullTemplate returns the complete prebuilt template, empty string when the
// slot has never been set. An empty full template means the full-template
// path is unavailable to wizard sessions.
func (cs *contentService) FullTemplate(ctx context.Context) (string, error) {
	return cs.valueOrEmpty(ctx, types.ContentKeyFullTemplate)
}

func (cs *contentService) valueOrEmpty(ctx context.Context, key string) (string, error) {
	records, err := cs.contentRepo.GetByKeys(ctx, nil, []string{key})
	if err != nil {
		return "", fmt.Errorf("Failed to load site content: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}
	return records[0].Value, nil
}
