package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/chasinalts/comet-scanner-wizard/internal/logger"
	pkgerrors "github.com/chasinalts/comet-scanner-wizard/internal/pkg/errors"
	"github.com/chasinalts/comet-scanner-wizard/internal/repos"
	"github.com/chasinalts/comet-scanner-wizard/internal/types"
)

type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	GetAll(ctx context.Context) ([]*types.User, error)
	UpdatePermissions(ctx context.Context, userID uuid.UUID, permissions map[string]bool) (*types.User, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("Failed to load user: %w", err)
	}
	if len(users) == 0 {
		return nil, pkgerrors.ErrNotFound
	}
	return users[0], nil
}

func (us *userService) GetAll(ctx context.Context) ([]*types.User, error) {
	users, err := us.userRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to list users: %w", err)
	}
	return users, nil
}

func (us *userService) UpdatePermissions(ctx context.Context, userID uuid.UUID, permissions map[string]bool) (*types.User, error) {
	raw, err := json.Marshal(permissions)
	if err != nil {
		return nil, fmt.Errorf("Failed to encode permissions: %w", err)
	}
	var updated *types.User
	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, uErr := us.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
		if uErr != nil {
			return fmt.Errorf("Failed to load user: %w", uErr)
		}
		if len(users) == 0 {
			return pkgerrors.ErrNotFound
		}
		if pErr := us.userRepo.UpdatePermissions(ctx, tx, userID, datatypes.JSON(raw)); pErr != nil {
			return fmt.Errorf("Failed to update permissions: %w", pErr)
		}
		updated = users[0]
		updated.Permissions = datatypes.JSON(raw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (us *userService) UpdateRole(ctx context.Context, userID uuid.UUID, role string) (*types.User, error) {
	if role != "user" && role != "admin" {
		return nil, fmt.Errorf("%w: unknown role %q", pkgerrors.ErrInvalidArgument, role)
	}
	var updated *types.User
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users, uErr := us.userRepo.GetByIDs(ctx, tx, []uuid.UUID{userID})
		if uErr != nil {
			return fmt.Errorf("Failed to load user: %w", uErr)
		}
		if len(users) == 0 {
			return pkgerrors.ErrNotFound
		}
		if rErr := us.userRepo.UpdateRole(ctx, tx, userID, role); rErr != nil {
			return fmt.Errorf("Failed to update role: %w", rErr)
		}
		updated = users[0]
		updated.Role = role
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
