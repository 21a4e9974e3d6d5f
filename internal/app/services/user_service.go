package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/docstore"
	"github.com/edusphere/backend/internal/pkg/apperrors"
)

// UserService defines the interface for user records. Users exist so that
// principals, instructor snapshots and author snapshots reference real
// documents; credential handling is out of scope.
type UserService interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetAllUsers(ctx context.Context, skip, limit int) ([]*models.User, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	crudService[models.User]
}

// NewUserService creates a new UserService
func NewUserService(store docstore.Store, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		crudService: newCrudService[models.User](store, models.KindUser, logger),
	}
}

// CreateUser stores a user record.
func (s *userServiceImpl) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil || user.Username == "" {
		return nil, apperrors.NewValidationError("username is required")
	}
	if !user.Role.Valid() {
		return nil, apperrors.NewValidationError("unknown role " + string(user.Role))
	}

	created, err := s.create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("userId", created.ID).Str("username", created.Username).Msg("User created")
	return created, nil
}

// GetUserByID returns the user, or (nil, nil) when it does not exist.
func (s *userServiceImpl) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getByID(ctx, id)
}

// GetUserByUsername returns the first user with the given username, or
// (nil, nil) when none exists.
func (s *userServiceImpl) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := s.list(ctx, window(docstore.Query{
		Equals: map[string]interface{}{"username": username},
	}, 0, 1))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return users[0], nil
}

// GetAllUsers lists users newest first.
func (s *userServiceImpl) GetAllUsers(ctx context.Context, skip, limit int) ([]*models.User, error) {
	return s.list(ctx, window(docstore.Query{}, skip, limit))
}
