package services

import (
	"context"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/docstore"
	"github.com/edusphere/backend/internal/pkg/apperrors"
)

// CommunityService defines the interface for community operations
type CommunityService interface {
	CreateCommunity(ctx context.Context, req *dto.CreateCommunityRequest) (*models.Community, error)
	GetCommunityByID(ctx context.Context, id string) (*models.Community, error)
	GetAllCommunities(ctx context.Context, skip, limit int) ([]*models.Community, error)
	GetCommunitiesByTopic(ctx context.Context, topic string, skip, limit int) ([]*models.Community, error)
	UpdateCommunity(ctx context.Context, id string, req *dto.UpdateCommunityRequest) (*models.Community, error)
	UpdateMembers(ctx context.Context, id string, members int) (*models.Community, error)
	AddTopic(ctx context.Context, id string, topic string) (*models.Community, error)
	RemoveTopic(ctx context.Context, id string, topic string) (*models.Community, error)
	DeleteCommunity(ctx context.Context, id string) error
	SearchByName(ctx context.Context, term string, skip, limit int) ([]*models.Community, error)
}

// communityServiceImpl implements CommunityService
type communityServiceImpl struct {
	crudService[models.Community]
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(store docstore.Store, logger zerolog.Logger) CommunityService {
	return &communityServiceImpl{
		crudService: newCrudService[models.Community](store, models.KindCommunity, logger),
	}
}

// CreateCommunity creates a community. Members starts at 1: the creator is
// the first member.
func (s *communityServiceImpl) CreateCommunity(ctx context.Context, req *dto.CreateCommunityRequest) (*models.Community, error) {
	if req.Name == "" || req.Description == "" {
		return nil, apperrors.NewValidationError("community name and description are required")
	}

	community := &models.Community{
		Name:        req.Name,
		Description: req.Description,
		Members:     1,
		Topics:      normalizeTopics(req.Topics),
	}

	created, err := s.create(ctx, community)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("communityId", created.ID).Str("name", created.Name).Msg("Community created")
	return created, nil
}

// GetCommunityByID returns the community, or (nil, nil) when it does not exist.
func (s *communityServiceImpl) GetCommunityByID(ctx context.Context, id string) (*models.Community, error) {
	return s.getByID(ctx, id)
}

// GetAllCommunities lists communities newest first.
func (s *communityServiceImpl) GetAllCommunities(ctx context.Context, skip, limit int) ([]*models.Community, error) {
	return s.list(ctx, window(docstore.Query{}, skip, limit))
}

// GetCommunitiesByTopic lists communities carrying the exact topic.
func (s *communityServiceImpl) GetCommunitiesByTopic(ctx context.Context, topic string, skip, limit int) ([]*models.Community, error) {
	q := docstore.Query{
		ArrayContains: map[string]string{"topics": topic},
	}
	return s.list(ctx, window(q, skip, limit))
}

// UpdateCommunity applies a partial update; nil request fields are left
// unchanged.
func (s *communityServiceImpl) UpdateCommunity(ctx context.Context, id string, req *dto.UpdateCommunityRequest) (*models.Community, error) {
	patch := docstore.Document{}
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Topics != nil {
		patch["topics"] = normalizeTopics(*req.Topics)
	}
	if req.Members != nil {
		patch["members"] = *req.Members
	}

	return s.update(ctx, id, patch, req.Revision)
}

// UpdateMembers sets the member count.
func (s *communityServiceImpl) UpdateMembers(ctx context.Context, id string, members int) (*models.Community, error) {
	if members < 0 {
		return nil, apperrors.NewValidationError("member count cannot be negative")
	}
	return s.update(ctx, id, docstore.Document{"members": members}, "")
}

// AddTopic adds a topic with set semantics: adding a topic that is already
// present leaves the community unchanged.
func (s *communityServiceImpl) AddTopic(ctx context.Context, id string, topic string) (*models.Community, error) {
	if topic == "" {
		return nil, apperrors.NewValidationError("topic is required")
	}

	community, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if community == nil {
		return nil, apperrors.NewNotFoundError("community " + id + " not found")
	}

	for _, existing := range community.Topics {
		if existing == topic {
			return community, nil
		}
	}

	topics := append(append([]string{}, community.Topics...), topic)
	return s.update(ctx, id, docstore.Document{"topics": topics}, "")
}

// RemoveTopic removes a topic. Removing an absent topic leaves the community
// unchanged.
func (s *communityServiceImpl) RemoveTopic(ctx context.Context, id string, topic string) (*models.Community, error) {
	community, err := s.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if community == nil {
		return nil, apperrors.NewNotFoundError("community " + id + " not found")
	}

	topics := make([]string, 0, len(community.Topics))
	removed := false
	for _, existing := range community.Topics {
		if existing == topic {
			removed = true
			continue
		}
		topics = append(topics, existing)
	}
	if !removed {
		return community, nil
	}
	return s.update(ctx, id, docstore.Document{"topics": topics}, "")
}

// DeleteCommunity removes the community.
func (s *communityServiceImpl) DeleteCommunity(ctx context.Context, id string) error {
	if err := s.delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("communityId", id).Msg("Community deleted")
	return nil
}

// SearchByName matches the term as a case-insensitive substring of the
// community name.
func (s *communityServiceImpl) SearchByName(ctx context.Context, term string, skip, limit int) ([]*models.Community, error) {
	if term == "" {
		return s.GetAllCommunities(ctx, skip, limit)
	}
	q := docstore.Query{
		Regex: map[string]string{"name": regexp.QuoteMeta(term)},
	}
	return s.list(ctx, window(q, skip, limit))
}
