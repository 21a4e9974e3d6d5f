package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/docstore"
	"github.com/edusphere/backend/internal/pkg/apperrors"
)

// ChatService defines the interface for chat message persistence
type ChatService interface {
	SendMessage(ctx context.Context, sender *models.User, req *dto.SendMessageRequest) (*models.ChatMessage, error)
	GetCommunityMessages(ctx context.Context, communityID string, skip, limit int) ([]*models.ChatMessage, error)
	GetClassroomMessages(ctx context.Context, classroomID string, skip, limit int) ([]*models.ChatMessage, error)
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	crudService[models.ChatMessage]
}

// NewChatService creates a new ChatService
func NewChatService(store docstore.Store, logger zerolog.Logger) ChatService {
	return &chatServiceImpl{
		crudService: newCrudService[models.ChatMessage](store, models.KindChatMessage, logger),
	}
}

// SendMessage persists a chat message scoped to one room.
func (s *chatServiceImpl) SendMessage(ctx context.Context, sender *models.User, req *dto.SendMessageRequest) (*models.ChatMessage, error) {
	if sender == nil {
		return nil, apperrors.ErrAuthenticationRequired
	}
	if req.Content == "" {
		return nil, apperrors.NewValidationError("message content is required")
	}
	if req.CommunityID != "" && req.ClassroomID != "" {
		return nil, apperrors.NewValidationError("a message belongs to a single room")
	}

	message := &models.ChatMessage{
		Sender:      *sender,
		Content:     req.Content,
		CommunityID: req.CommunityID,
		ClassroomID: req.ClassroomID,
	}

	created, err := s.create(ctx, message)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Str("messageId", created.ID).Str("senderId", sender.ID).Msg("Chat message stored")
	return created, nil
}

// GetCommunityMessages lists messages in a community room, newest first.
func (s *chatServiceImpl) GetCommunityMessages(ctx context.Context, communityID string, skip, limit int) ([]*models.ChatMessage, error) {
	q := docstore.Query{
		Equals: map[string]interface{}{"communityId": communityID},
	}
	return s.list(ctx, window(q, skip, limit))
}

// GetClassroomMessages lists messages in a classroom room, newest first.
func (s *chatServiceImpl) GetClassroomMessages(ctx context.Context, classroomID string, skip, limit int) ([]*models.ChatMessage, error) {
	q := docstore.Query{
		Equals: map[string]interface{}{"classroomId": classroomID},
	}
	return s.list(ctx, window(q, skip, limit))
}
