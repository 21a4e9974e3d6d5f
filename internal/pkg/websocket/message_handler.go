package websocket

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/app/services"
)

// MessageHandler persists chat messages flowing through the hub.
type MessageHandler struct {
	chatService services.ChatService
	hub         *Hub
	logger      zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(chatService services.ChatService, hub *Hub, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		chatService: chatService,
		hub:         hub,
		logger:      logger,
	}
}

// Start begins processing messages from the hub
func (h *MessageHandler) Start() {
	go h.processMessages()
}

// processMessages listens for broadcast messages and saves chat messages.
func (h *MessageHandler) processMessages() {
	messageChan := make(chan *Message, 64)
	h.hub.AddMessageListener(messageChan)

	for message := range messageChan {
		if message.Type == "chat" {
			h.persistChatMessage(message)
		}
	}
}

// persistChatMessage stores one chat message through the chat service.
func (h *MessageHandler) persistChatMessage(message *Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sender := &models.User{Username: message.SenderName}
	sender.ID = message.SenderID
	sender.Kind = models.KindUser

	req := &dto.SendMessageRequest{Content: message.Content}
	switch {
	case strings.HasPrefix(message.Room, "community:"):
		req.CommunityID = strings.TrimPrefix(message.Room, "community:")
	case strings.HasPrefix(message.Room, "classroom:"):
		req.ClassroomID = strings.TrimPrefix(message.Room, "classroom:")
	}

	stored, err := h.chatService.SendMessage(ctx, sender, req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("room", message.Room).
			Str("senderId", message.SenderID).
			Msg("Failed to persist chat message")
		return
	}

	message.ID = stored.ID

	h.logger.Debug().
		Str("messageId", stored.ID).
		Str("room", message.Room).
		Msg("Chat message persisted")
}
