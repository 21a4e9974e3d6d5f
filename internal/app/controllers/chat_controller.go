package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/backend/internal/app/auth"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/app/services"
	"github.com/edusphere/backend/internal/middleware"
	"github.com/edusphere/backend/internal/pkg/helpers"
	"github.com/edusphere/backend/internal/pkg/websocket"
)

// ChatController handles chat message history and REST message sending.
type ChatController struct {
	chatService services.ChatService
	hub         *websocket.Hub
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, hub *websocket.Hub) *ChatController {
	return &ChatController{chatService: chatService, hub: hub}
}

// GetCommunityMessages handles listing a community room's message history.
func (c *ChatController) GetCommunityMessages(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.PageWindow(page, pageSize)

	messages, err := c.chatService.GetCommunityMessages(ctx, ctx.Param("id"), skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPaginatedResponse(messages, page, pageSize)))
}

// GetClassroomMessages handles listing a classroom room's message history.
func (c *ChatController) GetClassroomMessages(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)
	skip, limit := helpers.PageWindow(page, pageSize)

	messages, err := c.chatService.GetClassroomMessages(ctx, ctx.Param("id"), skip, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewPaginatedResponse(messages, page, pageSize)))
}

// SendMessage handles posting a chat message over REST. The stored message is
// also broadcast to connected websocket clients in the target room.
func (c *ChatController) SendMessage(ctx *gin.Context) {
	principal := middleware.CurrentPrincipal(ctx)
	if err := auth.RequireAuthenticated(principal); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	message, err := c.chatService.SendMessage(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if c.hub != nil {
		room := websocket.RoomGlobal
		if message.CommunityID != "" {
			room = websocket.CommunityRoom(message.CommunityID)
		} else if message.ClassroomID != "" {
			room = websocket.ClassroomRoom(message.ClassroomID)
		}
		c.hub.Broadcast(&websocket.Message{
			Type:       "chat",
			Room:       room,
			SenderID:   message.Sender.ID,
			SenderName: message.Sender.Username,
			Content:    message.Content,
			Timestamp:  message.CreatedAt,
			ID:         message.ID,
		})
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(message))
}
