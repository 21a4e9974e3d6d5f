package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/middleware"
)

// Handler upgrades HTTP requests to websocket connections and joins the
// client to the requested room.
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

// HandleClassroom joins the caller to a classroom room.
func (h *Handler) HandleClassroom(c *gin.Context) {
	h.connect(c, ClassroomRoom(c.Param("id")))
}

// HandleCommunity joins the caller to a community room.
func (h *Handler) HandleCommunity(c *gin.Context) {
	h.connect(c, CommunityRoom(c.Param("id")))
}

// HandleGlobal joins the caller to the global room.
func (h *Handler) HandleGlobal(c *gin.Context) {
	h.connect(c, RoomGlobal)
}

func (h *Handler) connect(c *gin.Context, room string) {
	principal := middleware.CurrentPrincipal(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("room", room).
			Str("userId", principal.ID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:      h.hub,
		conn:     conn,
		send:     make(chan []byte, 256),
		userID:   principal.ID,
		userName: principal.Username,
		room:     room,
		logger:   h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Str("room", room).
		Str("userId", principal.ID).
		Str("remoteAddr", conn.RemoteAddr().String()).
		Msg("WebSocket connection established")
}
