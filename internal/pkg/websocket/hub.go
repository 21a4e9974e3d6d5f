package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Room keys have the shape "classroom:<id>" or "community:<id>"; RoomGlobal
// is the room clients land in when they connect without a scope.
const RoomGlobal = "global"

// ClassroomRoom builds the room key for a classroom.
func ClassroomRoom(id string) string { return "classroom:" + id }

// CommunityRoom builds the room key for a community.
func CommunityRoom(id string) string { return "community:" + id }

// Hub maintains the set of active clients and broadcasts messages to the
// room they belong to.
type Hub struct {
	// Registered clients organized by room key
	rooms map[string]map[*Client]bool

	// Channel for inbound messages from clients
	broadcast chan *Message

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to the rooms map
	mu sync.RWMutex

	// Mutex for message listeners
	listenersMu sync.RWMutex

	// Message listeners receive every broadcast message, used for persistence
	messageListeners []chan *Message

	logger zerolog.Logger
}

// Message represents a chat message sent over WebSocket
type Message struct {
	// Type of message: "chat", "join", "leave"
	Type string `json:"type"`

	// Room this message belongs to
	Room string `json:"room"`

	// User who sent the message
	SenderID string `json:"senderId"`

	// Display name of the sender
	SenderName string `json:"senderName,omitempty"`

	// Message content
	Content string `json:"content"`

	// Timestamp when the message was sent
	Timestamp time.Time `json:"timestamp"`

	// Message ID once persisted
	ID string `json:"id,omitempty"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:        make(chan *Message),
		register:         make(chan *Client),
		unregister:       make(chan *Client),
		rooms:            make(map[string]map[*Client]bool),
		messageListeners: []chan *Message{},
		logger:           logger,
	}
}

// Run starts the hub, handling client registrations and broadcasts.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// registerClient registers a new client to its room
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := client.room
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true

	h.logger.Info().
		Str("room", room).
		Str("userId", client.userID).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Client registered")
}

// unregisterClient removes a client from its room
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := client.room
	if _, ok := h.rooms[room]; ok {
		if _, ok := h.rooms[room][client]; ok {
			delete(h.rooms[room], client)
			close(client.send)

			if len(h.rooms[room]) == 0 {
				delete(h.rooms, room)
			}

			h.logger.Info().
				Str("room", room).
				Str("userId", client.userID).
				Msg("Client unregistered")
		}
	}
}

// broadcastMessage delivers a message to every client in its room, or to
// every connected client when the room is RoomGlobal.
func (h *Hub) broadcastMessage(message *Message) {
	h.notifyMessageListeners(message)

	h.mu.RLock()
	defer h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Str("room", message.Room).Msg("Failed to marshal message for broadcast")
		return
	}

	targets := make([]*Client, 0)
	if message.Room == RoomGlobal {
		for _, clients := range h.rooms {
			for client := range clients {
				targets = append(targets, client)
			}
		}
	} else {
		for client := range h.rooms[message.Room] {
			targets = append(targets, client)
		}
	}

	for _, client := range targets {
		select {
		case client.send <- data:
		default:
			// Client's send buffer is full; drop and disconnect it outside
			// the read lock.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}

	h.logger.Debug().
		Str("room", message.Room).
		Int("clientCount", len(targets)).
		Msg("Message broadcast")
}

// notifyMessageListeners sends a message to all registered message listeners
func (h *Hub) notifyMessageListeners(message *Message) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.messageListeners {
		select {
		case listener <- message:
		default:
			h.logger.Warn().Msg("Skipped slow message listener")
		}
	}
}

// Broadcast queues a message for delivery to its room.
func (h *Hub) Broadcast(message *Message) {
	h.broadcast <- message
}

// ClientCount returns the number of connected clients in a room.
func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.rooms[room]; ok {
		return len(clients)
	}
	return 0
}

// AddMessageListener registers a channel to receive all broadcast messages.
func (h *Hub) AddMessageListener(listener chan *Message) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	h.messageListeners = append(h.messageListeners, listener)
}

// RemoveMessageListener removes a listener from the hub.
func (h *Hub) RemoveMessageListener(listener chan *Message) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.messageListeners {
		if l == listener {
			h.messageListeners[i] = h.messageListeners[len(h.messageListeners)-1]
			h.messageListeners = h.messageListeners[:len(h.messageListeners)-1]
			break
		}
	}
}
