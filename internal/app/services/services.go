package services

import (
	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/docstore"
)

// Services bundles the entity services built over one shared store.
type Services struct {
	Users       UserService
	Classrooms  ClassroomService
	Communities CommunityService
	Posts       PostService
	Chat        ChatService
}

// New wires every entity service against the given store.
func New(store docstore.Store, logger zerolog.Logger) *Services {
	return &Services{
		Users:       NewUserService(store, logger),
		Classrooms:  NewClassroomService(store, logger),
		Communities: NewCommunityService(store, logger),
		Posts:       NewPostService(store, logger),
		Chat:        NewChatService(store, logger),
	}
}
