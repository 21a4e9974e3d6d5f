package models

// ChatMessage represents a persisted chat message, scoped to a classroom or
// community room, or global when neither id is set.
type ChatMessage struct {
	Document
	Sender      User   `json:"sender"`
	Content     string `json:"content"`
	CommunityID string `json:"communityId,omitempty"`
	ClassroomID string `json:"classroomId,omitempty"`
}
